package service

import (
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireErrx(t *testing.T, err error, code string, typ errx.Type) {
	t.Helper()
	require.Error(t, err)
	e := errx.AsErrorX(err)
	assert.Equal(t, code, e.Code())
	assert.Equal(t, typ, e.Type())
}

func ptr[T any](v T) *T { return &v }
