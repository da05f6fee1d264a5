package handler

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwagger_DocUsesRequestHost(t *testing.T) {
	app := newApp()
	app.Get("/swagger/*", Swagger())

	req := httptest.NewRequest("GET", "/swagger/doc.json", nil)
	req.Host = "api.example.com"
	req.Header.Set("X-Forwarded-Proto", "https, http")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var doc struct {
		Host    string   `json:"host"`
		Schemes []string `json:"schemes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "api.example.com", doc.Host)
	assert.Equal(t, []string{"https"}, doc.Schemes)
}

func TestSwagger_ConcurrentHosts(t *testing.T) {
	app := newApp()
	app.Get("/swagger/*", Swagger())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			host := fmt.Sprintf("host-%d.example.com", i)
			req := httptest.NewRequest("GET", "/swagger/doc.json", nil)
			req.Host = host
			resp, err := app.Test(req)
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			var doc struct {
				Host string `json:"host"`
			}
			if assert.NoError(t, json.NewDecoder(resp.Body).Decode(&doc)) {
				assert.Equal(t, host, doc.Host)
			}
		}(i)
	}
	wg.Wait()
}
