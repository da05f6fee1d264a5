package service

import (
	"context"

	"go.uber.org/zap"

	"formapi/internal/filestore"
	"formapi/internal/logger"
)

func appendURL(urls []string, url *string) []string {
	if url == nil || *url == "" {
		return urls
	}
	return append(urls, *url)
}

// deleteFiles removes every url and returns the first failure.
func deleteFiles(ctx context.Context, files filestore.FileStore, urls []string) error {
	var first error
	for _, u := range urls {
		if err := files.Delete(ctx, u); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func discardFiles(ctx context.Context, files filestore.FileStore, log *zap.Logger, urls []string) {
	for _, u := range urls {
		if err := files.Delete(ctx, u); err != nil {
			log.Warn("orphaned upload left behind",
				append(logger.ErrorFields(err), zap.String("url", u))...)
		}
	}
}
