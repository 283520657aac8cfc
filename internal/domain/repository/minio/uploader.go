package minio

import "context"

type Uploader interface {
	Upload(ctx context.Context, body []byte, path, contentType string, metadata map[string]string) (string, error)
}
