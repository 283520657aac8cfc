package minio

import "context"

type Stater interface {
	Exists(ctx context.Context, path string) bool
}
