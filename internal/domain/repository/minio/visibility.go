package minio

import "context"

// Visibility makes a freshly written object publicly readable.
type Visibility interface {
	MakePublic(ctx context.Context, bucket, key string) error
}
