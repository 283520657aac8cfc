package database

import "context"

type Remover interface {
	RemoveByPath(ctx context.Context, paths ...string) error
}
