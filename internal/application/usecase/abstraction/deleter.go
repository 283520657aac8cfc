package abstraction

import "context"

// Deleter removes a stored image on behalf of its owner.
type Deleter interface {
	DeleteImage(ctx context.Context, callerID, path string) error
}
