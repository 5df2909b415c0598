package entry

import (
	"context"
)

// Repository fetches entries by id regardless of owner; ownership is decided
// by the service so that "not found" and "not yours" stay distinguishable.
type Repository interface {
	List(ctx context.Context, userID int) ([]Entry, error)
	Get(ctx context.Context, entryID int) (Entry, error)
	Create(ctx context.Context, e *Entry) (int, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, entryID int) error
}
