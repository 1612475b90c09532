// Package storage declares the document store contract shared by the
// MongoDB and in-memory backends.
package storage

import (
	"context"

	"github.com/giftlink/giftlink-backend/internal/models"
	"github.com/giftlink/giftlink-backend/internal/user"
)

// Storage is the full document store surface used by the service.
// Consumers depend on narrower per-concern subsets of it.
type Storage interface {
	// FindUserByEmail returns the user stored under the given email.
	// The boolean reports whether such a user exists.
	FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error)

	// InsertUser stores a new user document and returns the assigned id.
	InsertUser(ctx context.Context, usr *user.User) (string, error)

	// UpdateUserNames atomically finds the user by email and sets the
	// name fields and UpdatedAt, returning the document after the
	// update. The boolean reports whether the user existed.
	UpdateUserNames(
		ctx context.Context,
		email string,
		firstName string,
		lastName string,
	) (*user.User, bool, error)

	// FindGifts returns every gift matching the filter, in the store's
	// natural iteration order.
	FindGifts(ctx context.Context, filter models.GiftFilter) ([]models.Gift, error)

	// FindGiftByID looks a gift up by its custom id attribute.
	FindGiftByID(ctx context.Context, id string) (models.Gift, bool, error)

	// ReplaceGifts wipes the gifts collection and inserts the given
	// documents. Used by the seed loader.
	ReplaceGifts(ctx context.Context, gifts []models.Gift) error

	Ping(ctx context.Context) error

	Close() error
}
