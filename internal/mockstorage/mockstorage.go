// Package mockstorage provides a testify-based mock implementation of the
// storage interface. It is used by router tests to simulate document
// store failures that the in-memory backend cannot produce.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/giftlink/giftlink-backend/internal/models"
	"github.com/giftlink/giftlink-backend/internal/user"
)

// StorageMock is a testify mock that implements the storage interface.
type StorageMock struct {
	mock.Mock
}

// FindUserByEmail mocks looking a user up by email.
func (m *StorageMock) FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	args := m.Called(ctx, email)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

// InsertUser mocks storing a new user.
func (m *StorageMock) InsertUser(ctx context.Context, usr *user.User) (string, error) {
	args := m.Called(ctx, usr)
	return args.String(0), args.Error(1)
}

// UpdateUserNames mocks the atomic find-and-update of a user's names.
func (m *StorageMock) UpdateUserNames(
	ctx context.Context,
	email string,
	firstName string,
	lastName string,
) (*user.User, bool, error) {
	args := m.Called(ctx, email, firstName, lastName)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

// FindGifts mocks a filtered gift search.
func (m *StorageMock) FindGifts(ctx context.Context, filter models.GiftFilter) ([]models.Gift, error) {
	args := m.Called(ctx, filter)
	gifts, _ := args.Get(0).([]models.Gift)
	return gifts, args.Error(1)
}

// FindGiftByID mocks looking a gift up by its custom id.
func (m *StorageMock) FindGiftByID(ctx context.Context, id string) (models.Gift, bool, error) {
	args := m.Called(ctx, id)
	gift, _ := args.Get(0).(models.Gift)
	return gift, args.Bool(1), args.Error(2)
}

// ReplaceGifts mocks wiping and reseeding the gifts collection.
func (m *StorageMock) ReplaceGifts(ctx context.Context, gifts []models.Gift) error {
	args := m.Called(ctx, gifts)
	return args.Error(0)
}

// Ping mocks the store health check.
func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks releasing the store connection.
func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
