// Package memorystorage is an in-memory implementation of the storage
// interface. It backs tests and lets the service run without a MongoDB
// instance. Filter semantics mirror the MongoDB backend.
package memorystorage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/giftlink/giftlink-backend/internal/models"
	"github.com/giftlink/giftlink-backend/internal/user"
)

// MemoryStorage keeps users and gifts in process memory behind a mutex.
type MemoryStorage struct {
	mu           sync.RWMutex
	usersByEmail map[string]*user.User
	gifts        []models.Gift
}

// New returns an empty MemoryStorage.
func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		usersByEmail: map[string]*user.User{},
		gifts:        []models.Gift{},
	}, nil
}

// FindUserByEmail returns the user stored under the given email.
func (s *MemoryStorage) FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usr, found := s.usersByEmail[email]
	if !found {
		return nil, false, nil
	}

	copied := *usr

	return &copied, true, nil
}

// InsertUser stores a new user document and returns the assigned id.
func (s *MemoryStorage) InsertUser(ctx context.Context, usr *user.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *usr
	stored.ID = uuid.New().String()
	s.usersByEmail[stored.Email] = &stored

	return stored.ID, nil
}

// UpdateUserNames updates the name fields of the user stored under the
// given email and returns the document after the update.
func (s *MemoryStorage) UpdateUserNames(
	ctx context.Context,
	email string,
	firstName string,
	lastName string,
) (*user.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	usr, found := s.usersByEmail[email]
	if !found {
		return nil, false, nil
	}

	usr.FirstName = firstName
	usr.LastName = lastName
	usr.UpdatedAt = time.Now().UTC()

	copied := *usr

	return &copied, true, nil
}

func matchesFilter(gift models.Gift, filter models.GiftFilter) bool {
	if filter.Name != "" &&
		!strings.Contains(strings.ToLower(gift.Name), strings.ToLower(filter.Name)) {
		return false
	}

	if filter.Category != "" && gift.Category != filter.Category {
		return false
	}

	if filter.Condition != "" && gift.Condition != filter.Condition {
		return false
	}

	if filter.MaxAgeYears != nil && gift.AgeYears > *filter.MaxAgeYears {
		return false
	}

	return true
}

// FindGifts returns every gift matching the filter in insertion order.
func (s *MemoryStorage) FindGifts(ctx context.Context, filter models.GiftFilter) ([]models.Gift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Gift{}
	for _, gift := range s.gifts {
		if matchesFilter(gift, filter) {
			result = append(result, gift)
		}
	}

	return result, nil
}

// FindGiftByID looks a gift up by its custom id attribute.
func (s *MemoryStorage) FindGiftByID(ctx context.Context, id string) (models.Gift, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, gift := range s.gifts {
		if gift.ID == id {
			return gift, true, nil
		}
	}

	return models.Gift{}, false, nil
}

// ReplaceGifts wipes the gifts collection and inserts the given documents.
func (s *MemoryStorage) ReplaceGifts(ctx context.Context, gifts []models.Gift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gifts = make([]models.Gift, len(gifts))
	copy(s.gifts, gifts)

	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStorage) Close() error {
	return nil
}
