package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/giftlink/giftlink-backend/internal/models"
)

type giftFinder interface {
	FindGifts(ctx context.Context, filter models.GiftFilter) ([]models.Gift, error)

	FindGiftByID(ctx context.Context, id string) (models.Gift, bool, error)
}

// SearchParams are the raw query parameters of the search endpoint,
// before filter compilation.
type SearchParams struct {
	Name      string
	Category  string
	Condition string
	AgeYears  string
}

// Gifts implements the gift search and listing operations.
type Gifts struct {
	db giftFinder
}

// NewGifts wires the gift service.
func NewGifts(db giftFinder) *Gifts {
	return &Gifts{db: db}
}

// CompileFilter turns the optional textual parameters into a filter.
// Blank (after trimming) parameters are excluded entirely, and a
// non-numeric age is silently dropped rather than rejected.
func CompileFilter(params SearchParams) models.GiftFilter {
	filter := models.GiftFilter{
		Name:      strings.TrimSpace(params.Name),
		Category:  strings.TrimSpace(params.Category),
		Condition: strings.TrimSpace(params.Condition),
	}

	if age, err := strconv.Atoi(strings.TrimSpace(params.AgeYears)); err == nil {
		filter.MaxAgeYears = &age
	}

	return filter
}

// Search returns every gift matching the conjunction of the supplied
// parameters. With no parameters it returns the whole collection.
func (s *Gifts) Search(ctx context.Context, params SearchParams) ([]models.Gift, error) {
	return s.db.FindGifts(ctx, CompileFilter(params))
}

// List returns every gift.
func (s *Gifts) List(ctx context.Context) ([]models.Gift, error) {
	return s.db.FindGifts(ctx, models.GiftFilter{})
}

// GetByID returns the gift with the given custom id.
func (s *Gifts) GetByID(ctx context.Context, id string) (models.Gift, error) {
	gift, found, err := s.db.FindGiftByID(ctx, id)
	if err != nil {
		return models.Gift{}, err
	}
	if !found {
		return models.Gift{}, ErrGiftNotFound
	}

	return gift, nil
}
