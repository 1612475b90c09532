// Package models contains the request/response DTOs of the HTTP API and
// the gift document model shared by the storage backends.
package models

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// RegisterResponse is returned with status 201 on successful registration.
type RegisterResponse struct {
	AuthToken string `json:"authtoken"`
	Email     string `json:"email"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	AuthToken string `json:"authtoken"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// UpdateProfileRequest is the body of PUT /api/auth/update. The target
// account's email arrives separately in the Email request header.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// UpdateProfileResponse is returned on successful profile update.
type UpdateProfileResponse struct {
	AuthToken string `json:"authtoken"`
}

// Gift is a document from the gifts collection. The id attribute is a
// plain string assigned by the seed loader, distinct from the store's _id.
type Gift struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Category  string `bson:"category" json:"category"`
	Condition string `bson:"condition" json:"condition"`
	AgeYears  int    `bson:"age_years" json:"age_years"`
}

// GiftFilter is the compiled form of the search query parameters. A zero
// filter matches every gift. Included conditions are combined with AND.
type GiftFilter struct {
	// Name, when non-empty, matches as a case-insensitive substring.
	Name string

	// Category and Condition, when non-empty, match exactly.
	Category  string
	Condition string

	// MaxAgeYears, when non-nil, is an inclusive upper bound on age_years.
	MaxAgeYears *int
}

// IsEmpty reports whether the filter carries no conditions at all.
func (f GiftFilter) IsEmpty() bool {
	return f.Name == "" && f.Category == "" && f.Condition == "" && f.MaxAgeYears == nil
}
