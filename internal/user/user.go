// Package user defines the user document stored in the users collection.
package user

import "time"

// User represents a registered account.
type User struct {
	// ID is the store-assigned identifier, an ObjectID hex string.
	ID string `bson:"_id,omitempty" json:"id,omitempty"`

	// Email is the login key. Uniqueness is maintained only by the
	// read-then-insert check in the register path.
	Email string `bson:"email" json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// It is never marshaled to JSON.
	PasswordHash string `bson:"password" json:"-"`

	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
