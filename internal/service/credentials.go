// Package service contains the business logic of the two request
// handlers: the credential service over the users collection and the
// gift search over the gifts collection. Both depend on narrow storage
// interfaces so tests can substitute the document store.
package service

import (
	"context"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/giftlink/giftlink-backend/internal/models"
	"github.com/giftlink/giftlink-backend/internal/user"
)

// passwordHashCost matches the cost factor of the seeded user base.
const passwordHashCost = 10

type userKeeper interface {
	FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error)

	InsertUser(ctx context.Context, usr *user.User) (string, error)

	UpdateUserNames(
		ctx context.Context,
		email string,
		firstName string,
		lastName string,
	) (*user.User, bool, error)
}

type tokenIssuer interface {
	Issue(userID string) (string, error)
}

// Credentials implements registration, login and profile update.
type Credentials struct {
	db       userKeeper
	tokens   tokenIssuer
	validate *validator.Validate
}

// NewCredentials wires the credential service.
func NewCredentials(db userKeeper, tokens tokenIssuer) *Credentials {
	return &Credentials{
		db:       db,
		tokens:   tokens,
		validate: newValidator(),
	}
}

// Register creates a new account and returns a token for it.
//
// The duplicate-email check is read-then-insert and therefore not atomic:
// two concurrent registrations with the same email can both pass it. The
// store enforces no unique constraint, matching the persisted data this
// service inherits.
func (s *Credentials) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	_, found, err := s.db.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		return nil, err
	}

	userID, err := s.db.InsertUser(ctx, &user.User{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, err
	}

	return &models.RegisterResponse{
		AuthToken: token,
		Email:     req.Email,
	}, nil
}

// Login authenticates an account by email and password. An unknown email
// and a wrong password produce the identical ErrInvalidCredentials.
func (s *Credentials) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	usr, found, err := s.db.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(usr.ID)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		AuthToken: token,
		UserName:  usr.FirstName,
		UserEmail: usr.Email,
	}, nil
}

// UpdateProfile sets the name fields of the account identified by email.
// The email arrives out-of-band (the Email request header); the caller's
// token is not verified against it, which is a known limitation carried
// over from the system this service replaces.
func (s *Credentials) UpdateProfile(
	ctx context.Context,
	email string,
	req models.UpdateProfileRequest,
) (*models.UpdateProfileResponse, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	if strings.TrimSpace(email) == "" {
		return nil, ErrMissingIdentity
	}

	usr, found, err := s.db.UpdateUserNames(ctx, email, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}

	token, err := s.tokens.Issue(usr.ID)
	if err != nil {
		return nil, err
	}

	return &models.UpdateProfileResponse{AuthToken: token}, nil
}
