package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/giftlink/giftlink-backend/internal/auth"
	"github.com/giftlink/giftlink-backend/internal/db/memorystorage"
	"github.com/giftlink/giftlink-backend/internal/logger"
	"github.com/giftlink/giftlink-backend/internal/mockstorage"
	"github.com/giftlink/giftlink-backend/internal/models"
	"github.com/giftlink/giftlink-backend/internal/service"
)

const testSigningSecret = "test-signing-secret"

func TestMain(m *testing.M) {
	if err := logger.Init("debug"); err != nil {
		panic(err)
	}

	m.Run()
}

type testServer struct {
	server *httptest.Server
	client *resty.Client
	db     *memorystorage.MemoryStorage
	issuer *auth.Issuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := memorystorage.New()
	require.NoError(t, err)

	issuer := auth.New([]byte(testSigningSecret))

	handler := New(
		service.NewCredentials(db, issuer),
		service.NewGifts(db),
		db,
	)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testServer{
		server: server,
		client: resty.New().SetBaseURL(server.URL),
		db:     db,
		issuer: issuer,
	}
}

func (ts *testServer) seedGifts(t *testing.T) {
	t.Helper()

	err := ts.db.ReplaceGifts(context.Background(), []models.Gift{
		{ID: "1", Name: "Car", Category: "Toys", Condition: "New", AgeYears: 1},
		{ID: "2", Name: "Racecar", Category: "Toys", Condition: "Used", AgeYears: 3},
		{ID: "3", Name: "Television", Category: "Electronics", Condition: "Used", AgeYears: 2},
	})
	require.NoError(t, err)
}

func registerBody(email string) map[string]string {
	return map[string]string{
		"email":     email,
		"password":  "s3cret-password",
		"firstName": "Jane",
		"lastName":  "Doe",
	}
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.R().
		SetBody(registerBody("jane@example.com")).
		Post("/api/auth/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode())

	var result models.RegisterResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &result))
	assert.Equal(t, "jane@example.com", result.Email)

	userID, err := ts.issuer.Parse(result.AuthToken)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.R().
		SetBody(registerBody("jane@example.com")).
		Post("/api/auth/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	resp, err = ts.client.R().
		SetBody(registerBody("jane@example.com")).
		Post("/api/auth/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.JSONEq(t, `{"error": "Email already exists"}`, string(resp.Body()))
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.R().
		SetBody(map[string]string{
			"email":    "not-an-email",
			"password": "short",
		}).
		Post("/api/auth/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	var result struct {
		Errors []service.FieldViolation `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(resp.Body(), &result))
	assert.Len(t, result.Errors, 4)
}

func TestRegisterMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody("{not json").
		Post("/api/auth/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.R().
		SetBody(registerBody("jane@example.com")).
		Post("/api/auth/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	resp, err = ts.client.R().
		SetBody(map[string]string{
			"email":    "jane@example.com",
			"password": "s3cret-password",
		}).
		Post("/api/auth/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	var result models.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &result))
	assert.Equal(t, "Jane", result.UserName)
	assert.Equal(t, "jane@example.com", result.UserEmail)
	assert.NotEmpty(t, result.AuthToken)
}

func TestLoginInvalidCredentialsShape(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.R().
		SetBody(registerBody("jane@example.com")).
		Post("/api/auth/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	unknownUser, err := ts.client.R().
		SetBody(map[string]string{
			"email":    "nobody@example.com",
			"password": "whatever-password",
		}).
		Post("/api/auth/login")
	require.NoError(t, err)

	wrongPassword, err := ts.client.R().
		SetBody(map[string]string{
			"email":    "jane@example.com",
			"password": "wrong-password",
		}).
		Post("/api/auth/login")
	require.NoError(t, err)

	// Both failure modes must be indistinguishable to the caller.
	assert.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode())
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode())
	assert.Equal(t, string(unknownUser.Body()), string(wrongPassword.Body()))
	assert.JSONEq(t, `{"error": "Invalid credentials"}`, string(unknownUser.Body()))
}

func TestUpdateProfile(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.R().
		SetBody(registerBody("jane@example.com")).
		Post("/api/auth/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	resp, err = ts.client.R().
		SetHeader("Email", "jane@example.com").
		SetBody(map[string]string{
			"firstName": "Janet",
			"lastName":  "Smith",
		}).
		Put("/api/auth/update")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	var result models.UpdateProfileResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &result))
	assert.NotEmpty(t, result.AuthToken)

	usr, found, err := ts.db.FindUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Janet", usr.FirstName)
}

func TestUpdateProfileMissingHeader(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.R().
		SetBody(map[string]string{
			"firstName": "Janet",
			"lastName":  "Smith",
		}).
		Put("/api/auth/update")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.JSONEq(t, `{"error": "Email not found in headers"}`, string(resp.Body()))
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.R().
		SetHeader("Email", "nobody@example.com").
		SetBody(map[string]string{
			"firstName": "Janet",
			"lastName":  "Smith",
		}).
		Put("/api/auth/update")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.JSONEq(t, `{"error": "User not found"}`, string(resp.Body()))
}

func searchIDs(t *testing.T, body []byte) []string {
	t.Helper()

	var gifts []models.Gift
	require.NoError(t, json.Unmarshal(body, &gifts))

	ids := []string{}
	for _, gift := range gifts {
		ids = append(ids, gift.ID)
	}

	return ids
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)
	ts.seedGifts(t)

	tests := []struct {
		name    string
		query   map[string]string
		wantIDs []string
	}{
		{"no parameters", map[string]string{}, []string{"1", "2", "3"}},
		{"category", map[string]string{"category": "Electronics"}, []string{"3"}},
		{"name substring", map[string]string{"name": "car"}, []string{"1", "2"}},
		{"age upper bound", map[string]string{"age_years": "2"}, []string{"1", "3"}},
		{"intersection", map[string]string{"name": "car", "age_years": "2"}, []string{"1"}},
		{"non-numeric age ignored", map[string]string{"age_years": "old"}, []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ts.client.R().
				SetQueryParams(tt.query).
				Get("/api/search")
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode())
			assert.Equal(t, tt.wantIDs, searchIDs(t, resp.Body()))
		})
	}
}

func TestGetGifts(t *testing.T) {
	ts := newTestServer(t)
	ts.seedGifts(t)

	resp, err := ts.client.R().Get("/api/gifts")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Len(t, searchIDs(t, resp.Body()), 3)
}

func TestGetGiftByID(t *testing.T) {
	ts := newTestServer(t)
	ts.seedGifts(t)

	resp, err := ts.client.R().Get("/api/gifts/2")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	var gift models.Gift
	require.NoError(t, json.Unmarshal(resp.Body(), &gift))
	assert.Equal(t, "Racecar", gift.Name)

	resp, err = ts.client.R().Get("/api/gifts/999")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.JSONEq(t, `{"error": "Gift not found"}`, string(resp.Body()))
}

func TestStoreFailureYieldsInternalError(t *testing.T) {
	storageMock := &mockstorage.StorageMock{}
	storageMock.
		On("FindUserByEmail", mock.Anything, "jane@example.com").
		Return(nil, false, errors.New("store is down"))
	storageMock.
		On("FindGifts", mock.Anything, mock.Anything).
		Return(nil, errors.New("store is down"))

	issuer := auth.New([]byte(testSigningSecret))
	handler := New(
		service.NewCredentials(storageMock, issuer),
		service.NewGifts(storageMock),
		storageMock,
	)

	server := httptest.NewServer(handler)
	defer server.Close()

	client := resty.New().SetBaseURL(server.URL)

	resp, err := client.R().
		SetBody(map[string]string{
			"email":    "jane@example.com",
			"password": "s3cret-password",
		}).
		Post("/api/auth/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.JSONEq(t, `{"error": "Internal Server Error"}`, string(resp.Body()))

	resp, err = client.R().Get("/api/search")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.JSONEq(t, `{"error": "Internal Server Error"}`, string(resp.Body()))
}

func TestPing(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.R().Get("/ping")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}
