// Package router wires the HTTP surface: route registration, request
// decoding, service error mapping, and the middleware chain.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/giftlink/giftlink-backend/internal/gzippedhttp"
	"github.com/giftlink/giftlink-backend/internal/logger"
	"github.com/giftlink/giftlink-backend/internal/models"
	"github.com/giftlink/giftlink-backend/internal/service"
)

type credentialService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)

	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)

	UpdateProfile(
		ctx context.Context,
		email string,
		req models.UpdateProfileRequest,
	) (*models.UpdateProfileResponse, error)
}

type giftService interface {
	Search(ctx context.Context, params service.SearchParams) ([]models.Gift, error)

	List(ctx context.Context) ([]models.Gift, error)

	GetByID(ctx context.Context, id string) (models.Gift, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type handlers struct {
	credentials credentialService
	gifts       giftService
	db          pinger
}

// New builds the HTTP handler for the service.
func New(
	credentials credentialService,
	gifts giftService,
	db pinger,
) http.Handler {
	h := &handlers{
		credentials: credentials,
		gifts:       gifts,
		db:          db,
	}

	router := chi.NewRouter()
	router.Use(logger.WithLoggingHTTPMiddleware)
	router.Use(recoverPanic)
	router.Use(corsHeaders)
	router.Use(gzippedhttp.UngzipJSONAndTextHTMLRequest)
	router.Use(gzippedhttp.GzipResponse)

	router.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", h.postRegister)
		api.Post("/auth/login", h.postLogin)
		api.Put("/auth/update", h.putUpdate)

		api.Get("/search", h.getSearch)
		api.Get("/gifts", h.getGifts)
		api.Get("/gifts/{id}", h.getGiftByID)
	})

	router.Get("/ping", h.getPing)

	return router
}

func (h *handlers) postRegister(response http.ResponseWriter, request *http.Request) {
	var req models.RegisterRequest
	if !decodeJSONRequest(response, request, &req) {
		return
	}

	result, err := h.credentials.Register(request.Context(), req)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	writeJSON(response, http.StatusCreated, result)
}

func (h *handlers) postLogin(response http.ResponseWriter, request *http.Request) {
	var req models.LoginRequest
	if !decodeJSONRequest(response, request, &req) {
		return
	}

	result, err := h.credentials.Login(request.Context(), req)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	writeJSON(response, http.StatusOK, result)
}

func (h *handlers) putUpdate(response http.ResponseWriter, request *http.Request) {
	var req models.UpdateProfileRequest
	if !decodeJSONRequest(response, request, &req) {
		return
	}

	// The target account's email is taken from the Email header, not
	// from the bearer token; see the design notes in DESIGN.md.
	email := request.Header.Get("Email")

	result, err := h.credentials.UpdateProfile(request.Context(), email, req)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	writeJSON(response, http.StatusOK, result)
}

func (h *handlers) getSearch(response http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	gifts, err := h.gifts.Search(request.Context(), service.SearchParams{
		Name:      query.Get("name"),
		Category:  query.Get("category"),
		Condition: query.Get("condition"),
		AgeYears:  query.Get("age_years"),
	})
	if err != nil {
		writeServiceError(response, err)
		return
	}

	writeJSON(response, http.StatusOK, gifts)
}

func (h *handlers) getGifts(response http.ResponseWriter, request *http.Request) {
	gifts, err := h.gifts.List(request.Context())
	if err != nil {
		writeServiceError(response, err)
		return
	}

	writeJSON(response, http.StatusOK, gifts)
}

func (h *handlers) getGiftByID(response http.ResponseWriter, request *http.Request) {
	gift, err := h.gifts.GetByID(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		writeServiceError(response, err)
		return
	}

	writeJSON(response, http.StatusOK, gift)
}

func (h *handlers) getPing(response http.ResponseWriter, request *http.Request) {
	if err := h.db.Ping(request.Context()); err != nil {
		writeServiceError(response, err)
		return
	}

	response.WriteHeader(http.StatusOK)
}

func decodeJSONRequest(response http.ResponseWriter, request *http.Request, target interface{}) bool {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		logger.Log.Debugln("Error decoding the request body:", zap.Error(err))
		writeErrorMessage(response, http.StatusBadRequest, "invalid request body")

		return false
	}

	return true
}

// writeServiceError maps a service error to its HTTP status and JSON
// shape. Unrecognized errors are logged and reported as a generic 500.
func writeServiceError(response http.ResponseWriter, err error) {
	var validationError *service.ValidationError
	if errors.As(err, &validationError) {
		writeJSON(
			response,
			http.StatusBadRequest,
			map[string][]service.FieldViolation{"errors": validationError.Violations},
		)

		return
	}

	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeErrorMessage(response, http.StatusBadRequest, "Email already exists")

	case errors.Is(err, service.ErrInvalidCredentials):
		writeErrorMessage(response, http.StatusUnauthorized, "Invalid credentials")

	case errors.Is(err, service.ErrMissingIdentity):
		writeErrorMessage(response, http.StatusBadRequest, "Email not found in headers")

	case errors.Is(err, service.ErrUserNotFound):
		writeErrorMessage(response, http.StatusNotFound, "User not found")

	case errors.Is(err, service.ErrGiftNotFound):
		writeErrorMessage(response, http.StatusNotFound, "Gift not found")

	default:
		logger.Log.Errorln("Unhandled service error:", zap.Error(err))
		writeErrorMessage(response, http.StatusInternalServerError, "Internal Server Error")
	}
}

func writeErrorMessage(response http.ResponseWriter, status int, message string) {
	writeJSON(response, status, map[string]string{"error": message})
}

func writeJSON(response http.ResponseWriter, status int, payload interface{}) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(status)

	if err := json.NewEncoder(response).Encode(payload); err != nil {
		logger.Log.Debugln("Error encoding the response body:", zap.Error(err))
	}
}

// recoverPanic turns a panicking handler into a generic 500 so that no
// failure detail leaks to the caller.
func recoverPanic(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Log.Errorln("Recovered from panic in handler:", recovered)
				writeErrorMessage(response, http.StatusInternalServerError, "Internal Server Error")
			}
		}()

		h.ServeHTTP(response, request)
	}

	return http.HandlerFunc(middleware)
}

// corsHeaders mirrors the permissive CORS policy of the frontend-facing
// deployment.
func corsHeaders(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		response.Header().Set("Access-Control-Allow-Origin", "*")
		response.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		response.Header().Set("Access-Control-Allow-Headers", "Content-Type, Email, Authorization")

		if request.Method == http.MethodOptions {
			response.WriteHeader(http.StatusNoContent)
			return
		}

		h.ServeHTTP(response, request)
	}

	return http.HandlerFunc(middleware)
}
