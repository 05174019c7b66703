package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"authgw/internal/auth"
	dErrors "authgw/pkg/domain-errors"
)

// AuthService is the login orchestration contract the handler depends on.
type AuthService interface {
	Login(ctx context.Context, creds auth.Credentials) (*auth.LoginResult, error)
}

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	logger *slog.Logger
	auth   AuthService
}

// NewAuthHandler creates the handler.
func NewAuthHandler(logger *slog.Logger, auth AuthService) *AuthHandler {
	return &AuthHandler{logger: logger, auth: auth}
}

// Register registers the auth routes with the chi router.
func (h *AuthHandler) Register(r chi.Router) {
	r.With(RequireJSON).Post("/api/auth/login", h.handleLogin)
	r.Get("/api/auth/test", h.handleAuthTest)
	r.Get("/api/app/test", h.handleAppTest)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var creds auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.logger.WarnContext(ctx, "malformed login request", "error", err.Error())
		WriteError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := validateCredentials(creds); err != nil {
		h.logger.WarnContext(ctx, "login request failed validation", "error", err.Error())
		WriteError(w, r, err)
		return
	}

	result, err := h.auth.Login(ctx, creds)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteData(w, r, http.StatusOK, result)
}

func (h *AuthHandler) handleAuthTest(w http.ResponseWriter, r *http.Request) {
	WriteData(w, r, http.StatusOK, map[string]string{
		"message": "Endpoint de autenticación funcionando",
	})
}

func (h *AuthHandler) handleAppTest(w http.ResponseWriter, r *http.Request) {
	WriteData(w, r, http.StatusOK, map[string]string{
		"message": "Application layer controller funcionando",
	})
}

func validateCredentials(creds auth.Credentials) error {
	fields := make(map[string]dErrors.FieldError)

	if govalidator.IsNull(creds.Username) {
		fields["username"] = dErrors.FieldError{
			Message:       "El nombre de usuario es requerido",
			RejectedValue: creds.Username,
		}
	} else if !govalidator.StringLength(creds.Username, "1", "255") {
		fields["username"] = dErrors.FieldError{
			Message:       "El nombre de usuario excede la longitud permitida",
			RejectedValue: creds.Username,
		}
	}

	// The rejected value for password failures is never echoed back.
	if govalidator.IsNull(creds.Password) {
		fields["password"] = dErrors.FieldError{
			Message:       "La contraseña es requerida",
			RejectedValue: nil,
		}
	} else if !govalidator.StringLength(creds.Password, "1", "255") {
		fields["password"] = dErrors.FieldError{
			Message:       "La contraseña excede la longitud permitida",
			RejectedValue: nil,
		}
	}

	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}
