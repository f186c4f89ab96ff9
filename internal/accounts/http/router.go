package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mbickford/accounts-service/internal/accounts/repository"
	"github.com/mbickford/accounts-service/internal/accounts/service"
	"github.com/mbickford/accounts-service/internal/common/config"
	"github.com/mbickford/accounts-service/internal/common/constants"
	commonhttp "github.com/mbickford/accounts-service/internal/common/http"
	"github.com/mbickford/accounts-service/internal/common/logger"
)

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`

	// Accepted for wire compatibility, currently unused.
	FullName string `json:"full_name"`
	Disabled *bool  `json:"disabled"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type validateRequest struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Email        string `json:"email"`
}

type Handler struct {
	auth           *service.AuthService
	validate       *validator.Validate
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewHandler(auth *service.AuthService, cfg config.Config, log *logger.Logger) http.Handler {
	h := &Handler{
		auth:           auth,
		validate:       validator.New(),
		log:            log,
		requestTimeout: cfg.RequestTimeout,
	}

	requireIdentity := RequireIdentity(auth, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.HandleFunc("/token", h.token)
	mux.HandleFunc("/token/validate", h.validateToken)
	mux.HandleFunc("/api/users", h.signup)
	mux.Handle("/users/me", requireIdentity(http.HandlerFunc(h.me)))
	return mux
}

// token multiplexes the session operations sharing the /token path: POST
// logs in, GET reads the cookie-borne token back, DELETE logs out.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.login(w, r)
	case http.MethodGet:
		h.readToken(w, r)
	case http.MethodDelete:
		h.logout(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.Warnf("login failed: invalid form: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidForm, "invalid form data")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.auth.Login(ctx, r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeUnauthenticated(w)
			return
		}
		h.log.Errorf("login failed: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, commonhttp.CodeUnknown, "internal error")
		return
	}

	setAccessCookie(w, r, result.AccessToken)
	commonhttp.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
	})
}

// readToken echoes the cookie token back as JSON. A missing cookie is not an
// error; the response is simply empty.
func (h *Handler) readToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(constants.AccessTokenCookieName)
	if err != nil || cookie.Value == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: cookie.Value})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	// Idempotent: the cookie is cleared whether or not a session existed.
	clearAccessCookie(w, r)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
		return
	}

	var req signupRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("signup failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Warnf("signup failed: validation: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	_, err := h.auth.Signup(ctx, service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameAlreadyExists) {
			commonhttp.WriteError(w, http.StatusConflict, commonhttp.CodeUsernameTaken, "username already taken")
			return
		}
		h.log.Errorf("signup failed: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, commonhttp.CodeUnknown, "internal error")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
		return
	}

	user, ok := IdentityFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, userResponse{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Email:        user.Email,
	})
}

// validateToken is a signature-only check: it does not require the subject
// to name an existing user, unlike the identity middleware.
func (h *Handler) validateToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
		return
	}

	var req validateRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("validate failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	claims, err := h.auth.ValidateToken(req.Token)
	if err != nil {
		commonhttp.WriteJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid token"})
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, claims)
}
