package handler

import (
	"context"
	"net/http"
	"net/mail"

	"github.com/msomdec/taskvault/internal/domain"
	"github.com/msomdec/taskvault/internal/service"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	store    domain.Store
	accounts *service.AccountService
	tokens   *service.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store domain.Store, accounts *service.AccountService, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{store: store, accounts: accounts, tokens: tokens}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validEmail reports whether s is a bare address such as "a@x.com".
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// HandleRegister creates an account.
// POST /auth/register
// Request:  {"email":"...","password":"..."}
// Response: {"id":1,"email":"...","is_active":true}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if !validEmail(req.Email) {
		writeError(w, http.StatusUnprocessableEntity, msgInvalidEmail)
		return
	}

	var user *domain.User
	err := h.store.WithinTx(r.Context(), func(ctx context.Context, sess domain.Session) error {
		var err error
		user, err = h.accounts.Register(ctx, sess, req.Email, req.Password)
		return err
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// HandleLogin exchanges credentials for an access token.
// POST /auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"access_token":"...","token_type":"bearer"}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if !validEmail(req.Email) {
		writeError(w, http.StatusUnprocessableEntity, msgInvalidEmail)
		return
	}

	var user *domain.User
	err := h.store.WithinTx(r.Context(), func(ctx context.Context, sess domain.Session) error {
		var err error
		user, err = h.accounts.Authenticate(ctx, sess, req.Email, req.Password)
		return err
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if user == nil {
		writeServiceError(w, r, domain.ErrLoginFailed)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenDTO{AccessToken: token, TokenType: "bearer"})
}
