package handler

import (
	"context"
	"net/http"

	"github.com/msomdec/taskvault/internal/domain"
	"github.com/msomdec/taskvault/internal/service"
)

// UserHandler serves the caller's own account.
type UserHandler struct {
	store    domain.Store
	resolver *service.IdentityResolver
}

func NewUserHandler(store domain.Store, resolver *service.IdentityResolver) *UserHandler {
	return &UserHandler{store: store, resolver: resolver}
}

// HandleMe returns the authenticated user.
// GET /users/me
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	var user *domain.User
	err := h.store.WithinTx(r.Context(), func(ctx context.Context, sess domain.Session) error {
		var err error
		user, err = h.resolver.Resolve(ctx, sess, TokenFromContext(ctx))
		return err
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}
