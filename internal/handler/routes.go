package handler

import (
	"net/http"

	"github.com/msomdec/taskvault/internal/domain"
	"github.com/msomdec/taskvault/internal/service"
)

// Services bundles what the routes need.
type Services struct {
	Store    domain.Store
	Tokens   *service.TokenService
	Resolver *service.IdentityResolver
	Accounts *service.AccountService
	Tasks    *service.TaskService
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, svc Services) {
	authHandler := NewAuthHandler(svc.Store, svc.Accounts, svc.Tokens)
	userHandler := NewUserHandler(svc.Store, svc.Resolver)
	taskHandler := NewTaskHandler(svc.Store, svc.Resolver, svc.Tasks)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireBearer(h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz(svc.Store))

	mux.HandleFunc("POST /auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /auth/login", authHandler.HandleLogin)

	mux.Handle("GET /users/me", protected(userHandler.HandleMe))

	mux.Handle("POST /tasks", protected(taskHandler.HandleCreate))
	mux.Handle("GET /tasks", protected(taskHandler.HandleList))
	mux.Handle("GET /tasks/{id}", protected(taskHandler.HandleGet))
	mux.Handle("PUT /tasks/{id}", protected(taskHandler.HandleUpdate))
	mux.Handle("DELETE /tasks/{id}", protected(taskHandler.HandleDelete))
}
