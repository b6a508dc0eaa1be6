package api

import "net/http"

type Handlers struct {
	health    HealthReporter
	users     UserService
	exposeErr bool
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		health:    deps.Services.Health,
		users:     deps.Services.User,
		exposeErr: deps.Config.IsDevelopment(),
	}
}

func (h *Handlers) Liveness() http.HandlerFunc {
	return LivenessHandler(h.health)
}

func (h *Handlers) Readiness() http.HandlerFunc {
	return ReadinessHandler(h.health)
}

func (h *Handlers) HealthCheck() http.HandlerFunc {
	return HealthCheckHandler(h.health)
}

func (h *Handlers) ListUsers() http.HandlerFunc {
	return ListUsersHandler(h.users, h.exposeErr)
}

func (h *Handlers) GetUser() http.HandlerFunc {
	return GetUserHandler(h.users, h.exposeErr)
}

func (h *Handlers) CreateUser() http.HandlerFunc {
	return CreateUserHandler(h.users, h.exposeErr)
}

func (h *Handlers) UpdateUser() http.HandlerFunc {
	return UpdateUserHandler(h.users, h.exposeErr)
}

func (h *Handlers) DeleteUser() http.HandlerFunc {
	return DeleteUserHandler(h.users, h.exposeErr)
}
