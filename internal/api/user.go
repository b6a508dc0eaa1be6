package api

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"userhub/backend/internal/common"
	"userhub/backend/internal/constants"
	"userhub/backend/internal/db/repositories"
	"userhub/backend/internal/logging"
	"userhub/backend/internal/models/dtos"
	"userhub/backend/internal/services"
)

const maxBodyBytes = 1 << 20

// UserService is what the user handlers call.
type UserService interface {
	List(ctx context.Context) ([]dtos.UserResponse, error)
	Get(ctx context.Context, id string) (*dtos.UserResponse, error)
	Create(ctx context.Context, in dtos.UserInput) (*dtos.UserResponse, error)
	Update(ctx context.Context, id string, in dtos.UserInput) (*dtos.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

// ListUsersHandler handles GET /api/users
//
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Failure      500  {object}  dtos.APIResponse
// @Router       /api/users [get]
func ListUsersHandler(svc UserService, exposeErr bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			respondUserError(w, err, constants.MsgUserFetchFailed, exposeErr)
			return
		}
		common.RespondSuccess(w, constants.MsgUsersFetched, users)
	}
}

// GetUserHandler handles GET /api/users/{id}
//
// @Summary      Get a user
// @Tags         Users
// @Produce      json
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/users/{id} [get]
func GetUserHandler(svc UserService, exposeErr bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondUserError(w, err, constants.MsgUserFetchFailed, exposeErr)
			return
		}
		common.RespondSuccess(w, constants.MsgUserFetched, user)
	}
}

// CreateUserHandler handles POST /api/users
//
// @Summary      Create a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.UserInput  true  "User"
// @Success      201  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Failure      409  {object}  dtos.APIResponse
// @Router       /api/users [post]
func CreateUserHandler(svc UserService, exposeErr bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeUserInput(w, r)
		if err != nil {
			common.RespondError(w, err, constants.MsgInvalidUserBody, exposeErr, http.StatusBadRequest)
			return
		}

		user, err := svc.Create(r.Context(), in)
		if err != nil {
			respondUserError(w, err, constants.MsgUserSaveFailed, exposeErr)
			return
		}
		common.RespondSuccess(w, constants.MsgUserCreated, user, http.StatusCreated)
	}
}

// UpdateUserHandler handles PUT /api/users/{id}
//
// @Summary      Update a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id     path  string          true  "User ID"
// @Param        input  body  dtos.UserInput  true  "User"
// @Success      200  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Failure      409  {object}  dtos.APIResponse
// @Router       /api/users/{id} [put]
func UpdateUserHandler(svc UserService, exposeErr bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeUserInput(w, r)
		if err != nil {
			common.RespondError(w, err, constants.MsgInvalidUserBody, exposeErr, http.StatusBadRequest)
			return
		}

		user, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			respondUserError(w, err, constants.MsgUserSaveFailed, exposeErr)
			return
		}
		common.RespondSuccess(w, constants.MsgUserUpdated, user)
	}
}

// DeleteUserHandler handles DELETE /api/users/{id}
//
// @Summary      Delete a user
// @Tags         Users
// @Produce      json
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/users/{id} [delete]
func DeleteUserHandler(svc UserService, exposeErr bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondUserError(w, err, constants.MsgUserSaveFailed, exposeErr)
			return
		}
		common.RespondSuccess(w, constants.MsgUserDeleted, nil)
	}
}

// decodeUserInput accepts JSON and urlencoded form bodies.
func decodeUserInput(w http.ResponseWriter, r *http.Request) (dtos.UserInput, error) {
	var in dtos.UserInput
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return in, err
		}
		in.Name = r.PostForm.Get("name")
		in.Email = r.PostForm.Get("email")
		return in, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, err
	}
	return in, nil
}

// respondUserError maps service errors to status codes.
func respondUserError(w http.ResponseWriter, err error, fallback string, exposeErr bool) {
	switch {
	case errors.Is(err, services.ErrInvalidUser):
		common.RespondError(w, err, constants.MsgUserFieldsReq, exposeErr, http.StatusBadRequest)
	case errors.Is(err, repositories.ErrUserNotFound):
		common.RespondError(w, err, constants.MsgUserNotFound, exposeErr, http.StatusNotFound)
	case errors.Is(err, repositories.ErrEmailTaken):
		common.RespondError(w, err, constants.MsgEmailTaken, exposeErr, http.StatusConflict)
	default:
		logging.Error(fallback, "error", err.Error())
		common.RespondError(w, err, fallback, exposeErr, http.StatusInternalServerError)
	}
}
