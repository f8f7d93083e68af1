package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/upb/notice-board/app"
	"github.com/upb/notice-board/middleware"
	"github.com/upb/notice-board/models"
	"github.com/upb/notice-board/services"
	"github.com/upb/notice-board/utils"
)

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID       uuid.UUID   `json:"id"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	FullName string      `json:"fullName"`
}

// LoginResponse carries the session token and the logged in user
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	FullName string      `json:"fullName"`
}

// CreateNoticeRequest is the body of POST /notices
type CreateNoticeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Role:     u.Role,
		FullName: u.FullName,
	}
}

// LoginHandler handles POST /auth/login
func LoginHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleDecodeError(w, err, deps.Logger)
			return
		}

		result, err := deps.AuthService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteJSON(w, http.StatusOK, LoginResponse{
			Token: result.Token,
			User:  newUserResponse(result.User),
		})
	}
}

// CreateUserHandler handles POST /users
func CreateUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		var req CreateUserRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleDecodeError(w, err, deps.Logger)
			return
		}

		user, err := deps.UserService.CreateUser(r.Context(), actor, services.CreateUserInput{
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
			FullName: req.FullName,
		})
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteJSON(w, http.StatusCreated, newUserResponse(user))
	}
}

// ListNoticesHandler handles GET /notices
func ListNoticesHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		notices, err := deps.NoticeService.List(r.Context(), actor)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		if notices == nil {
			notices = []*models.Notice{}
		}

		_ = utils.WriteJSON(w, http.StatusOK, notices)
	}
}

// CreateNoticeHandler handles POST /notices
func CreateNoticeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		var req CreateNoticeRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleDecodeError(w, err, deps.Logger)
			return
		}

		notice, err := deps.NoticeService.Create(r.Context(), actor, services.CreateNoticeInput{
			Title:   req.Title,
			Content: req.Content,
		})
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteJSON(w, http.StatusCreated, notice)
	}
}

// GetNoticeHandler handles GET /notices/{id}
func GetNoticeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			HandleServiceError(w, services.ErrNoticeNotFound, deps.Logger)
			return
		}

		notice, err := deps.NoticeService.Get(r.Context(), actor, id)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteJSON(w, http.StatusOK, notice)
	}
}

// DeleteNoticeHandler handles DELETE /notices/{id}
func DeleteNoticeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		// a malformed id cannot name an existing notice
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			HandleServiceError(w, services.ErrNoticeNotFound, deps.Logger)
			return
		}

		if err := deps.NoticeService.Delete(r.Context(), actor, id); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteMessage(w, http.StatusOK, "Notice deleted successfully")
	}
}

func requireActor(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		_ = utils.WriteUnauthorized(w, services.ErrMissingToken.Message)
	}
	return actor, ok
}
