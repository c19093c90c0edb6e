package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kalakriti/events-backend/internal/config"
	"github.com/kalakriti/events-backend/internal/model"
	"github.com/kalakriti/events-backend/internal/repository"
)

// UserHandler serves profile reads and updates.  Listing is admin-only at
// the route level; reads and writes on a single user require ownership or
// the admin role.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

type updateUserReq struct {
	Email              *string `json:"email"`
	Password           *string `json:"password"`
	FullName           *string `json:"full_name"`
	PhoneNumber        *string `json:"phone_number"`
	Age                *string `json:"age"`
	Address            *string `json:"address"`
	City               *string `json:"city"`
	State              *string `json:"state"`
	PreviousExperience *string `json:"previous_experience"`
}

// List returns active users matching the query filters.
func (h *UserHandler) List(c echo.Context) error {
	f := repository.UserFilter{
		UserID: c.QueryParam("user_id"),
		Email:  c.QueryParam("email"),
		City:   c.QueryParam("city"),
		State:  c.QueryParam("state"),
		Age:    c.QueryParam("age"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list users"})
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Get fetches one active user by id.
func (h *UserHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !callerOwnsOrAdmin(c, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch user"})
	}
	return c.JSON(http.StatusOK, user)
}

// Update patches the caller's own profile, or any profile when the caller
// is an admin.
func (h *UserHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !callerOwnsOrAdmin(c, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Password != nil && len(*req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Update(ctx, id, repository.UserUpdate{
		Email:              req.Email,
		Password:           req.Password,
		FullName:           req.FullName,
		PhoneNumber:        req.PhoneNumber,
		Age:                req.Age,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		PreviousExperience: req.PreviousExperience,
	}, h.Cfg.BcryptCost)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already registered"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Delete deactivates a user.  The row stays; the status flag flips so past
// registrations keep a valid owner.
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !callerOwnsOrAdmin(c, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
