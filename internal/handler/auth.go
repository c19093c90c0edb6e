package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kalakriti/events-backend/internal/config"
	"github.com/kalakriti/events-backend/internal/repository"
	"github.com/kalakriti/events-backend/internal/utils"
)

// AuthHandler bundles dependencies for signup and signin.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type signupReq struct {
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	FullName           string  `json:"full_name"`
	PhoneNumber        string  `json:"phone_number"`
	Age                *string `json:"age"`
	Address            *string `json:"address"`
	City               *string `json:"city"`
	State              *string `json:"state"`
	PreviousExperience *string `json:"previous_experience"`
}

type signinReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup: create the user and hand back a bearer token immediately so the
// client can proceed straight to registration.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and full_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, repository.NewUserInput{
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
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.UserID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "User created successfully",
		"user":         u,
		"access_token": access.Token,
		"token_type":   "bearer",
	})
}

// Signin: verify credentials and return a fresh token.  Inactive accounts
// authenticate like unknown ones so the response leaks nothing.
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.UserID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Login successful",
		"user":           u,
		"access_token":   access.Token,
		"token_type":     "bearer",
		"token_validity": access.Exp,
	})
}

// Me: simple protected endpoint echoing the token's identity.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"role":    c.Get("role"),
	})
}
