package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kalakriti/events-backend/internal/model"
	"github.com/kalakriti/events-backend/internal/repository"
	"github.com/kalakriti/events-backend/internal/service"
)

// RegistrationHandler covers the direct (unpaid) registration path and the
// admin-facing CRUD over registration rows.
type RegistrationHandler struct {
	Registrations *service.RegistrationService
	Repo          *repository.RegistrationRepo
}

func NewRegistrationHandler(s *service.RegistrationService, r *repository.RegistrationRepo) *RegistrationHandler {
	return &RegistrationHandler{Registrations: s, Repo: r}
}

type createRegistrationReq struct {
	EventName    string `json:"event_name"`
	Season       string `json:"season"`
	ArtworkCount int    `json:"artwork_count"`
}

type updateRegistrationReq struct {
	EventName          *string `json:"event_name"`
	Season             *string `json:"season"`
	ArtworkCount       *int    `json:"artwork_count"`
	RegistrationStatus *string `json:"registration_status"`
}

// Create inserts a registration without a payment attached.  The row stays
// pending until a verified payment or an admin update moves it.
func (h *RegistrationHandler) Create(c echo.Context) error {
	var req createRegistrationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if req.EventName == "" || req.Season == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_name and season required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	reg, err := h.Registrations.CreateDirect(ctx, userID, req.EventName, req.Season, req.ArtworkCount)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create registration"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Registration created successfully",
		"registration": reg,
	})
}

// List returns registrations matching the query filters.  Non-admin callers
// only ever see their own rows regardless of the user_id filter they send.
func (h *RegistrationHandler) List(c echo.Context) error {
	f := repository.RegistrationFilter{
		UserID:    c.QueryParam("user_id"),
		EventName: c.QueryParam("event_name"),
		Season:    c.QueryParam("season"),
		Status:    c.QueryParam("registration_status"),
	}
	if role, _ := c.Get("role").(string); role != "admin" {
		f.UserID, _ = c.Get("user_id").(string)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	regs, err := h.Repo.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list registrations"})
	}
	if regs == nil {
		regs = []model.EventRegistration{}
	}
	return c.JSON(http.StatusOK, regs)
}

// Get fetches one registration.  Owners and admins only.
func (h *RegistrationHandler) Get(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reg, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch registration"})
	}
	if !callerOwnsOrAdmin(c, reg.UserID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, reg)
}

// Update patches the mutable fields.  Admin only; route-guarded.
func (h *RegistrationHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var req updateRegistrationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RegistrationStatus != nil {
		switch *req.RegistrationStatus {
		case model.RegistrationPending, model.RegistrationSuccess, model.RegistrationFailed:
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration_status"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reg, err := h.Repo.Update(ctx, id, repository.RegistrationUpdate{
		EventName:          req.EventName,
		Season:             req.Season,
		ArtworkCount:       req.ArtworkCount,
		RegistrationStatus: req.RegistrationStatus,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update registration"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Registration updated successfully",
		"registration": reg,
	})
}

// Delete removes a registration row.  Admin only; route-guarded.
func (h *RegistrationHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete registration"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Registration deleted successfully"})
}

// callerOwnsOrAdmin reports whether the authenticated caller may touch a
// resource owned by ownerID.
func callerOwnsOrAdmin(c echo.Context, ownerID string) bool {
	if role, _ := c.Get("role").(string); role == "admin" {
		return true
	}
	uid, _ := c.Get("user_id").(string)
	return uid != "" && uid == ownerID
}
