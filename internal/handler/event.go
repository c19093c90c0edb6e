package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kalakriti/events-backend/internal/model"
	"github.com/kalakriti/events-backend/internal/repository"
)

// EventHandler serves the event catalogue.  Reads are public; mutations are
// admin-only at the route level.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(events *repository.EventRepo) *EventHandler {
	return &EventHandler{Events: events}
}

type createEventReq struct {
	EventName string `json:"event_name"`
	Season    string `json:"season"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type updateEventReq struct {
	EventName *string `json:"event_name"`
	Season    *string `json:"season"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

const dateLayout = "2006-01-02"

// Create inserts an event.  Dates must parse as YYYY-MM-DD and end must not
// precede start.
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventName == "" || req.Season == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_name and season required"})
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
	}
	if end.Before(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date before start_date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.Create(ctx, req.EventName, req.Season, req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create event"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Event created successfully",
		"event":   ev,
	})
}

// List returns events matching the query filters.
func (h *EventHandler) List(c echo.Context) error {
	f := repository.EventFilter{
		EventID:   c.QueryParam("event_id"),
		EventName: c.QueryParam("event_name"),
		Season:    c.QueryParam("season"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list events"})
	}
	if events == nil {
		events = []model.Event{}
	}
	return c.JSON(http.StatusOK, events)
}

// Get fetches one event.
func (h *EventHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch event"})
	}
	return c.JSON(http.StatusOK, ev)
}

// Update patches the mutable fields of an event.
func (h *EventHandler) Update(c echo.Context) error {
	var req updateEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	for _, d := range []*string{req.StartDate, req.EndDate} {
		if d == nil {
			continue
		}
		if _, err := time.Parse(dateLayout, *d); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.Update(ctx, c.Param("id"), repository.EventUpdate{
		EventName: req.EventName,
		Season:    req.Season,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update event"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Event updated successfully",
		"event":   ev,
	})
}

// Delete removes an event.
func (h *EventHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete event"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event deleted successfully"})
}
