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

// ResultHandler serves competition results.  Reads are open to signed-in
// users; publishing and corrections are admin-only at the route level.
type ResultHandler struct {
	Results *repository.ResultRepo
}

func NewResultHandler(results *repository.ResultRepo) *ResultHandler {
	return &ResultHandler{Results: results}
}

type createResultReq struct {
	Name      string  `json:"name"`
	UserID    string  `json:"user_id"`
	Score     int     `json:"score"`
	Remarks   *string `json:"remarks"`
	Category  string  `json:"category"`
	Rank      int     `json:"rank"`
	EventName string  `json:"event_name"`
	Season    string  `json:"season"`
}

type updateResultReq struct {
	Name     *string `json:"name"`
	Score    *int    `json:"score"`
	Remarks  *string `json:"remarks"`
	Category *string `json:"category"`
	Rank     *int    `json:"rank"`
}

// Create publishes a result.
func (h *ResultHandler) Create(c echo.Context) error {
	var req createResultReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == "" || req.EventName == "" || req.Season == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id, event_name and season required"})
	}
	if req.Rank < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rank must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Results.Create(ctx, repository.NewResultInput{
		Name:      req.Name,
		UserID:    req.UserID,
		Score:     req.Score,
		Remarks:   req.Remarks,
		Category:  req.Category,
		Rank:      req.Rank,
		EventName: req.EventName,
		Season:    req.Season,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create result"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Result created successfully",
		"result":  res,
	})
}

// List returns results matching the query filters, ordered by rank.
func (h *ResultHandler) List(c echo.Context) error {
	f := repository.ResultFilter{
		UserID:    c.QueryParam("user_id"),
		EventName: c.QueryParam("event_name"),
		Season:    c.QueryParam("season"),
		Category:  c.QueryParam("category"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	results, err := h.Results.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list results"})
	}
	if results == nil {
		results = []model.Result{}
	}
	return c.JSON(http.StatusOK, results)
}

// Get fetches one result.
func (h *ResultHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Results.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "result not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch result"})
	}
	return c.JSON(http.StatusOK, res)
}

// Update corrects a published result.
func (h *ResultHandler) Update(c echo.Context) error {
	var req updateResultReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rank != nil && *req.Rank < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rank must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Results.Update(ctx, c.Param("id"), repository.ResultUpdate{
		Name:     req.Name,
		Score:    req.Score,
		Remarks:  req.Remarks,
		Category: req.Category,
		Rank:     req.Rank,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "result not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update result"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Result updated successfully",
		"result":  res,
	})
}

// Delete removes a result.
func (h *ResultHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Results.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "result not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete result"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Result deleted successfully"})
}
