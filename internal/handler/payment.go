package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kalakriti/events-backend/internal/service"
)

// PaymentHandler exposes the order-creation and verification endpoints of
// the registration-payment flow.
type PaymentHandler struct {
	Registrations *service.RegistrationService
}

func NewPaymentHandler(s *service.RegistrationService) *PaymentHandler {
	return &PaymentHandler{Registrations: s}
}

type createOrderReq struct {
	EventName    string `json:"event_name"`
	Season       string `json:"season"`
	ArtworkCount int    `json:"artwork_count"`
	Amount       int64  `json:"amount"`
}

type verifyPaymentReq struct {
	PaymentID    string `json:"payment_id"`
	OrderID      string `json:"order_id"`
	Signature    string `json:"signature"`
	EventName    string `json:"event_name"`
	Season       string `json:"season"`
	ArtworkCount int    `json:"artwork_count"`
}

// CreateOrder asks the gateway for an order tied to the caller's
// registration intent.  The user comes from the token, never the body.
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	var req createOrderReq
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

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	order, err := h.Registrations.CreateOrder(ctx, userID, req.EventName, req.Season, req.ArtworkCount, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}
	return c.JSON(http.StatusOK, order)
}

// Verify checks the gateway signature and, on success, records the paid
// registration.  A bad signature is the client's problem (400); a database
// failure after a verified payment is ours (500).
func (h *PaymentHandler) Verify(c echo.Context) error {
	var req verifyPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if req.PaymentID == "" || req.OrderID == "" || req.Signature == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_id, order_id and signature required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	reg, err := h.Registrations.VerifyAndRegister(ctx, service.VerifyInput{
		PaymentID:    req.PaymentID,
		OrderID:      req.OrderID,
		Signature:    req.Signature,
		UserID:       userID,
		EventName:    req.EventName,
		Season:       req.Season,
		ArtworkCount: req.ArtworkCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidPayment):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment signature"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment verification failed"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":         "Payment verified and registration created successfully",
		"registration_id": reg.EventRegistrationID,
		"payment_id":      req.PaymentID,
	})
}
