// Package service holds the registration-payment flow that ties the gateway,
// the database, and notification dispatch together.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kalakriti/events-backend/internal/mailer"
	"github.com/kalakriti/events-backend/internal/model"
	"github.com/kalakriti/events-backend/internal/payment"
	"github.com/kalakriti/events-backend/internal/queue"
	"github.com/kalakriti/events-backend/internal/repository"
)

// ErrValidation marks bad input (non-positive amount or artwork count).
// Handlers translate it to 400.
var ErrValidation = errors.New("validation failed")

// ErrInvalidPayment is returned when the gateway signature check fails.  No
// registration exists when this comes back; nothing was written.
var ErrInvalidPayment = errors.New("invalid payment signature")

// ErrPersistence is returned when the registration insert fails after a
// verified payment.  The payment stands but no registration exists, which
// needs manual reconciliation against the gateway dashboard.
var ErrPersistence = errors.New("registration persistence failed")

// RegistrationService coordinates order creation, payment verification,
// registration persistence, and notification dispatch.
type RegistrationService struct {
	db      *sql.DB
	regs    *repository.RegistrationRepo
	users   *repository.UserRepo
	gateway payment.Gateway
	mail    mailer.Mailer

	// publish is swapped out in tests; the default dials the broker.
	publish func(context.Context, queue.RegistrationConfirmedEvent) error
}

// NewRegistrationService wires the orchestrator.
func NewRegistrationService(db *sql.DB, regs *repository.RegistrationRepo, users *repository.UserRepo, gw payment.Gateway, mail mailer.Mailer) *RegistrationService {
	return &RegistrationService{
		db:      db,
		regs:    regs,
		users:   users,
		gateway: gw,
		mail:    mail,
		publish: PublishRegistrationConfirmed,
	}
}

// CreateOrder asks the gateway for a payment order tied to a registration
// intent.  Nothing is persisted locally; two calls with the same arguments
// create two distinct gateway orders.
func (s *RegistrationService) CreateOrder(ctx context.Context, userID, eventName, season string, artworkCount int, amount int64) (payment.Order, error) {
	if amount <= 0 {
		return payment.Order{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if artworkCount <= 0 {
		return payment.Order{}, fmt.Errorf("%w: artwork_count must be positive", ErrValidation)
	}
	return s.gateway.CreateOrder(ctx, payment.OrderInput{
		UserID:       userID,
		EventName:    eventName,
		Season:       season,
		ArtworkCount: artworkCount,
		Amount:       amount,
	})
}

// VerifyInput carries the identifiers a client returns after completing
// payment, together with the registration intent they were created for.
type VerifyInput struct {
	PaymentID    string
	OrderID      string
	Signature    string
	UserID       string
	EventName    string
	Season       string
	ArtworkCount int
}

// VerifyAndRegister checks the payment signature, then creates the
// registration with status forced to success inside one transaction.
// Verification runs before any write, so a forged payment never creates a
// record.  Notification dispatch happens only after commit and its failure
// never surfaces: a failure to email must not undo a paid registration.
func (s *RegistrationService) VerifyAndRegister(ctx context.Context, in VerifyInput) (model.EventRegistration, error) {
	if in.ArtworkCount <= 0 {
		return model.EventRegistration{}, fmt.Errorf("%w: artwork_count must be positive", ErrValidation)
	}
	if err := s.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature); err != nil {
		return model.EventRegistration{}, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.EventRegistration{}, fmt.Errorf("%w: begin: %v", ErrPersistence, err)
	}
	reg, err := s.regs.CreateTx(ctx, tx, in.UserID, in.EventName, in.Season, in.ArtworkCount, model.RegistrationSuccess)
	if err != nil {
		_ = tx.Rollback()
		return model.EventRegistration{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := tx.Commit(); err != nil {
		return model.EventRegistration{}, fmt.Errorf("%w: commit: %v", ErrPersistence, err)
	}

	s.notify(ctx, reg, in.PaymentID, in.OrderID)
	return reg, nil
}

// CreateDirect is the unpaid registration path.  The row starts in the
// default pending status; only verified payments write success.  The same
// best-effort confirmation email goes out.
func (s *RegistrationService) CreateDirect(ctx context.Context, userID, eventName, season string, artworkCount int) (model.EventRegistration, error) {
	if artworkCount <= 0 {
		return model.EventRegistration{}, fmt.Errorf("%w: artwork_count must be positive", ErrValidation)
	}
	reg, err := s.regs.Create(ctx, userID, eventName, season, artworkCount, model.RegistrationPending)
	if err != nil {
		return model.EventRegistration{}, err
	}
	s.notify(ctx, reg, "", "")
	return reg, nil
}

// notify emails the participant and publishes a broker event.  Every failure
// path ends in a log line; the recover guard makes the isolation explicit
// instead of trusting each collaborator's own guarantees.
func (s *RegistrationService) notify(ctx context.Context, reg model.EventRegistration, paymentID, orderID string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("registration %s: notification dispatch panicked: %v", reg.EventRegistrationID, r)
		}
	}()

	user, err := s.users.GetByID(ctx, reg.UserID)
	if err != nil {
		log.Printf("registration %s: lookup user for email failed: %v", reg.EventRegistrationID, err)
		return
	}
	name := user.FullName
	if name == "" {
		name = user.Email
	}
	body, err := mailer.RenderRegistrationEmail(mailer.RegistrationEmailData{
		UserName:           name,
		RegistrationID:     reg.EventRegistrationID,
		EventName:          reg.EventName,
		Season:             reg.Season,
		ArtworkCount:       reg.ArtworkCount,
		RegistrationDate:   reg.CreatedDt.Format("January 2, 2006"),
		RegistrationStatus: titleCase(reg.RegistrationStatus),
	})
	if err != nil {
		log.Printf("registration %s: render email failed: %v", reg.EventRegistrationID, err)
		return
	}
	if !s.mail.Send(user.Email, "Registration Successful - "+reg.EventName, body, true) {
		log.Printf("registration %s: confirmation email not sent", reg.EventRegistrationID)
	}

	if reg.RegistrationStatus == model.RegistrationSuccess {
		_ = s.publish(ctx, queue.RegistrationConfirmedEvent{
			RegistrationID: reg.EventRegistrationID,
			UserID:         reg.UserID,
			EventName:      reg.EventName,
			Season:         reg.Season,
			ArtworkCount:   reg.ArtworkCount,
			PaymentID:      paymentID,
			OrderID:        orderID,
			Status:         reg.RegistrationStatus,
			ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// titleCase upper-cases the first byte of an ASCII status word ("pending"
// -> "Pending") for display in the email.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
