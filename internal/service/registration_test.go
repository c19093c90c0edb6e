package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakriti/events-backend/internal/mailer"
	"github.com/kalakriti/events-backend/internal/model"
	"github.com/kalakriti/events-backend/internal/payment"
	"github.com/kalakriti/events-backend/internal/queue"
	"github.com/kalakriti/events-backend/internal/repository"
)

// fakeGateway counts orders and lets tests force a signature mismatch.
type fakeGateway struct {
	orders     int
	failVerify bool
}

func (g *fakeGateway) CreateOrder(_ context.Context, in payment.OrderInput) (payment.Order, error) {
	g.orders++
	return payment.Order{
		OrderID:  fmt.Sprintf("order_fake_%d", g.orders),
		Amount:   in.Amount * 100,
		Currency: "INR",
		Key:      "rzp_test_key",
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) error {
	if g.failVerify {
		return payment.ErrSignatureMismatch
	}
	return nil
}

const (
	insertRegistrationSQL = `INSERT INTO event_registrations (event_registration_id, user_id, event_name, season, artwork_count, registration_status) VALUES (?,?,?,?,?,?)`
	selectRegistrationSQL = `SELECT event_registration_id, user_id, event_name, season, artwork_count, registration_status, created_dt, updated_dt FROM event_registrations WHERE event_registration_id=?`
	selectUserSQL         = `SELECT user_id, email, full_name, password, phone_number, age, address, city, state, previous_experience, role, status, created_at, updated_at FROM users WHERE user_id=? AND status=1 LIMIT 1`
)

func newTestService(t *testing.T, gw payment.Gateway, mail mailer.Mailer) (*RegistrationService, sqlmock.Sqlmock, *[]queue.RegistrationConfirmedEvent) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewRegistrationService(db, repository.NewRegistrationRepo(db), repository.NewUserRepo(db), gw, mail)
	var published []queue.RegistrationConfirmedEvent
	svc.publish = func(_ context.Context, e queue.RegistrationConfirmedEvent) error {
		published = append(published, e)
		return nil
	}
	return svc, mock, &published
}

func registrationRow(id, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"event_registration_id", "user_id", "event_name", "season",
		"artwork_count", "registration_status", "created_dt", "updated_dt",
	}).AddRow(id, "USER1234567", "Painting Contest", "2026", 2, status, time.Now().UTC(), nil)
}

func userRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "email", "full_name", "password", "phone_number",
		"age", "address", "city", "state", "previous_experience",
		"role", "status", "created_at", "updated_at",
	}).AddRow("USER1234567", "asha@example.com", "Asha Rao", "$2a$10$hash", "9999999999",
		nil, nil, nil, nil, nil, "user", true, time.Now().UTC(), nil)
}

func TestCreateOrderValidation(t *testing.T) {
	gw := &fakeGateway{}
	svc, _, _ := newTestService(t, gw, mailer.NewMockMailer())

	_, err := svc.CreateOrder(context.Background(), "USER1234567", "Painting Contest", "2026", 2, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateOrder(context.Background(), "USER1234567", "Painting Contest", "2026", 0, 500)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Zero(t, gw.orders, "gateway must not be called for invalid input")
}

func TestCreateOrderNoDeduplication(t *testing.T) {
	// Identical inputs create two distinct gateway orders; there is no
	// local ledger to deduplicate against.
	gw := &fakeGateway{}
	svc, _, _ := newTestService(t, gw, mailer.NewMockMailer())

	first, err := svc.CreateOrder(context.Background(), "USER1234567", "Painting Contest", "2026", 2, 500)
	require.NoError(t, err)
	second, err := svc.CreateOrder(context.Background(), "USER1234567", "Painting Contest", "2026", 2, 500)
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)
	assert.Equal(t, int64(50000), first.Amount)
	assert.Equal(t, 2, gw.orders)
}

func TestVerifyAndRegisterBadSignature(t *testing.T) {
	svc, mock, published := newTestService(t, &fakeGateway{failVerify: true}, mailer.NewMockMailer())

	_, err := svc.VerifyAndRegister(context.Background(), VerifyInput{
		PaymentID: "pay_1", OrderID: "order_1", Signature: "forged",
		UserID: "USER1234567", EventName: "Painting Contest", Season: "2026", ArtworkCount: 2,
	})
	assert.ErrorIs(t, err, ErrInvalidPayment)
	assert.Empty(t, *published)
	assert.NoError(t, mock.ExpectationsWereMet(), "no database write may happen on a bad signature")
}

func TestVerifyAndRegisterSuccess(t *testing.T) {
	mail := mailer.NewMockMailer()
	svc, mock, published := newTestService(t, &fakeGateway{}, mail)

	mock.ExpectBegin()
	mock.ExpectExec(insertRegistrationSQL).
		WithArgs(sqlmock.AnyArg(), "USER1234567", "Painting Contest", "2026", 2, model.RegistrationSuccess).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectRegistrationSQL).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(registrationRow("REG1234567", model.RegistrationSuccess))
	mock.ExpectCommit()
	mock.ExpectQuery(selectUserSQL).
		WithArgs("USER1234567").
		WillReturnRows(userRow())

	reg, err := svc.VerifyAndRegister(context.Background(), VerifyInput{
		PaymentID: "pay_1", OrderID: "order_1", Signature: "good",
		UserID: "USER1234567", EventName: "Painting Contest", Season: "2026", ArtworkCount: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "REG1234567", reg.EventRegistrationID)
	assert.Equal(t, model.RegistrationSuccess, reg.RegistrationStatus)

	sent := mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "asha@example.com", sent[0].To)
	assert.Equal(t, "Registration Successful - Painting Contest", sent[0].Subject)
	assert.True(t, sent[0].HTML)

	require.Len(t, *published, 1)
	assert.Equal(t, "REG1234567", (*published)[0].RegistrationID)
	assert.Equal(t, "pay_1", (*published)[0].PaymentID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAndRegisterInsertFails(t *testing.T) {
	mail := mailer.NewMockMailer()
	svc, mock, published := newTestService(t, &fakeGateway{}, mail)

	mock.ExpectBegin()
	mock.ExpectExec(insertRegistrationSQL).
		WithArgs(sqlmock.AnyArg(), "USER1234567", "Painting Contest", "2026", 2, model.RegistrationSuccess).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := svc.VerifyAndRegister(context.Background(), VerifyInput{
		PaymentID: "pay_1", OrderID: "order_1", Signature: "good",
		UserID: "USER1234567", EventName: "Painting Contest", Season: "2026", ArtworkCount: 2,
	})
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, mail.Sent())
	assert.Empty(t, *published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAndRegisterMailFailureIsBestEffort(t *testing.T) {
	mail := mailer.NewMockMailer()
	mail.Fail = true
	svc, mock, _ := newTestService(t, &fakeGateway{}, mail)

	mock.ExpectBegin()
	mock.ExpectExec(insertRegistrationSQL).
		WithArgs(sqlmock.AnyArg(), "USER1234567", "Painting Contest", "2026", 2, model.RegistrationSuccess).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectRegistrationSQL).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(registrationRow("REG1234567", model.RegistrationSuccess))
	mock.ExpectCommit()
	mock.ExpectQuery(selectUserSQL).
		WithArgs("USER1234567").
		WillReturnRows(userRow())

	_, err := svc.VerifyAndRegister(context.Background(), VerifyInput{
		PaymentID: "pay_1", OrderID: "order_1", Signature: "good",
		UserID: "USER1234567", EventName: "Painting Contest", Season: "2026", ArtworkCount: 2,
	})
	assert.NoError(t, err, "a failed email must not fail a paid registration")
}

func TestCreateDirectPendingNoPublish(t *testing.T) {
	mail := mailer.NewMockMailer()
	svc, mock, published := newTestService(t, &fakeGateway{}, mail)

	mock.ExpectExec(insertRegistrationSQL).
		WithArgs(sqlmock.AnyArg(), "USER1234567", "Painting Contest", "2026", 2, model.RegistrationPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectRegistrationSQL + ` LIMIT 1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(registrationRow("REG7654321", model.RegistrationPending))
	mock.ExpectQuery(selectUserSQL).
		WithArgs("USER1234567").
		WillReturnRows(userRow())

	reg, err := svc.CreateDirect(context.Background(), "USER1234567", "Painting Contest", "2026", 2)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationPending, reg.RegistrationStatus)

	assert.Len(t, mail.Sent(), 1)
	assert.Empty(t, *published, "pending registrations are not announced on the broker")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Pending", titleCase("pending"))
	assert.Equal(t, "Success", titleCase("success"))
	assert.Equal(t, "", titleCase(""))
	assert.Equal(t, "X", titleCase("x"))
}
