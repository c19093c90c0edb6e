// Package mailer sends transactional email.  Sending is always best-effort:
// implementations report success as a bool, log transport errors, and never
// let a failure escape to the caller.
package mailer

import (
	"log"
	"sync"

	gomail "gopkg.in/gomail.v2"

	"github.com/kalakriti/events-backend/internal/config"
)

// Mailer is the notification contract.  Send returns true when the message
// was handed to the transport; failures are logged and reported as false,
// never as a panic or error.
type Mailer interface {
	Send(to, subject, body string, html bool) bool
}

// New selects a Mailer by the configured driver: "mock" records messages in
// memory, anything else sends real mail over SMTP.
func New(cfg config.Config) Mailer {
	if cfg.MailDriver == "mock" {
		return NewMockMailer()
	}
	return NewSMTPMailer(cfg)
}

// SMTPMailer delivers mail through an SMTP relay using STARTTLS.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a mailer from the SMTP fields of cfg.
func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

// Send composes and delivers one message.  A recover guard backs up the
// transport's own error handling so a misbehaving dialer can never take the
// enclosing request down with it.
func (m *SMTPMailer) Send(to, subject, body string, html bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("mailer: panic while sending to %s: %v", to, r)
			ok = false
		}
	}()

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	if html {
		msg.SetBody("text/html", body)
	} else {
		msg.SetBody("text/plain", body)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("mailer: send to %s failed: %v", to, err)
		return false
	}
	return true
}

// SentMessage is one message captured by the mock mailer.
type SentMessage struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

// MockMailer records messages instead of sending them.  Used by the "mock"
// driver in dev and by tests asserting on notification behavior.
type MockMailer struct {
	mu   sync.Mutex
	sent []SentMessage

	// Fail forces Send to report failure, for exercising the best-effort
	// path without a broken SMTP server.
	Fail bool
}

func NewMockMailer() *MockMailer { return &MockMailer{} }

func (m *MockMailer) Send(to, subject, body string, html bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		log.Printf("mailer: mock send to %s failed (forced)", to)
		return false
	}
	m.sent = append(m.sent, SentMessage{To: to, Subject: subject, Body: body, HTML: html})
	return true
}

// Sent returns a copy of everything recorded so far.
func (m *MockMailer) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}
