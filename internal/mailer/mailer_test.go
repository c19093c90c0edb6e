package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakriti/events-backend/internal/config"
)

func TestNewSelectsDriver(t *testing.T) {
	m := New(config.Config{MailDriver: "mock"})
	_, ok := m.(*MockMailer)
	assert.True(t, ok)

	m = New(config.Config{MailDriver: "smtp", SMTPHost: "mail.example.com", SMTPPort: 587})
	_, ok = m.(*SMTPMailer)
	assert.True(t, ok)
}

func TestMockMailerRecords(t *testing.T) {
	m := NewMockMailer()

	ok := m.Send("artist@example.com", "Hello", "<p>hi</p>", true)
	assert.True(t, ok)

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "artist@example.com", sent[0].To)
	assert.Equal(t, "Hello", sent[0].Subject)
	assert.True(t, sent[0].HTML)
}

func TestMockMailerFail(t *testing.T) {
	m := NewMockMailer()
	m.Fail = true

	assert.False(t, m.Send("artist@example.com", "Hello", "body", false))
	assert.Empty(t, m.Sent())
}

func TestRenderRegistrationEmail(t *testing.T) {
	body, err := RenderRegistrationEmail(RegistrationEmailData{
		UserName:           "Asha Rao",
		RegistrationID:     "REG1234567",
		EventName:          "Kalakriti Painting Contest",
		Season:             "2026",
		ArtworkCount:       3,
		RegistrationDate:   "August 28, 2026",
		RegistrationStatus: "Success",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Asha Rao")
	assert.Contains(t, body, "REG1234567")
	assert.Contains(t, body, "Kalakriti Painting Contest")
	assert.Contains(t, body, "August 28, 2026")
	assert.Contains(t, body, "Success")
}

func TestRenderRegistrationEmailEscapes(t *testing.T) {
	body, err := RenderRegistrationEmail(RegistrationEmailData{
		UserName:  "<script>alert(1)</script>",
		EventName: "Contest",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
