package mailer

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// RegistrationEmailData feeds the successful-registration template.
type RegistrationEmailData struct {
	UserName           string
	RegistrationID     string
	EventName          string
	Season             string
	ArtworkCount       int
	RegistrationDate   string // already formatted, e.g. "August 28, 2026"
	RegistrationStatus string // titlecased, e.g. "Success"
}

// RenderRegistrationEmail renders the confirmation body sent after a
// registration is created.
func RenderRegistrationEmail(data RegistrationEmailData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "successful_registration.html", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
