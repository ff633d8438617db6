package email

import (
	"bytes"
	"html/template"
)

const welcomeTag = "welcome"

var welcomeTemplate = template.Must(template.New("welcome").Parse(
	`<!doctype html><html><body>` +
		`<h1>Welcome to Files Manager</h1>` +
		`<p>Hi {{.Email}}, your account is ready. Connect with your email and password to start uploading files.</p>` +
		`</body></html>`,
))

// Welcome builds the message sent once a user registers.
func Welcome(to string) (SendEmailParams, error) {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, struct{ Email string }{Email: to}); err != nil {
		return SendEmailParams{}, err
	}
	return SendEmailParams{
		SendTo:   to,
		Subject:  "Welcome to Files Manager",
		BodyHTML: buf.String(),
		Tag:      welcomeTag,
	}, nil
}
