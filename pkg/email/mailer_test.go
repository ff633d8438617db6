package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filesmanager/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{SendTo: "bob@dylan.com", Subject: "Hi", BodyHTML: "<p>hi</p>"}

	tests := []struct {
		name   string
		mutate func(p *email.SendEmailParams)
		errMsg string
	}{
		{name: "valid", mutate: func(*email.SendEmailParams) {}},
		{name: "missing recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = " " }, errMsg: "recipient is required"},
		{name: "bad recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = "bob" }, errMsg: "valid email address"},
		{name: "missing subject", mutate: func(p *email.SendEmailParams) { p.Subject = "" }, errMsg: "subject is required"},
		{name: "missing body", mutate: func(p *email.SendEmailParams) { p.BodyHTML = "" }, errMsg: "body is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidParams)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("dev sender without tokens", func(t *testing.T) {
		t.Parallel()
		sender, err := email.New(email.Config{DevDir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &email.DevSender{}, sender)
	})

	t.Run("postmark with tokens", func(t *testing.T) {
		t.Parallel()
		sender, err := email.New(email.Config{
			PostmarkServerToken:  "server",
			PostmarkAccountToken: "account",
			SenderEmail:          "noreply@example.com",
			SupportEmail:         "support@example.com",
		})
		require.NoError(t, err)
		_, isDev := sender.(*email.DevSender)
		assert.False(t, isDev)
	})

	t.Run("no dev dir", func(t *testing.T) {
		t.Parallel()
		_, err := email.New(email.Config{})
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})
}

func TestWelcome(t *testing.T) {
	t.Parallel()

	msg, err := email.Welcome("bob@dylan.com")
	require.NoError(t, err)
	require.NoError(t, msg.Validate())
	assert.Equal(t, "bob@dylan.com", msg.SendTo)
	assert.Equal(t, "welcome", msg.Tag)
	assert.Contains(t, msg.BodyHTML, "bob@dylan.com")

	msg, err = email.Welcome("<script>@x.io")
	require.NoError(t, err)
	assert.NotContains(t, msg.BodyHTML, "<script>")
}

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes body and envelope", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "mail")
		sender := email.NewDevSender(dir)

		msg, err := email.Welcome("bob@dylan.com")
		require.NoError(t, err)
		require.NoError(t, sender.SendEmail(ctx, msg))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		var htmlFile, jsonFile string
		for _, e := range entries {
			switch {
			case strings.HasSuffix(e.Name(), ".html"):
				htmlFile = filepath.Join(dir, e.Name())
			case strings.HasSuffix(e.Name(), ".json"):
				jsonFile = filepath.Join(dir, e.Name())
			}
		}
		assert.Contains(t, htmlFile, "_welcome.html")

		body, err := os.ReadFile(htmlFile)
		require.NoError(t, err)
		assert.Equal(t, msg.BodyHTML, string(body))

		raw, err := os.ReadFile(jsonFile)
		require.NoError(t, err)
		var meta map[string]any
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "bob@dylan.com", meta["send_to"])
		assert.Equal(t, "welcome", meta["tag"])
		assert.NotEmpty(t, meta["timestamp"])
	})

	t.Run("subject used when tag is empty", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		require.NoError(t, sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   "bob@dylan.com",
			Subject:  "Password Reset!",
			BodyHTML: "<p>x</p>",
		}))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.Contains(t, e.Name(), "password_reset")
		}
	})

	t.Run("invalid params write nothing", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		err := email.NewDevSender(dir).SendEmail(ctx, email.SendEmailParams{Subject: "x", BodyHTML: "y"})
		assert.ErrorIs(t, err, email.ErrInvalidParams)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		t.Parallel()
		err := email.NewDevSender("/dev/null/mail").SendEmail(ctx, email.SendEmailParams{
			SendTo: "bob@dylan.com", Subject: "x", BodyHTML: "y",
		})
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	})
}
