package utils

import (
	"context"
	"errors"
	"net/smtp"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Kariqs/amexan-store/models"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestMailer(t *testing.T, sendErr error) (*SMTPMailer, *[]sentMail) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "verification_code.html"), []byte(`<p>{{.Message}}</p><b>{{.Code}}</b>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order_status.html"), []byte(`<p>Hi {{.Name}}</p><p>{{.Message}}</p>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reset_password.html"), []byte(`<p>Hi {{.Name}}</p><a href="{{.VerificationURL}}">reset</a>`), 0o644))

	var sent []sentMail
	mailer := NewSMTPMailer(SMTPConfig{
		From:        "shop@example.com",
		Host:        "smtp.example.com",
		Address:     "smtp.example.com:587",
		TemplateDir: dir,
	})
	mailer.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return sendErr
	}
	return mailer, &sent
}

func TestSendVerificationCode(t *testing.T) {
	mailer, sent := newTestMailer(t, nil)

	require.NoError(t, mailer.SendVerificationCode(context.Background(), "jane@example.com", "123456"))

	require.Len(t, *sent, 1)
	mail := (*sent)[0]
	assert.Equal(t, "smtp.example.com:587", mail.addr)
	assert.Equal(t, []string{"jane@example.com"}, mail.to)
	assert.Contains(t, mail.msg, "Subject: Your payment verification code")
	assert.Contains(t, mail.msg, "<b>123456</b>")
}

func TestSendOrderStatus(t *testing.T) {
	mailer, sent := newTestMailer(t, nil)
	order := models.Order{
		Model:    gorm.Model{ID: 9},
		Status:   models.OrderShipped,
		Customer: models.Customer{FirstName: "Jane", LastName: "Doe"},
	}

	require.NoError(t, mailer.SendOrderStatus(context.Background(), "jane@example.com", order))

	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].msg, "Subject: Order #9: Shipped")
	assert.Contains(t, (*sent)[0].msg, "Hi Jane Doe")
}

func TestSendPasswordReset(t *testing.T) {
	mailer, sent := newTestMailer(t, nil)

	err := mailer.SendPasswordReset(context.Background(), "jane@example.com", "Jane Doe", "https://shop.example.com/auth/reset-password?token=abc123")
	require.NoError(t, err)

	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].msg, "Subject: Amexan Account Password Reset")
	assert.Contains(t, (*sent)[0].msg, `href="https://shop.example.com/auth/reset-password?token=abc123"`)
}

func TestSendEmailFailures(t *testing.T) {
	mailer, _ := newTestMailer(t, errors.New("connection refused"))

	err := mailer.SendVerificationCode(context.Background(), "jane@example.com", "123456")
	assert.ErrorContains(t, err, "failed to send email")

	err = mailer.SendEmail(context.Background(), "jane@example.com", "x", EmailData{}, "missing.html")
	assert.ErrorContains(t, err, "template parse error")
}
