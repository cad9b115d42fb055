package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"path/filepath"

	"github.com/Kariqs/amexan-store/models"
)

type EmailData struct {
	Name            string
	Message         string
	Code            string
	VerificationURL string
	Order           *models.Order
	LogoURL         string
}

type SMTPConfig struct {
	From        string
	Password    string
	Host        string
	Address     string
	TemplateDir string
	LogoURL     string
}

// SMTPMailer sends html emails rendered from the templates directory.
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "templates"
	}
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to string, code string) error {
	data := EmailData{
		Message: "Use the code below to confirm your payment. It expires in 10 minutes.",
		Code:    code,
		LogoURL: m.cfg.LogoURL,
	}
	return m.SendEmail(ctx, to, "Your payment verification code", data, "verification_code.html")
}

func (m *SMTPMailer) SendOrderStatus(ctx context.Context, to string, order models.Order) error {
	data := EmailData{
		Name:    order.Customer.FullName(),
		Message: fmt.Sprintf("Your order #%d is now %s.", order.ID, order.Status),
		Order:   &order,
		LogoURL: m.cfg.LogoURL,
	}
	return m.SendEmail(ctx, to, fmt.Sprintf("Order #%d: %s", order.ID, order.Status), data, "order_status.html")
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to string, name string, resetURL string) error {
	data := EmailData{
		Name:            name,
		Message:         "You requested a password reset. Click the button below to reset your password.",
		VerificationURL: resetURL,
		LogoURL:         m.cfg.LogoURL,
	}
	return m.SendEmail(ctx, to, "Amexan Account Password Reset", data, "reset_password.html")
}

func (m *SMTPMailer) SendEmail(ctx context.Context, emailTo string, emailSubject string, data EmailData, templateName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := renderTemplate(filepath.Join(m.cfg.TemplateDir, templateName), data)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.From,
		emailTo,
		emailSubject,
		body,
	)

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	if err := m.send(m.cfg.Address, auth, m.cfg.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func renderTemplate(templatePath string, data EmailData) (string, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}
