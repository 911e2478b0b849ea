package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sharjeelfaiq/accounts-api/internal/core/ports"
)

const defaultMailEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridMailer sends verification and password-reset emails through the
// SendGrid v3 mail-send API.
type SendGridMailer struct {
	endpoint  string
	apiKey    string
	fromEmail string
	fromName  string
	baseURL   string
	client    *http.Client
}

func NewSendGridMailer(apiKey, fromEmail, fromName, baseURL string) *SendGridMailer {
	return &SendGridMailer{
		endpoint:  defaultMailEndpoint,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		baseURL:   baseURL,
		client:    http.DefaultClient,
	}
}

var _ ports.Mailer = (*SendGridMailer)(nil)

func (m *SendGridMailer) SendVerificationEmail(ctx context.Context, email, token string) error {
	body := fmt.Sprintf(
		"Welcome! Please confirm your email address by opening the link below.\n\n%s/api/v1/verify-email?token=%s\n\nThe link expires shortly.",
		m.baseURL, token,
	)
	return m.send(ctx, email, "Verify your email", body)
}

func (m *SendGridMailer) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	body := fmt.Sprintf(
		"A password reset was requested for your account. If this was you, confirm it by opening the link below.\n\n%s/api/v1/verify-email?token=%s\n\nIf this was not you, ignore this message.",
		m.baseURL, token,
	)
	return m.send(ctx, email, "Reset your password", body)
}

func (m *SendGridMailer) send(ctx context.Context, to, subject, text string) error {
	payload := sgMailPayload{
		Personalizations: []sgPersonalization{{
			To: []sgAddress{{Email: to}},
		}},
		From:    sgAddress{Email: m.fromEmail, Name: m.fromName},
		Subject: subject,
		Content: []sgContent{{Type: "text/plain", Value: text}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal SendGrid payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create SendGrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("SendGrid request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SendGrid returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// SendGrid v3 Mail Send API payload types.
type sgMailPayload struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
