package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"
)

// GenerateOTP returns a six-digit one-time code.
func GenerateOTP() string {
	return fmt.Sprintf("%06d", 100000+rand.IntN(900000))
}

// OTPSender delivers a one-time code to an email address. Mail delivery
// is an external collaborator; tests stub this out.
type OTPSender interface {
	SendOTP(ctx context.Context, email, code string) error
}

// MailSender delivers OTP codes through a template-mail HTTP service.
type MailSender struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string

	HTTP *http.Client
}

type mailRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendOTP posts the code to the configured mail endpoint.
func (s *MailSender) SendOTP(ctx context.Context, email, code string) error {
	body := mailRequest{
		ServiceID:  s.ServiceID,
		TemplateID: s.TemplateID,
		UserID:     s.PublicKey,
		TemplateParams: map[string]string{
			"to_email": email,
			"code":     fmt.Sprintf("Your verification code is: %s", code),
		},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode otp mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build otp mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.HTTP
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("otp mail service responded with status %d", res.StatusCode)
	}
	return nil
}
