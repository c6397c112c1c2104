package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// Sender delivers invitation emails. A nil Sender (or empty API key) is a
// no-op so the invite flow works without mail configured.
type Sender interface {
	SendInvite(ctx context.Context, toEmail, tenantName, role, inviteURL string) error
}

// BrevoClient sends transactional mail via the Brevo (Sendinblue) API.
type BrevoClient struct {
	APIKey     string
	MailFrom   string
	SenderName string
	Client     *http.Client
}

type sendRequest struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

type party struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SendInvite sends the team invitation email.
func (c *BrevoClient) SendInvite(ctx context.Context, toEmail, tenantName, role, inviteURL string) error {
	if c.APIKey == "" {
		return nil
	}
	subject := fmt.Sprintf("Convite para %s", tenantName)
	html := inviteHTML(tenantName, role, inviteURL)
	return c.send(ctx, toEmail, subject, html)
}

func (c *BrevoClient) send(ctx context.Context, toEmail, subject, html string) error {
	body := sendRequest{
		Sender:      party{Email: c.MailFrom, Name: c.SenderName},
		To:          []party{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: html,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

func inviteHTML(tenantName, role, inviteURL string) string {
	return fmt.Sprintf(`
    <h2>Você foi convidado!</h2>
    <p>Você foi convidado para fazer parte da equipe <strong>%s</strong> como <strong>%s</strong>.</p>
    <p>Clique no link abaixo para aceitar o convite:</p>
    <a href="%s">%s</a>
    <p>Este convite expira em 7 dias.</p>
  `, tenantName, role, inviteURL, inviteURL)
}
