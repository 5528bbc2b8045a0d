package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/qualiextra/accounts-api/internal/api/metrics"
)

const sendTimeout = 10 * time.Second

// Mailer delivers verification emails through Mailgun.
type Mailer struct {
	domain  string
	apiKey  string
	apiBase string
	from    string
	baseURL string
}

// NewMailer builds a Mailer. baseURL is the public address of this API, used
// to construct the verification link.
func NewMailer(domain, apiKey, apiBase, from, baseURL string) *Mailer {
	return &Mailer{
		domain:  domain,
		apiKey:  apiKey,
		apiBase: apiBase,
		from:    from,
		baseURL: baseURL,
	}
}

// SendVerificationEmail delivers the account verification link.
func (m *Mailer) SendVerificationEmail(ctx context.Context, to, firstName, token string) error {
	mg := mailgun.NewMailgun(m.domain, m.apiKey)
	mg.SetAPIBase(m.apiBase)

	verificationURL := fmt.Sprintf("%s/auth/verify-email?token=%s", m.baseURL, token)
	subject := "Verify your Qualiextra account"
	body := fmt.Sprintf("Welcome %s!\n\nPlease confirm your email address by opening the link below:\n\n%s\n", firstName, verificationURL)

	message := mailgun.NewMessage(m.from, subject, body, to)
	message.SetHTML(fmt.Sprintf(
		`<h1>Welcome %s!</h1><p><a href="%s" style="background-color: #4CAF50; color: white; padding: 14px 20px; text-decoration: none; display: inline-block; border-radius: 4px;">Verify my email</a></p>`,
		firstName, verificationURL,
	))

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if _, _, err := mg.Send(sendCtx, message); err != nil {
		metrics.VerificationEmailsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("send verification email: %w", err)
	}

	metrics.VerificationEmailsTotal.WithLabelValues("sent").Inc()
	return nil
}
