package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/resend/resend-go/v2"
	log "github.com/sirupsen/logrus"
)

// EmailNotifier sends alerts to management through Resend.
type EmailNotifier struct {
	client *resend.Client
	from   string
	to     []string
}

func NewEmailNotifier(apiKey, from string, to []string) *EmailNotifier {
	return &EmailNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

func (n *EmailNotifier) Publish(ctx context.Context, message string) error {
	if len(n.to) == 0 {
		return fmt.Errorf("no alert recipients configured")
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: "Guest feedback alert",
		Text:    strings.ReplaceAll(message, "*", ""),
		Html: fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
	<pre style="white-space: pre-wrap; font-family: inherit;">%s</pre>
</div>`, html.EscapeString(strings.ReplaceAll(message, "*", ""))),
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.WithField("email_id", sent.Id).Info("📧 Alert email sent")
	return nil
}
