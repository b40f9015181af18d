// internal/infra/mail/postmark_client.go
package mail

import (
	"context"
	"fmt"
	"strings"

	"company_site_backend/internal/domain/mail"

	"github.com/mrz1836/postmark"
)

// PostmarkSender implements mail.Sender on top of the Postmark
// transactional API.
type PostmarkSender struct {
	client       *postmark.Client
	senderEmail  string
	supportEmail string
}

func NewPostmarkSender(serverToken, accountToken, senderEmail, supportEmail string) (*PostmarkSender, error) {
	if serverToken == "" {
		return nil, fmt.Errorf("postmark server token is required")
	}
	if senderEmail == "" {
		return nil, fmt.Errorf("sender email is required")
	}
	return &PostmarkSender{
		client:       postmark.NewClient(serverToken, accountToken),
		senderEmail:  senderEmail,
		supportEmail: supportEmail,
	}, nil
}

// Send delivers one message. Reply-To points at the support address so
// recipient responses reach a monitored inbox.
func (s *PostmarkSender) Send(ctx context.Context, msg mail.Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     s.senderEmail,
		ReplyTo:  s.supportEmail,
		To:       strings.Join(msg.To, ","),
		Subject:  msg.Subject,
		TextBody: msg.PlainBody,
		HTMLBody: msg.HTMLBody,
	})
	if err != nil {
		return fmt.Errorf("postmark send failed: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message)
	}
	return nil
}
