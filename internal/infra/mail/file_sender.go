// internal/infra/mail/file_sender.go
package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"company_site_backend/internal/domain/mail"
)

// FileSender implements mail.Sender for local development. Instead of
// delivering anything it writes each message to a directory as a text body,
// an optional HTML body and a JSON metadata file.
type FileSender struct {
	dir string
}

func NewFileSender(dir string) *FileSender {
	return &FileSender{dir: dir}
}

type fileMessageMetadata struct {
	Timestamp string   `json:"timestamp"`
	To        []string `json:"to"`
	Subject   string   `json:"subject"`
}

func (s *FileSender) Send(ctx context.Context, msg mail.Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create mail output directory: %w", err)
	}

	now := time.Now()
	base := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(msg.Subject))

	if err := os.WriteFile(filepath.Join(s.dir, base+".txt"), []byte(msg.PlainBody), 0o644); err != nil {
		return fmt.Errorf("failed to write text body: %w", err)
	}
	if msg.HTMLBody != "" {
		if err := os.WriteFile(filepath.Join(s.dir, base+".html"), []byte(msg.HTMLBody), 0o644); err != nil {
			return fmt.Errorf("failed to write HTML body: %w", err)
		}
	}

	meta, err := json.MarshalIndent(fileMessageMetadata{
		Timestamp: now.Format(time.RFC3339),
		To:        msg.To,
		Subject:   msg.Subject,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mail metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, base+".json"), meta, 0o644); err != nil {
		return fmt.Errorf("failed to write mail metadata: %w", err)
	}
	return nil
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)
	underscoreRuns      = regexp.MustCompile(`_+`)
)

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	s = underscoreRuns.ReplaceAllString(s, "_")
	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
