package worker

// email_worker.go
// Sends exported statement workbooks to the configured recipient via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"coldstore/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail        string `json:"to_email"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path"`
}

type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{
		mailer: mailer,
		cb:     infra.NewCircuitBreaker(infra.DefaultCBConfig()),
	}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendStatement(payload.ToEmail, payload.Subject, payload.Body, payload.AttachmentPath)
	})
	if err != nil {
		return fmt.Errorf("email_worker: send: %w", err)
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: statement sent")
	return nil
}
