package job

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/config"
	"github.com/forkpoint/forkpoint-service/internal/lib/email"
)

// InitHandlers constructs the dependencies job handlers need. Must be
// called before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.email = email.NewClient(cfg, logger)
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("processing welcome email task")

	if err := j.email.SendWelcomeEmail(p.To, p.Name); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("failed to send welcome email")
		return err
	}
	return nil
}

func (j *JobService) handleOrderReceiptTask(ctx context.Context, t *asynq.Task) error {
	var p OrderReceiptPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal order receipt payload: %w", err)
	}

	j.logger.Info().
		Str("type", "order_receipt").
		Str("to", p.To).
		Int64("order_id", p.OrderID).
		Msg("processing order receipt task")

	if err := j.email.SendOrderReceipt(p.To, p.Name, strconv.FormatInt(p.OrderID, 10), p.Total); err != nil {
		j.logger.Error().
			Str("type", "order_receipt").
			Str("to", p.To).
			Int64("order_id", p.OrderID).
			Err(err).
			Msg("failed to send order receipt")
		return err
	}
	return nil
}
