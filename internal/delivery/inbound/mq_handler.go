package inbound

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/arimasna/pelajarin/internal/delivery/usecase"
	"github.com/arimasna/pelajarin/internal/pkg/instrument"
	"github.com/arimasna/pelajarin/internal/pkg/messaging"
	"github.com/arimasna/pelajarin/internal/pkg/uid"
	"github.com/arimasna/pelajarin/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type uc interface {
	ConsumeOTPIssued(ctx context.Context, in usecase.ConsumeOTPIssuedInput) error
}

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) OTPIssuedDelivery(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("delivery.inbound.mq").Start(ctx, "OTPIssuedDelivery")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: one-time code delivery", "subject", msg.Subject())

	var payload event.OTPIssuedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of one-time code delivery", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeOTPIssued(ctx, usecase.ConsumeOTPIssuedInput{
		UserID:      payload.UserID,
		Identifier:  payload.Identifier,
		Destination: payload.Destination,
		Method:      payload.Method,
		Code:        payload.Code,
		Language:    payload.Language,
		ExpiresAt:   time.Unix(payload.ExpiresAt, 0),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume one-time code delivery", "user_id", payload.UserID, "error", err)
		return err
	}

	return nil
}
