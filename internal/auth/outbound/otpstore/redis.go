package otpstore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/arimasna/pelajarin/internal/auth/entity"
	"github.com/arimasna/pelajarin/internal/pkg/goerror"
	"github.com/arimasna/pelajarin/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const redisKeyPrefix = "otp:"

// Redis is a Store backed by a redis hash per identifier.
//
// Keys are retained past the code's logical expiry so an expired code is
// still observable as expired rather than missing; retention bounds the
// cleanup window.
type Redis struct {
	client    *redis.Client
	retention time.Duration
	ins       instrument.Instrumentation
}

// NewRedis constructs a redis-backed store. retention is how long a record
// is kept after Save before redis evicts it.
func NewRedis(client *redis.Client, retention time.Duration, ins instrument.Instrumentation) *Redis {
	return &Redis{client: client, retention: retention, ins: ins}
}

func (r *Redis) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("auth.outbound.otpstore").Start(ctx, name)
}

func (r *Redis) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Save stores the record, replacing any pending record for the identifier.
func (r *Redis) Save(ctx context.Context, rec entity.OTPRecord) (err error) {
	ctx, span := r.startSpan(ctx, "Save")
	defer func() { r.endSpan(span, err) }()

	key := redisKeyPrefix + rec.Identifier

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"user_id", rec.UserID,
		"code_hash", rec.CodeHash,
		"method", int16(rec.Method),
		"expires_at", rec.ExpiresAt.UnixNano(),
		"attempts", rec.Attempts,
	)
	pipe.Expire(ctx, key, r.retention)

	_, err = pipe.Exec(ctx)
	return err
}

// Find returns the pending record for the identifier.
func (r *Redis) Find(ctx context.Context, identifier string) (_ *entity.OTPRecord, err error) {
	ctx, span := r.startSpan(ctx, "Find")
	defer func() { r.endSpan(span, err) }()

	fields, err := r.client.HGetAll(ctx, redisKeyPrefix+identifier).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, goerror.ErrNotFound
	}

	userID, _ := strconv.ParseInt(fields["user_id"], 10, 64)
	method, _ := strconv.ParseInt(fields["method"], 10, 16)
	expiresAt, _ := strconv.ParseInt(fields["expires_at"], 10, 64)
	attempts, _ := strconv.Atoi(fields["attempts"])

	return &entity.OTPRecord{
		Identifier: identifier,
		UserID:     userID,
		CodeHash:   fields["code_hash"],
		Method:     entity.OTPMethod(method),
		ExpiresAt:  time.Unix(0, expiresAt),
		Attempts:   attempts,
	}, nil
}

// AddAttempt increments the failed-attempt counter and returns the new count.
func (r *Redis) AddAttempt(ctx context.Context, identifier string) (_ int, err error) {
	ctx, span := r.startSpan(ctx, "AddAttempt")
	defer func() { r.endSpan(span, err) }()

	key := redisKeyPrefix + identifier

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, goerror.ErrNotFound
	}

	count, err := r.client.HIncrBy(ctx, key, "attempts", 1).Result()
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// Delete removes the pending record.
func (r *Redis) Delete(ctx context.Context, identifier string) (err error) {
	ctx, span := r.startSpan(ctx, "Delete")
	defer func() { r.endSpan(span, err) }()

	return r.client.Del(ctx, redisKeyPrefix+identifier).Err()
}
