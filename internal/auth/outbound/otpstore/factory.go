package otpstore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arimasna/pelajarin/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
)

const (
	// DriverRedis selects the redis backend.
	DriverRedis = "redis"
	// DriverMemory selects the in-process backend.
	DriverMemory = "memory"
)

// ErrUnknownDriver indicates an unsupported store driver.
var ErrUnknownDriver = errors.New("otpstore: unknown driver")

// FactoryOptions groups config for supported backends.
type FactoryOptions struct {
	// RedisClient is required for the redis driver.
	RedisClient *redis.Client
	// Retention is how long records are kept before eviction (redis driver).
	Retention time.Duration
	// Instrument provides tracing helpers.
	Instrument instrument.Instrumentation
}

// NewFromDriver constructs a Store implementation by driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Store, error) {
	switch strings.TrimSpace(driver) {
	case DriverRedis:
		return NewRedis(opts.RedisClient, opts.Retention, opts.Instrument), nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
