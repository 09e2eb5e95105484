package credstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arimasna/pelajarin/internal/pkg/instrument"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// DriverPostgres selects the postgres backend.
	DriverPostgres = "postgres"
	// DriverMemory selects the in-process backend.
	DriverMemory = "memory"
)

// ErrUnknownDriver indicates an unsupported store driver.
var ErrUnknownDriver = errors.New("credstore: unknown driver")

// FactoryOptions groups config for supported backends.
type FactoryOptions struct {
	// DBConn is required for the postgres driver.
	DBConn *pgxpool.Pool
	// Instrument provides tracing helpers.
	Instrument instrument.Instrumentation
}

// NewFromDriver constructs a Store implementation by driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Store, error) {
	switch strings.TrimSpace(driver) {
	case DriverPostgres:
		return NewPostgres(opts.DBConn, opts.Instrument), nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
