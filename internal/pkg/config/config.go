// Package config defines the read-only configuration contract used across
// the service. Callers depend on the Config interface; the concrete source
// (a watched file, bytes in tests) is decided at wiring time.
package config

import (
	"io"
	"time"
)

// Config retrieves typed configuration values by dotted key. Implementations
// return zero values for missing keys; required keys are validated at wiring.
type Config interface {
	io.Closer

	// GetBool retrieves the value for key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the value for key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the value for key as an int32.
	GetInt32(key string) int32

	// GetInt64 retrieves the value for key as an int64.
	GetInt64(key string) int64

	// GetFloat64 retrieves the value for key as a float64.
	GetFloat64(key string) float64

	// GetString retrieves the value for key as a string.
	GetString(key string) string

	// GetArray retrieves the value for key as a string slice.
	// The value is stored comma-separated: <a>,<b>,...
	GetArray(key string) []string

	// GetMap retrieves the value for key as a string map.
	// The value is stored as <k1>:<v1>,<k2>:<v2>,...
	GetMap(key string) map[string]string

	// GetSecond retrieves the integer value for key as a duration in seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the integer value for key as a duration in minutes.
	GetMinute(key string) time.Duration

	// GetHour retrieves the integer value for key as a duration in hours.
	GetHour(key string) time.Duration

	// GetDay retrieves the integer value for key as a duration in days.
	GetDay(key string) time.Duration
}
