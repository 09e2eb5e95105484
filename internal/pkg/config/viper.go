package config

import (
	"bytes"
	"errors"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Viper is the Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper loads configuration from the given file and watches it for
// changes. The file type is inferred from the extension.
func NewViper(pathFile string) (*Viper, error) {
	v := viper.New()

	filename := path.Base(pathFile)
	name := filename[:len(filename)-len(path.Ext(filename))]

	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(name)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "error", err)
			return
		}
		slog.Info("config reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory. configType must be a
// format viper understands ("yaml", "json", ...). Intended for tests.
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

// GetBool returns the value for key as bool.
func (c *Viper) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetInt returns the value for key as int.
func (c *Viper) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt32 returns the value for key as int32.
func (c *Viper) GetInt32(key string) int32 {
	return c.v.GetInt32(key)
}

// GetInt64 returns the value for key as int64.
func (c *Viper) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetFloat64 returns the value for key as float64.
func (c *Viper) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetString returns the value for key as string.
func (c *Viper) GetString(key string) string {
	return c.v.GetString(key)
}

// GetArray returns the value for key split on commas.
func (c *Viper) GetArray(key string) []string {
	raw := c.v.GetString(key)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// GetMap returns the value for key parsed from "k:v,k:v" pairs.
func (c *Viper) GetMap(key string) map[string]string {
	m := make(map[string]string)
	for pair := range strings.SplitSeq(c.v.GetString(key), ",") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) == 2 {
			m[kv[0]] = kv[1]
		}
	}
	return m
}

// GetSecond returns the value for key as seconds.
func (c *Viper) GetSecond(key string) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * time.Second
}

// GetMinute returns the value for key as minutes.
func (c *Viper) GetMinute(key string) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * time.Minute
}

// GetHour returns the value for key as hours.
func (c *Viper) GetHour(key string) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * time.Hour
}

// GetDay returns the value for key as days.
func (c *Viper) GetDay(key string) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * 24 * time.Hour
}

// Close implements io.Closer; viper holds no closable resources.
func (c *Viper) Close() error {
	return nil
}
