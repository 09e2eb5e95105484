package config

import (
	"testing"
	"time"
)

const testYAML = `
app:
  name: "pelajarin"
  debug: true
modules:
  auth:
    otp_ttl_minutes: 5
    otp_retention_hours: 24
    landings: "student:/dashboard,instructor:/teach,admin:/admin"
  delivery:
    consumer_names:
      - "auth_otp_issued_delivery"
`

func newTestConfig(t *testing.T) *Viper {
	t.Helper()

	cfg, err := NewViperFromBytes("yaml", []byte(testYAML))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	return cfg
}

func TestViper_Getters(t *testing.T) {
	// Arrange
	cfg := newTestConfig(t)

	// Act / Assert
	if got := cfg.GetString("app.name"); got != "pelajarin" {
		t.Fatalf("GetString() = %q, want %q", got, "pelajarin")
	}
	if !cfg.GetBool("app.debug") {
		t.Fatal("GetBool() = false, want true")
	}
	if got := cfg.GetMinute("modules.auth.otp_ttl_minutes"); got != 5*time.Minute {
		t.Fatalf("GetMinute() = %v, want 5m", got)
	}
	if got := cfg.GetHour("modules.auth.otp_retention_hours"); got != 24*time.Hour {
		t.Fatalf("GetHour() = %v, want 24h", got)
	}
	if got := cfg.GetArray("modules.delivery.consumer_names"); len(got) != 1 || got[0] != "auth_otp_issued_delivery" {
		t.Fatalf("GetArray() = %v, want the consumer name", got)
	}
}

func TestViper_GetMap(t *testing.T) {
	// Arrange
	cfg := newTestConfig(t)

	// Act
	got := cfg.GetMap("modules.auth.landings")

	// Assert
	want := map[string]string{
		"student":    "/dashboard",
		"instructor": "/teach",
		"admin":      "/admin",
	}
	if len(got) != len(want) {
		t.Fatalf("GetMap() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("GetMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestViper_GetMapMissingKey(t *testing.T) {
	// Arrange
	cfg := newTestConfig(t)

	// Act
	got := cfg.GetMap("does.not.exist")

	// Assert
	if len(got) != 0 {
		t.Fatalf("GetMap() = %v, want empty", got)
	}
}
