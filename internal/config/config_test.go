package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-payroll/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
		t.Setenv("JWT_SECRET", "")
		t.Setenv("KAFKA_BROKER", "")
		t.Setenv("PORT", "")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "3000", cfg.Server.Port)
		assert.Equal(t, 5*time.Minute, cfg.Payroll.LockTTL)
		assert.Equal(t, 3*time.Second, cfg.Kafka.OutboxPollInterval)
		assert.Equal(t, "noop", cfg.Notification.Sender)
		assert.Error(t, cfg.ValidateAPI())
		assert.Error(t, cfg.ValidateKafka())
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "payroll.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"8081\"\npayslip:\n  company_name: Acme\n"), 0o600))

		t.Setenv("CONFIG_FILE", path)
		t.Setenv("PORT", "9090")
		t.Setenv("PAYROLL_LOCK_TTL", "90s")
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("KAFKA_BROKER", "localhost:9092")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "Acme", cfg.Payslip.CompanyName)
		assert.Equal(t, 90*time.Second, cfg.Payroll.LockTTL)
		assert.NoError(t, cfg.ValidateAPI())
		assert.NoError(t, cfg.ValidateKafka())
	})
}
