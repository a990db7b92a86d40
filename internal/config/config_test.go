package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DEBUG", "DB_DRIVER", "DB_PORT", "REDIS_GENE_TTL", "CASE_REVIEW_REPORT_ENABLED", "EXPORT_STORE", "REDIS_ENABLED", "RATE_LIMIT_GLOBAL_RPS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.App.Port)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "X-Remote-User", cfg.App.RemoteUserHeader)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, 24*time.Hour, cfg.Redis.GeneTTL)
	assert.False(t, cfg.Workers.ReportEnabled)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "local", cfg.Export.Store)
	assert.Equal(t, "case_review/", cfg.Export.S3.Prefix)
	assert.Zero(t, cfg.RateLimit.GlobalRPS)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_PORT", "")
	t.Setenv("DEBUG", "true")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_GLOBAL_RPS", "200")
	t.Setenv("CASE_REVIEW_REPORT_INTERVAL", "90m")
	t.Setenv("EXPORT_STORE", "S3")
	t.Setenv("EXPORT_S3_BUCKET", "seqr-reports")
	t.Setenv("EXPORT_S3_PATH_STYLE", "true")

	cfg := Load()

	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "3306", cfg.DB.Port)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.GlobalRPS)
	assert.Equal(t, 90*time.Minute, cfg.Workers.ReportInterval)
	assert.Equal(t, "s3", cfg.Export.Store)
	assert.Equal(t, "seqr-reports", cfg.Export.S3.Bucket)
	assert.True(t, cfg.Export.S3.PathStyle)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DEBUG", "sometimes")
	t.Setenv("RATE_LIMIT_BURST", "many")
	t.Setenv("REDIS_GENE_TTL", "forever")

	cfg := Load()

	assert.False(t, cfg.App.Debug)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, 24*time.Hour, cfg.Redis.GeneTTL)
}
