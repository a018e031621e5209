package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overrides from flags", func(t *testing.T) {
		os.Args = []string{"testbin",
			"-n", "nats://other:4222",
			"-q", "auth-2",
			"-d", "postgres://u:p@host:5432/auth",
			"-s", "flag_secret",
			"-t", "30",
			"-b", "4",
		}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "nats://other:4222", cfg.NATSURL)
		assert.Equal(t, "auth-2", cfg.QueueGroup)
		assert.Equal(t, "postgres://u:p@host:5432/auth", cfg.DatabaseDSN)
		assert.Equal(t, "flag_secret", cfg.SecretKey)
		assert.Equal(t, 30*time.Minute, cfg.TokenValidityDuration)
		assert.Equal(t, 4, cfg.BcryptCost)
	})

	t.Run("unrelated flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "conf.json", "-unknown", "zzz"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATSURL)
		assert.Equal(t, 2*time.Hour, cfg.TokenValidityDuration)
	})
}
