package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mkozyrev/gatekeeper/internal/flagx"
	"github.com/mkozyrev/gatekeeper/internal/timex"
)

// JSONConfig is the DTO for the optional config file. Duration fields use
// timex.Duration so both "2h" strings and integer nanoseconds parse.
// Values are copied into Config after unmarshalling.
type JSONConfig struct {
	NATSURL               string         `json:"nats_url"`
	QueueGroup            string         `json:"queue_group"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost"`
}

// parseJSON overlays Config with values from the file named by -c/-config.
// A missing flag means nothing to load; an unreadable or invalid file
// panics, since the process cannot run on a half-applied config.
func parseJSON(config *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JSONConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.NATSURL = c.NATSURL
	config.QueueGroup = c.QueueGroup
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.BcryptCost = c.BcryptCost
}
