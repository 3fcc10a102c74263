package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. Pattern: UILINT_[SECTION]_[KEY]
// (e.g., UILINT_OUTPUT_FORMAT).
func ApplyEnvOverrides(cfg *Config) {
	// Output
	setEnvString(&cfg.Output.Format, "UILINT_OUTPUT_FORMAT")
	setEnvString(&cfg.Output.Path, "UILINT_OUTPUT_PATH")

	// Rules
	setEnvInt(&cfg.Rules.DuplicateLiteralThreshold, "UILINT_RULES_DUPLICATE_LITERAL_THRESHOLD")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, "UILINT_WATCH_DEBOUNCE")

	// Observability
	setEnvString(&cfg.Observability.Address, "UILINT_OBSERVABILITY_ADDRESS")
	setEnvString(&cfg.Observability.OTLPEndpoint, "UILINT_OBSERVABILITY_OTLP_ENDPOINT")

	// History
	setEnvBool(&cfg.History.Enabled, "UILINT_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "UILINT_HISTORY_PATH")
	setEnvString(&cfg.History.ProjectKey, "UILINT_HISTORY_PROJECT_KEY")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		log.Printf("Applying env override: %s=%s", key, val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = b
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = d
		}
	}
}
