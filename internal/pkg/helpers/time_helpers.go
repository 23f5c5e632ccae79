package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, falling back to a default on failure.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("value", value).Dur("fallback", fallback).Msg("Invalid duration, using fallback")
		return fallback
	}
	return d
}
