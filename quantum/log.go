package quantum

import (
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// NewComponentLogger builds a logger tagged for this package, for callers
// that want contract-check warnings surfaced.
func NewComponentLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Str("component", "quantum").Logger().Level(zerolog.WarnLevel)
}

// SetLogger replaces the package logger, e.g. to redirect gate-contract
// warnings into an application log.
func SetLogger(l zerolog.Logger) { logger = l }
