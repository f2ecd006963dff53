package env

import (
	"os"

	"github.com/cogact-team/amlrun/internal/envvar"
)

// Environment identifies the runtime environment.
type Environment string

const (
	// Development enables verbose diagnostics.
	Development Environment = "development"

	// Production is the default environment.
	Production Environment = "production"
)

// FromEnv determines the environment from AMLRUN_ENV.
// Anything other than a development value maps to Production.
func FromEnv() Environment {
	switch os.Getenv(envvar.AmlrunEnv) {
	case "development", "dev":
		return Development
	default:
		return Production
	}
}
