// Package environment reads process configuration from environment variables.
package environment

import (
	"os"
)

// GetString gets the environment var, falling back to defaultValue when it is unset or empty
func GetString(varName string, defaultValue string) string {
	if val, _ := os.LookupEnv(varName); val != "" {
		return val
	}
	return defaultValue
}
