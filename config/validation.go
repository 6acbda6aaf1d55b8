package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration carries everything the
// current environment needs. Development and test tolerate missing
// database credentials (local defaults and sqlite test databases);
// production and CI do not.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET (or the jwt_secret secret) is required")
	}

	env := GetEnvironment()
	if env == Production || env == CI {
		if cfg.DBUser == "" {
			errs = append(errs, "DB_USER (or the db_user secret) is required")
		}
		if cfg.DBPassword == "" {
			errs = append(errs, "DB_PASSWORD (or the db_password secret) is required")
		}
	}
	if env == Production {
		if cfg.PublicURL == "" {
			errs = append(errs, "PUBLIC_URL is required")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "\n"))
	}
	return nil
}
