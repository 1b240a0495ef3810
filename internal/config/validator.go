package config

import (
	"fmt"
	"sort"
	"strings"
)

// Example values shipped in .env.example that must never reach production
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// Warnings reports settings that load fine but are probably a mistake.
// The server logs each one at startup and carries on.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.APIKey == exampleAPIKey {
		warnings = append(warnings, "API_KEY is the example value, generate one with: openssl rand -hex 32")
	}
	switch {
	case c.AdminAPIKey == "":
		warnings = append(warnings, "ADMIN_API_KEY is not set, admin routes are disabled")
	case c.AdminAPIKey == c.APIKey:
		warnings = append(warnings, "ADMIN_API_KEY equals API_KEY, every API client can change win rates")
	}

	if c.DBDriver == DriverPostgres {
		if c.DBPassword == exampleDBPassword {
			warnings = append(warnings, "DB_PASSWORD is the example value")
		}
		var missing []string
		for name, v := range map[string]string{"DB_HOST": c.DBHost, "DB_NAME": c.DBName, "DB_USER": c.DBUser} {
			if v == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			warnings = append(warnings, fmt.Sprintf("postgres connection settings unset: %s", strings.Join(missing, ", ")))
		}
	}
	if c.DBDriver == DriverSQLite && c.Environment == "prod" {
		warnings = append(warnings, "DB_DRIVER=sqlite in prod, balances live in a single local file")
	}

	if c.Casino.MaxProfitRatio < 1 {
		warnings = append(warnings, fmt.Sprintf("CASINO_MAX_PROFIT_RATIO=%v governs every winning round", c.Casino.MaxProfitRatio))
	}
	if c.Casino.GovernedProbability > c.Casino.FallbackProbability {
		warnings = append(warnings, "CASINO_GOVERNED_PROBABILITY exceeds the fallback probability, the governor raises odds")
	}

	return warnings
}
