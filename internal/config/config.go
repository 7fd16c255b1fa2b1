// Package config builds the process configuration once at startup from the
// environment. Business logic never reads env vars directly.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Carlosbarranquero/spending-tracker/internal/core"
)

type Config struct {
	// HTTP Server
	Port string

	// Data backend: "sheets" or "memory"
	DataBackend string

	// Google Sheets target
	SpreadsheetID string
	SheetName     string // empty means auto-detect the first tab

	// Recording pipeline
	Profile         core.Profile
	BaseCurrency    string
	ConversionSheet string
	ConversionCell  string

	// Receipt journal (optional; empty path disables it)
	JournalDBPath string

	// AMQP event stream (optional; empty URL disables it)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	profile, err := core.ParseProfile(getEnv("COLUMN_PROFILE", string(core.ProfileWithConversion)))
	if err != nil {
		// Validate reports the detail; keep the zero profile here.
		profile = ""
	}
	return &Config{
		Port:        getEnv("PORT", "3001"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		SpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		SheetName:     getEnv("GOOGLE_SHEET_NAME", ""),

		Profile:         profile,
		BaseCurrency:    strings.ToUpper(getEnv("BASE_CURRENCY", "EUR")),
		ConversionSheet: getEnv("CONVERSION_SHEET_NAME", "conversion"),
		ConversionCell:  getEnv("CONVERSION_CELL", "B2"),

		JournalDBPath: getEnv("JOURNAL_DB_PATH", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "spending"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "recorded_expenses"),
	}
}

// ConversionRange returns the full cell reference of the conversion rate,
// e.g. "conversion!B2".
func (c *Config) ConversionRange() string {
	return fmt.Sprintf("%s!%s", c.ConversionSheet, c.ConversionCell)
}

// Validate checks the configuration and returns an error describing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sheets":
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets]", c.DataBackend))
	}

	if c.Profile == "" {
		problems = append(problems, "invalid column profile: must be one of [basic conversion enriched]")
	}

	if len(c.BaseCurrency) != 3 {
		problems = append(problems, fmt.Sprintf("invalid base currency '%s': must be a 3-letter code", c.BaseCurrency))
	}

	if c.DataBackend == "sheets" && c.SpreadsheetID == "" {
		problems = append(problems, "GOOGLE_SPREADSHEET_ID is required when using the sheets backend")
	}

	if c.Profile == core.ProfileWithConversion {
		if c.ConversionSheet == "" || c.ConversionCell == "" {
			problems = append(problems, "conversion sheet and cell cannot be empty for the conversion profile")
		}
	}

	if c.JournalDBPath != "" {
		dir := filepath.Dir(c.JournalDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					problems = append(problems, fmt.Sprintf("cannot create journal directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
