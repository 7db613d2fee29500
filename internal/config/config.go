package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string
	// Store identifier: the spreadsheet holding one sheet per user.
	SpreadsheetID string
	// Service-account JSON, either inline or as a file path.
	GoogleCredentials     string
	GoogleCredentialsFile string
	SheetsEndpoint        string // empty in prod, set to an emulator URL in dev
	Cells                 Cells
	AllowedOrigins        []string // CORS allowed origins
	RequestMaxBytes       int64
}

// Cells holds the A1 cell reference of each stored value within a user's sheet.
type Cells struct {
	Email string
	OTP   string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:               getEnv("APP_PORT", getEnv("PORT", "3000")),
		AppEnv:                getEnv("APP_ENV", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		SpreadsheetID:         getEnv("SPREADSHEET_ID", ""),
		GoogleCredentials:     getEnv("GOOGLE_CREDENTIALS", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		SheetsEndpoint:        getEnv("SHEETS_ENDPOINT", ""),
		Cells: Cells{
			Email: getEnv("SHEETS_EMAIL_CELL", "A1"),
			OTP:   getEnv("SHEETS_OTP_CELL", "A3"),
		},
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "*")),
		RequestMaxBytes: int64(getEnvInt("REQUEST_MAX_BYTES", 100<<10)),
	}
}

// Validate reports configuration that would prevent the service from reaching the store.
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return errors.New("SPREADSHEET_ID is required")
	}
	if c.GoogleCredentials == "" && c.GoogleCredentialsFile == "" && c.SheetsEndpoint == "" {
		return errors.New("GOOGLE_CREDENTIALS or GOOGLE_CREDENTIALS_FILE is required")
	}
	if c.Cells.Email == "" || c.Cells.OTP == "" {
		return errors.New("SHEETS_EMAIL_CELL and SHEETS_OTP_CELL must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
