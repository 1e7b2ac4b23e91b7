package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Data source types
const (
	SourceCSV    = "csv"
	SourceXLSX   = "xlsx"
	SourceSheets = "sheets"
	SourceSQLite = "sqlite"
	SourceMemory = "memory"
)

// ValidSources lists the accepted DATA_SOURCE values.
var ValidSources = []string{SourceCSV, SourceXLSX, SourceSheets, SourceSQLite, SourceMemory}

type Config struct {
	// HTTP Server
	Port           string
	RequestTimeout time.Duration

	// Logging
	LogLevel string

	// Source selection
	DataSource string
	DataPath   string

	// CSV files
	CSVDelimiter string

	// Excel workbook
	XLSXSheetName string

	// SQLite
	SQLiteDBPath string
	SQLiteTable  string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string

	// Presentation
	CurrencySymbol string
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8081"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 7*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		DataSource: getEnv("DATA_SOURCE", SourceCSV),
		DataPath:   getEnv("DATA_PATH", "./data/superstore.csv"),

		CSVDelimiter: getEnv("CSV_DELIMITER", ","),

		XLSXSheetName: getEnv("XLSX_SHEET_NAME", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/superstore.db"),
		SQLiteTable:  getEnv("SQLITE_TABLE", "orders"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Orders"),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),

		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "R$"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid.
// A missing data file is not a configuration error: the loader reports it
// as a non-fatal "source not found" condition.
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.RequestTimeout < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid request timeout %v: must be at least 100ms", c.RequestTimeout))
	} else if c.RequestTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid request timeout %v: must be at most 5 minutes", c.RequestTimeout))
	}

	// Validate data source
	isValidSource := false
	for _, source := range ValidSources {
		if c.DataSource == source {
			isValidSource = true
			break
		}
	}
	if !isValidSource {
		errors = append(errors, fmt.Sprintf("invalid data source '%s': must be one of %v", c.DataSource, ValidSources))
	}

	switch c.DataSource {
	case SourceCSV, SourceXLSX:
		if strings.TrimSpace(c.DataPath) == "" {
			errors = append(errors, fmt.Sprintf("data path cannot be empty when using %s source", c.DataSource))
		}
		if c.DataSource == SourceCSV {
			if _, err := c.CSVComma(); err != nil {
				errors = append(errors, err.Error())
			}
		}
	case SourceSQLite:
		if strings.TrimSpace(c.SQLiteDBPath) == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite source")
		}
		if !isIdentifier(c.SQLiteTable) {
			errors = append(errors, fmt.Sprintf("invalid SQLite table name '%s': only letters, digits and underscores are allowed", c.SQLiteTable))
		}
	case SourceSheets:
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using sheets source")
		}
		if c.GoogleServiceAccountFile == "" && c.GoogleServiceAccountJSON == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for sheets source")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// CSVComma returns the CSV field delimiter. "tab" or a backslash-t names a tab.
func (c *Config) CSVComma() (rune, error) {
	switch c.CSVDelimiter {
	case "", ",":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.CSVDelimiter)
	if size != len(c.CSVDelimiter) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid CSV delimiter '%s': must be a single character other than quote or newline", c.CSVDelimiter)
	}
	return r, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
