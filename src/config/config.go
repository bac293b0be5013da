package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type AppConfig struct {
	Port         string
	LogLevel     string
	DatabasePath string

	ReservationsAPIURL   string
	ReservationsAPIEmail string
	ReservationsAPIToken string
	FetchTimeout         time.Duration

	CutoffDate    time.Time
	PageSize      int
	MaxNameLength int

	// Agents dropped at extraction time. Raw-name exact match.
	ExcludedAgents []string

	// Filter button labels. The first entry is the "all projects" sentinel.
	Projects []string

	// Short filter label -> canonical project name as stored upstream.
	ProjectAliases map[string]string

	// Two ascending sales goals for the progress bar.
	GoalThresholds [2]decimal.Decimal
}

// ProjectSentinel is the "no filter" label.
const ProjectSentinel = "TOTAL"

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	apiURL := getEnv("RESERVATIONS_API_URL", "")
	if apiURL == "" {
		log.Println("WARNING: RESERVATIONS_API_URL is not set. The service will only be able to serve persisted snapshots.")
	}

	cutoffStr := getEnv("CUTOFF_DATE", "2022-01-01")
	cutoff, err := time.Parse("2006-01-02", cutoffStr)
	if err != nil {
		log.Fatalf("FATAL: Invalid CUTOFF_DATE %q, expected YYYY-MM-DD: %v", cutoffStr, err)
	}

	thresholds, err := parseThresholds(getEnv("GOAL_THRESHOLDS", "30000000,60000000"))
	if err != nil {
		log.Fatalf("FATAL: Invalid GOAL_THRESHOLDS: %v", err)
	}

	projects := splitAndTrim(getEnv("PROJECTS", ProjectSentinel+",BE GARDEN,BE BONIFÁCIO,BE DEODORO"), ",")
	if len(projects) == 0 || projects[0] != ProjectSentinel {
		log.Fatalf("FATAL: PROJECTS must be non-empty and start with the %q sentinel", ProjectSentinel)
	}

	aliases, err := parseAliases(getEnv("PROJECT_ALIASES", "BE GARDEN=BE GARDEN KAÁ SQUARE"))
	if err != nil {
		log.Fatalf("FATAL: Invalid PROJECT_ALIASES: %v", err)
	}

	Cfg = &AppConfig{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DatabasePath: getEnv("DATABASE_PATH", "./premiado.db"),

		ReservationsAPIURL:   apiURL,
		ReservationsAPIEmail: getEnv("RESERVATIONS_API_EMAIL", ""),
		ReservationsAPIToken: getEnv("RESERVATIONS_API_TOKEN", ""),
		FetchTimeout:         getEnvAsDuration("FETCH_TIMEOUT", 90*time.Second),

		CutoffDate:    cutoff,
		PageSize:      getEnvAsInt("PAGE_SIZE", 10),
		MaxNameLength: getEnvAsInt("MAX_NAME_LENGTH", 45),

		ExcludedAgents: splitAndTrim(getEnv("EXCLUDED_AGENTS", "Evandro Rodrigues da Silva"), ","),

		Projects:       projects,
		ProjectAliases: aliases,
		GoalThresholds: thresholds,
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, Cutoff=%s, PageSize=%d",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.CutoffDate.Format("2006-01-02"), Cfg.PageSize)
}

func parseThresholds(raw string) ([2]decimal.Decimal, error) {
	var out [2]decimal.Decimal
	parts := splitAndTrim(raw, ",")
	if len(parts) != 2 {
		return out, strconv.ErrSyntax
	}
	for i, p := range parts {
		d, err := decimal.NewFromString(p)
		if err != nil {
			return out, err
		}
		out[i] = d
	}
	if out[0].GreaterThanOrEqual(out[1]) {
		return out, strconv.ErrRange
	}
	return out, nil
}

func parseAliases(raw string) (map[string]string, error) {
	aliases := make(map[string]string)
	for _, pair := range splitAndTrim(raw, ";") {
		short, canonical, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, strconv.ErrSyntax
		}
		aliases[strings.TrimSpace(short)] = strings.TrimSpace(canonical)
	}
	return aliases, nil
}

func splitAndTrim(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
