package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application runtime configuration.
type Config struct {
	Port      string
	CSVPath   string
	DBDriver  string
	DBURL     string
	JWTSecret string
	JWTExpiry time.Duration
	// AuthUsers maps usernames to bcrypt password hashes.
	AuthUsers map[string]string

	GenerateSchedule string
	GenerateBatch    int
	GeneratorSeed    uint64

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	// TwilioWhatsAppNumber switches failure alerts to WhatsApp when set.
	TwilioWhatsAppNumber string
	AlertPhoneNumber     string

	CORSOrigins     []string
	SecureCookies   bool
	ShutdownTimeout time.Duration
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                 getEnv("PORT", "8080"),
		CSVPath:              getEnv("CSV_PATH", "AI_Solution_Dataset.csv"),
		DBDriver:             getEnv("DB_DRIVER", "postgres"),
		DBURL:                os.Getenv("DB_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTExpiry:            time.Duration(getInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		AuthUsers:            parseUsers(os.Getenv("AUTH_USERS")),
		GenerateSchedule:     getEnv("GENERATE_SCHEDULE", "@every 60s"),
		GenerateBatch:        getInt("GENERATE_BATCH", 1),
		GeneratorSeed:        getUint("GENERATOR_SEED", 0),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		AlertPhoneNumber:     os.Getenv("ALERT_PHONE_NUMBER"),
		CORSOrigins:          splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		SecureCookies:        getBool("SECURE_COOKIES", false),
		ShutdownTimeout:      getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// ValidateServer checks the settings the HTTP server cannot run without.
func (c Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.AuthUsers) == 0 {
		return errors.New("AUTH_USERS is required (user:bcrypt-hash,...)")
	}
	return nil
}

func (c Config) TwilioEnabled() bool {
	if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" || c.AlertPhoneNumber == "" {
		return false
	}
	return c.TwilioPhoneNumber != "" || c.TwilioWhatsAppNumber != ""
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func getUint(key string, fallback uint64) uint64 {
	n, err := strconv.ParseUint(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		// Support seconds as integer without suffix.
		if secs, convErr := strconv.Atoi(val); convErr == nil {
			return time.Duration(secs) * time.Second
		}
		return fallback
	}
	return d
}

// parseUsers reads "alice:$2a$...,bob:$2a$..." pairs.
func parseUsers(raw string) map[string]string {
	users := map[string]string{}
	for _, pair := range splitList(raw) {
		name, hash, ok := strings.Cut(pair, ":")
		if !ok || name == "" || hash == "" {
			continue
		}
		users[strings.TrimSpace(name)] = strings.TrimSpace(hash)
	}
	return users
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
