package config

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	APIBaseURL      string
	SessionFile     string
	DocumentDir     string
	LogLevel        string
	HospitalName    string
	HospitalAddress string
	HospitalPhone   string
	StubPort        string
	JWTSecret       string
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig reads .env once and fills missing values with defaults
// suitable for a local development backend.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = &Config{
			AppEnv:          getenv("APP_ENV", "development"),
			APIBaseURL:      getenv("HOSPOS_API_URL", "http://localhost:5000"),
			SessionFile:     getenv("HOSPOS_SESSION_FILE", defaultSessionFile()),
			DocumentDir:     getenv("HOSPOS_DOCUMENT_DIR", "."),
			LogLevel:        getenv("HOSPOS_LOG_LEVEL", "info"),
			HospitalName:    getenv("HOSPOS_HOSPITAL_NAME", "City General Hospital"),
			HospitalAddress: getenv("HOSPOS_HOSPITAL_ADDRESS", "123 Healthcare Street, Medical City"),
			HospitalPhone:   getenv("HOSPOS_HOSPITAL_PHONE", "Phone: (555) 123-4567"),
			StubPort:        getenv("HOSPOS_STUB_PORT", "5000"),
			JWTSecret:       getenv("JWT_SECRET_KEY", "hospos-dev-secret"),
		}
	})
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hospos-session.json"
	}
	return filepath.Join(home, ".hospos", "session.json")
}
