package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI             string
	EventDB              string
	StaticDB             string
	SponsorsDB           string
	QueryTimeout         time.Duration
	LogLevel             string
	Debug                bool
	ServiceName          string
	Environment          string
	Port                 string
	AllowedOrigins       []string
	TimeZone             string
	MuluBaseURL          string
	MuluTourID           int
	MuluRateLimit        float64
	WorkerCount          int
	BatchSize            int
	NewsletterForwardURL string
	RateLimitRPS         float64
	RateLimitBurst       int
	ImageProxyURL        string
	SponsorImageURL      string
}

// LoadEnvFile loads a .env file into the process environment when present.
// Variables already set in the environment win.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func LoadConfig() (*Config, error) {
	mongoURI := os.Getenv("MONGODB_CONNECTION_STRING")
	if mongoURI == "" {
		return nil, errors.New("MONGODB_CONNECTION_STRING is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := []string{"*"}
	if ao := os.Getenv("ALLOWED_ORIGINS"); ao != "" {
		allowedOrigins = splitCSV(ao)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	queryTimeout := 10 * time.Second
	if qt := os.Getenv("MONGODB_QUERY_TIMEOUT"); qt != "" {
		if parsed, err := time.ParseDuration(qt); err == nil && parsed > 0 {
			queryTimeout = parsed
		}
	}

	return &Config{
		MongoURI:             mongoURI,
		EventDB:              envOr("MONGODB_EVENT_DB", "eventDb"),
		StaticDB:             envOr("MONGODB_STATIC_DB", "staticDb"),
		SponsorsDB:           envOr("MONGODB_SPONSORS_DB", "sponsorsDb"),
		QueryTimeout:         queryTimeout,
		LogLevel:             logLevel,
		Debug:                os.Getenv("DEBUG") == "true",
		ServiceName:          envOr("SERVICE_NAME", "petruschka-site-api"),
		Environment:          environment,
		Port:                 port,
		AllowedOrigins:       allowedOrigins,
		TimeZone:             envOr("TIME_ZONE", "Europe/Zurich"),
		MuluBaseURL:          envOr("MULU_BASE_URL", "https://mulu.visitate.net/service/web/infofeed/public"),
		MuluTourID:           envInt("MULU_TOUR_ID", 34),
		MuluRateLimit:        envFloat("MULU_RATE_LIMIT", 2),
		WorkerCount:          envInt("WORKER_COUNT", 2),
		BatchSize:            envInt("BATCH_SIZE", 50),
		NewsletterForwardURL: os.Getenv("NEWSLETTER_FORWARD_URL"),
		RateLimitRPS:         envFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:       envInt("RATE_LIMIT_BURST", 40),
		ImageProxyURL:        envOr("IMAGE_PROXY_URL", "https://petruschka.netlify.app/.netlify/images?url="),
		SponsorImageURL:      envOr("SPONSOR_IMAGE_URL", "https://www.petruschka.ch/assets/images/sponsoren/sponsors_"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitCSV(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
