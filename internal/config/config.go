package config

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host string
	Port string

	DatabaseDriver string
	DatabaseURL    string

	JWTSecret string
	Cookie    CookieConfig

	CORSOrigins []string

	Upstream UpstreamConfig

	CourseCacheTTL     time.Duration
	CourseDefaultQuery string
	RankingYear        int
}

type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

type UpstreamConfig struct {
	SportsDataURL string
	SportsDataKey string

	LiveGolfURL  string
	RapidAPIKey  string
	RapidAPIHost string

	GolfCourseURL string
	GolfCourseKey string

	SerpAPIURL    string
	SerpAPIKey    string
	ImageDenylist []string
	Timeout       time.Duration
	MaxAttempts   int
	RetryInterval time.Duration
}

var defaultImageDenylist = []string{
	"fbsbx.com",
	"facebook.com",
	"instagram.com",
	"cdninstagram.com",
	"tiktok.com",
	"tiktokcdn.com",
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	return &Config{
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnv("PORT", "3000"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    getDatabaseURL(),
		JWTSecret:      jwtSecret,
		Cookie: CookieConfig{
			Name:     getEnv("COOKIE_NAME", "token"),
			Secure:   getBool("COOKIE_SECURE", false),
			SameSite: parseSameSite(os.Getenv("COOKIE_SAMESITE")),
		},
		CORSOrigins: getList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		Upstream: UpstreamConfig{
			SportsDataURL: getEnv("SPORTSDATA_URL", "https://api.sportsdata.io/golf/v2/json"),
			SportsDataKey: getEnv("SPORTSDATA_KEY", ""),
			LiveGolfURL:   getEnv("LIVEGOLF_URL", "https://live-golf-data.p.rapidapi.com"),
			RapidAPIKey:   getEnv("RAPIDAPI_KEY", ""),
			RapidAPIHost:  getEnv("RAPIDAPI_HOST", "live-golf-data.p.rapidapi.com"),
			GolfCourseURL: getEnv("GOLFCOURSE_URL", "https://api.golfcourseapi.com"),
			GolfCourseKey: getEnv("GOLFCOURSE_API_KEY", ""),
			SerpAPIURL:    getEnv("SERPAPI_URL", "https://serpapi.com"),
			SerpAPIKey:    getEnv("SERPAPI_KEY", ""),
			ImageDenylist: getList("IMAGE_DENYLIST", defaultImageDenylist),
			Timeout:       getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
			MaxAttempts:   getInt("UPSTREAM_MAX_ATTEMPTS", 4),
			RetryInterval: getDuration("UPSTREAM_RETRY_INTERVAL", 500*time.Millisecond),
		},
		CourseCacheTTL:     getDuration("COURSE_CACHE_TTL", 10*time.Minute),
		CourseDefaultQuery: getEnv("COURSE_DEFAULT_QUERY", "pebble beach"),
		RankingYear:        getInt("RANKING_YEAR", time.Now().Year()),
	}
}

func getDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "postgres")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)
}

func getEnv(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("[config] invalid duration for %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

// getList splits a comma-separated variable, dropping blanks and trailing slashes.
func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if v := strings.TrimRight(strings.TrimSpace(p), "/"); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
