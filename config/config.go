package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Coderr API
const API_BASE_URL = "http://127.0.0.1:8000/api/"
const STATIC_BASE_URL = "http://127.0.0.1:8000/"

// Auth endpoints
const LOGIN_URL = "login/"
const REGISTER_URL = "registration/"

// User profile endpoints
const PROFILE_URL = "profile/" // profile/<id>/
const BUSINESS_PROFILES_URL = "profiles/business/"
const CUSTOMER_PROFILES_URL = "profiles/customer/"

// Offers endpoints
const OFFER_URL = "offers/"
const OFFER_DETAIL_URL = "offerdetails/"

// Orders endpoints
const ORDER_URL = "orders/"
const OFFER_INPROGRESS_COUNT_URL = "order-count/"
const OFFER_COMPLETED_COUNT_URL = "completed-order-count/"

// Reviews endpoint
const REVIEW_URL = "reviews/"

// Core info endpoint
const BASE_INFO_URL = "base-info/"

const PAGE_SIZE = 6

// Session cookies set by the login page
const TOKEN_COOKIE = "coderr_token"
const USER_ID_COOKIE = "coderr_user_id"
const SESSION_COOKIE = "coderr_session"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const OFFER_LIST_RESPONSE_RESOURCE = "offer_list_response.json"
const PROFILES_RESOURCE = "profiles.json"
const BASE_INFO_RESOURCE = "base_info.json"

// Config holds runtime settings read once at startup.
type Config struct {
	Env             string
	APIBaseURL      string
	FrontendBaseURL string
	ServerPort      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APITimeout         time.Duration
	OfferCacheTTL      time.Duration
	CacheWarmInterval  time.Duration
	SessionIdleTimeout time.Duration
	RateLimitPerMinute int
}

// IsProd reports whether the real API and Redis should be used.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// Load reads the environment, honouring a .env file when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment only")
	}

	return &Config{
		Env:                getEnvString("APP_ENV", "dev"),
		APIBaseURL:         getEnvString("API_BASE_URL", API_BASE_URL),
		FrontendBaseURL:    getEnvString("FRONTEND_BASE_URL", "/"),
		ServerPort:         getEnvString("SERVER_PORT", "8080"),
		RedisAddr:          getEnvString("REDIS_ADDR", "redis:6379"),
		RedisPassword:      getEnvString("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		APITimeout:         getEnvDuration("API_TIMEOUT", 10*time.Second),
		OfferCacheTTL:      getEnvDuration("OFFER_CACHE_TTL", 30*time.Second),
		CacheWarmInterval:  getEnvDuration("CACHE_WARM_INTERVAL", 5*time.Minute),
		SessionIdleTimeout: getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
