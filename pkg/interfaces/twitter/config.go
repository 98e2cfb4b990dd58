package twitter

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL    = "https://api.twitter.com/1.1"
	DefaultRateLimit  = 900
	DefaultRateWindow = 15
)

type TwitterConfig struct {
	// Application credentials
	ConsumerKey    string
	ConsumerSecret string
	// User credentials, supplied per run
	AccessToken       string
	AccessTokenSecret string

	// API Endpoints
	BaseURL                   string
	VerifyCredentialsEndpoint string
	UserShowEndpoint          string
	FriendsListEndpoint       string
	FriendshipCreateEndpoint  string

	// Rate Limiting: RateLimit requests every RateWindow minutes
	RateLimit      int
	RateWindow     int
	RequestTimeout time.Duration

	// General Config
	Logger *logrus.Logger
}

// NewTwitterConfig builds the client config from the environment and the
// user's access token.
func NewTwitterConfig(accessToken, accessTokenSecret string, logger *logrus.Logger) (*TwitterConfig, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	rateLimit, err := strconv.Atoi(getEnvOrDefault("TWITTER_RATE_LIMIT", strconv.Itoa(DefaultRateLimit)))
	if err != nil {
		return nil, fmt.Errorf("invalid TWITTER_RATE_LIMIT: %w", err)
	}
	rateWindow, err := strconv.Atoi(getEnvOrDefault("TWITTER_RATE_WINDOW", strconv.Itoa(DefaultRateWindow)))
	if err != nil {
		return nil, fmt.Errorf("invalid TWITTER_RATE_WINDOW: %w", err)
	}

	if logger == nil {
		logger = logrus.New()
	}

	config := &TwitterConfig{
		ConsumerKey:       os.Getenv("TWITTER_CONSUMER_KEY"),
		ConsumerSecret:    os.Getenv("TWITTER_CONSUMER_SECRET"),
		AccessToken:       accessToken,
		AccessTokenSecret: accessTokenSecret,

		BaseURL: getEnvOrDefault("TWITTER_API_BASE_URL", DefaultBaseURL),

		RateLimit:  rateLimit,
		RateWindow: rateWindow,

		Logger: logger,
	}

	config.Logger.WithFields(logrus.Fields{
		"consumer_key_exists": config.ConsumerKey != "",
		"access_token_exists": config.AccessToken != "",
		"base_url":            config.BaseURL,
		"rate_limit":          config.RateLimit,
		"rate_window":         config.RateWindow,
	}).Debug("Twitter config initialized")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *TwitterConfig) Validate() error {
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	c.Logger.Debug("Validating Twitter configuration")

	// Every call acts on behalf of a user, so OAuth 1.0a is mandatory
	if c.ConsumerKey == "" || c.ConsumerSecret == "" ||
		c.AccessToken == "" || c.AccessTokenSecret == "" {
		c.Logger.WithFields(logrus.Fields{
			"consumer_key_exists":        c.ConsumerKey != "",
			"consumer_secret_exists":     c.ConsumerSecret != "",
			"access_token_exists":        c.AccessToken != "",
			"access_token_secret_exists": c.AccessTokenSecret != "",
		}).Debug("OAuth credentials validation")
		return fmt.Errorf("OAuth 1.0a consumer and access credentials must be provided")
	}

	if c.RateLimit < 1 {
		return fmt.Errorf("rate limit must be positive")
	}
	if c.RateWindow < 1 {
		return fmt.Errorf("rate window must be positive")
	}

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.VerifyCredentialsEndpoint == "" {
		c.VerifyCredentialsEndpoint = "/account/verify_credentials.json"
	}
	if c.UserShowEndpoint == "" {
		c.UserShowEndpoint = "/users/show.json"
	}
	if c.FriendsListEndpoint == "" {
		c.FriendsListEndpoint = "/friends/list.json"
	}
	if c.FriendshipCreateEndpoint == "" {
		c.FriendshipCreateEndpoint = "/friendships/create.json"
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}

	c.Logger.Debug("Twitter configuration validation completed successfully")
	return nil
}

// Helper function to get environment variable with default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEndpoint returns the full URL for a given endpoint
func (c *TwitterConfig) GetEndpoint(endpoint string) string {
	fullURL := c.BaseURL + endpoint
	c.Logger.WithFields(logrus.Fields{
		"base_url": c.BaseURL,
		"endpoint": endpoint,
		"full_url": fullURL,
	}).Debug("Constructed API endpoint")
	return fullURL
}

// RequestInterval is the minimum spacing between two requests.
func (c *TwitterConfig) RequestInterval() time.Duration {
	return time.Duration(c.RateWindow) * time.Minute / time.Duration(c.RateLimit)
}
