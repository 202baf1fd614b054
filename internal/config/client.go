package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL      = "http://localhost:8080/api"
	defaultHTTPTimeout = 15 * time.Second
)

// ClientConfig drives the leefit command line client.
type ClientConfig struct {
	APIURL         string
	SurveyEndpoint string
	Language       string
	HTTPTimeout    time.Duration
	SessionFile    string
	Debug          bool
}

func LoadClientConfig() ClientConfig {
	_ = godotenv.Load()

	apiURL := strings.TrimRight(getEnv("LEEFIT_API_URL", DefaultAPIURL), "/")
	return ClientConfig{
		APIURL:         apiURL,
		SurveyEndpoint: getEnv("LEEFIT_SURVEY_ENDPOINT", ""),
		Language:       getEnv("LEEFIT_LANG", "vi"),
		HTTPTimeout:    getEnvDuration("LEEFIT_HTTP_TIMEOUT", defaultHTTPTimeout),
		SessionFile:    getEnv("LEEFIT_SESSION_FILE", ""),
		Debug:          getEnvBool("LEEFIT_DEBUG", false),
	}
}

// SurveyURL is the submission endpoint, defaulting to {APIURL}/survey.
func (c ClientConfig) SurveyURL() string {
	if c.SurveyEndpoint != "" {
		return c.SurveyEndpoint
	}
	return c.APIURL + "/survey"
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	return fallback
}
