package config

import "time"

// YouTubeConfig holds YouTube Data API client configuration
type YouTubeConfig struct {
	URL        string        `env:"URL" envDefault:"https://www.googleapis.com/youtube/v3"`
	APIKey     string        `env:"API_KEY"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"30s"`
	MaxRetries uint64        `env:"MAX_RETRIES" envDefault:"2"`
}

// HasAPIKey returns true if an API key is configured
func (c *YouTubeConfig) HasAPIKey() bool {
	return c.APIKey != ""
}
