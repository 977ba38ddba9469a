package config

// ElasticsearchConfig holds Elasticsearch client configuration.
// Search indexing is skipped entirely unless Enabled is set.
type ElasticsearchConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	URL      string `env:"URL" envDefault:"http://localhost:9200"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
}

// HasCredentials returns true if authentication credentials are configured
func (c *ElasticsearchConfig) HasCredentials() bool {
	return c.User != "" && c.Password != ""
}
