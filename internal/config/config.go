package config

// Config holds all application configuration loaded from environment variables
type Config struct {
	ApplicationConfig
	Http          HttpConfig          `envPrefix:"HTTP_"`
	YouTube       YouTubeConfig       `envPrefix:"YOUTUBE_"`
	Elasticsearch ElasticsearchConfig `envPrefix:"ELASTICSEARCH_"`
	Index         IndexConfig
	Catalog       CatalogConfig `envPrefix:"CATALOG_"`
	OIDC          OIDCConfig    `envPrefix:"OIDC_"`
}
