package config

// IndexConfig holds index name configuration
type IndexConfig struct {
	Name string `env:"INDEX_NAME" envDefault:"speechrank_presentations"`
}
