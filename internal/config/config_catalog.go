package config

// CatalogConfig holds the conference catalog configuration
type CatalogConfig struct {
	SupportedYears    []string `env:"SUPPORTED_YEARS" envSeparator:"," envDefault:"2016,2015,2014" validate:"min=1,unique,dive,year"`
	BootstrapFile     string   `env:"BOOTSTRAP_FILE"`
	ImportOnStartup   bool     `env:"IMPORT_ON_STARTUP" envDefault:"true"`
	ImportConcurrency int      `env:"IMPORT_CONCURRENCY" envDefault:"4" validate:"min=1"`
}
