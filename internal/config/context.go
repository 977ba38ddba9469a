package config

import "context"

type contextKey struct{}

// WithConfig returns a new context with the provided Config attached
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the Config attached to ctx, if any
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(contextKey{}).(*Config)
	return cfg, ok && cfg != nil
}

// GetConfig retrieves the Config from the context.
// It panics if the config is not found in the context.
func GetConfig(ctx context.Context) *Config {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("config not found in context")
	}
	return cfg
}
