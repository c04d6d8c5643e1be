package httpstate

// Config holds tracker settings loaded from the environment.
type Config struct {
	ContentType      string `env:"HTTPSTATE_CONTENT_TYPE" envDefault:"application/json"`
	Accept           string `env:"HTTPSTATE_ACCEPT" envDefault:"application/json"`
	GenerationGuard  bool   `env:"HTTPSTATE_GENERATION_GUARD" envDefault:"false"`
	MaxResponseBytes int64  `env:"HTTPSTATE_MAX_RESPONSE_BYTES" envDefault:"0"`
}

// Options converts cfg into tracker options.
func (cfg Config) Options() []Option {
	return []Option{
		WithContentType(cfg.ContentType),
		WithAccept(cfg.Accept),
		WithGenerationGuard(cfg.GenerationGuard),
		WithMaxResponseBytes(cfg.MaxResponseBytes),
	}
}

// NewFromConfig creates a Tracker from cfg. opts are applied after the
// config-derived options and take precedence.
func NewFromConfig[T any](cfg Config, opts ...Option) *Tracker[T] {
	return New[T](append(cfg.Options(), opts...)...)
}
