package playground

import (
	"time"

	"github.com/dmitrymomot/reactkit/pkg/httpserver"
	"github.com/dmitrymomot/reactkit/pkg/httpstate"
)

// Config is the playground's own settings plus the embedded server and
// tracker settings.
type Config struct {
	Service      string        `env:"PLAYGROUND_SERVICE" envDefault:"reactkit-playground"`
	Env          string        `env:"PLAYGROUND_ENV" envDefault:"development"`
	LogLevel     string        `env:"PLAYGROUND_LOG_LEVEL" envDefault:""`
	FetchTimeout time.Duration `env:"PLAYGROUND_FETCH_TIMEOUT" envDefault:"15s"`
	// FetchHosts lists the hosts /fetch may call. An empty list refuses all.
	FetchHosts []string `env:"PLAYGROUND_FETCH_HOSTS" envSeparator:"," envDefault:"localhost,127.0.0.1"`

	HTTP    httpserver.Config
	Tracker httpstate.Config
}
