package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactkit/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("debug filtered at default level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("text format and level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithFormat(logger.FormatText),
			logger.WithLevel(slog.LevelDebug),
		)
		log.Debug("visible")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "msg=visible")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("hello")
		assert.Contains(t, buf.String(), `"svc":"test"`)
	})
}

func TestWithEnvironment(t *testing.T) {
	tests := []struct {
		env       string
		wantEnv   string
		debugSeen bool
		json      bool
	}{
		{"development", "development", true, false},
		{"", "development", true, false},
		{"prod", "production", false, true},
		{"Production", "production", false, true},
		{"stage", "staging", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithEnvironment(tt.env, "svc"), logger.WithOutput(buf))
			log.Debug("debug")
			log.Info("info")

			out := buf.String()
			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte("debug")))
			if tt.json {
				assert.Contains(t, out, `"env":"`+tt.wantEnv+`"`)
				assert.Contains(t, out, `"service":"svc"`)
			} else {
				assert.Contains(t, out, "env="+tt.wantEnv)
				assert.Contains(t, out, "service=svc")
			}
		})
	}
}

func TestContextExtraction(t *testing.T) {
	type key struct{}

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextValue("call_id", key{}),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			return slog.String("static", "yes"), true
		}),
	)

	ctx := context.WithValue(context.Background(), key{}, "abc")
	log.InfoContext(ctx, "with value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["call_id"])
	assert.Equal(t, "yes", entry["static"])

	buf.Reset()
	log.WithGroup("g").With(slog.Int("n", 1)).InfoContext(context.Background(), "without value")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, buf.String(), "call_id")
	assert.Contains(t, buf.String(), `"static":"yes"`)
}

func TestContextExtraction_ExplicitKeyWins(t *testing.T) {
	type key struct{}

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextValue("call_id", key{}),
	)
	ctx := context.WithValue(context.Background(), key{}, "from-ctx")

	log.InfoContext(ctx, "record attr", logger.CallID("explicit"))
	assert.Equal(t, 1, strings.Count(buf.String(), `"call_id"`))
	assert.Contains(t, buf.String(), `"call_id":"explicit"`)

	buf.Reset()
	log.With(logger.CallID("bound")).InfoContext(ctx, "handler attr")
	assert.Equal(t, 1, strings.Count(buf.String(), `"call_id"`))
	assert.Contains(t, buf.String(), `"call_id":"bound"`)

	buf.Reset()
	log.WithGroup("g").InfoContext(ctx, "grouped", logger.CallID("inner"))
	assert.Contains(t, buf.String(), `"g":{"call_id":"inner"`)
	assert.Contains(t, buf.String(), `"call_id":"from-ctx"`)
}

func TestNewContextHandler_NoExtractors(t *testing.T) {
	next := slog.NewTextHandler(&bytes.Buffer{}, nil)
	assert.Same(t, next, logger.NewContextHandler(next, nil))
}

func TestParseLevel(t *testing.T) {
	l, err := logger.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = logger.ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = logger.ParseLevel("loud")
	assert.Error(t, err)
}

func TestAttrs(t *testing.T) {
	assert.Equal(t, "component", logger.Component("validation").Key)
	assert.Equal(t, "field", logger.Field("email").Key)
	assert.Equal(t, "state_id", logger.StateID("x").Key)
	assert.Equal(t, "method", logger.Method("GET").Key)
	assert.Equal(t, "url", logger.URL("http://x").Key)
	assert.Equal(t, int64(404), logger.Status(404).Value.Int64())
	assert.Equal(t, "success", logger.Phase("success").Value.String())
	assert.Equal(t, "call_id", logger.CallID("1").Key)
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())

	g := logger.Group("req", slog.String("id", "1"))
	require.Equal(t, slog.KindGroup, g.Value.Kind())
	assert.Len(t, g.Value.Group(), 1)

	err := errors.New("boom")
	assert.Equal(t, err, logger.Error(err).Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))

	errs := logger.Errors(err, nil, err)
	require.Equal(t, "errors", errs.Key)
	assert.Len(t, errs.Value.Group(), 2)
	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}
