// Package config loads typed configuration structs from environment
// variables.
//
// Struct fields are annotated with `env` and `envDefault` tags understood by
// github.com/caarlos0/env. The default `.env` file in the working directory is
// loaded once, if present, before the first parse; LoadEnv loads additional
// files explicitly. Each struct type is parsed once and cached, so repeated
// Load calls for the same type are cheap and consistent.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Reset clears the cache, which is mostly useful in tests.
package config
