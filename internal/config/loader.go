// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "RADIAL_"

	// EnvConfigFile names the YAML file when no path is given to Load.
	EnvConfigFile = envPrefix + "CONFIG"

	// DefaultDotEnv is read when present.
	DefaultDotEnv = ".env"
)

type loadOptions struct {
	file   string
	dotenv string
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithFile reads a YAML file, taking precedence over RADIAL_CONFIG.
func WithFile(path string) LoadOption {
	return func(o *loadOptions) {
		if path != "" {
			o.file = path
		}
	}
}

// WithDotEnv reads KEY=value pairs from path instead of ./.env. A
// missing file is not an error.
func WithDotEnv(path string) LoadOption {
	return func(o *loadOptions) { o.dotenv = path }
}

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. YAML file (WithFile or RADIAL_CONFIG)
//  3. RADIAL_* pairs from the .env file
//  4. RADIAL_* environment variables
func Load(_ context.Context, opts ...LoadOption) (*Config, error) {
	o := loadOptions{file: os.Getenv(EnvConfigFile), dotenv: DefaultDotEnv}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")

	if o.file != "" {
		if err := k.Load(file.Provider(o.file), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, o.file, err)
		}
	}

	if o.dotenv != "" {
		pairs, err := godotenv.Read(o.dotenv)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, o.dotenv, err)
		default:
			for name, value := range pairs {
				if !strings.HasPrefix(name, envPrefix) {
					continue
				}
				key, v := envValue(name, value)
				if err := k.Set(key, v); err != nil {
					return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, name, err)
				}
			}
		}
	}

	// RADIAL_SHOW_BENCHMARK -> show_benchmark; keys stay flat to match
	// the koanf tags.
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envValue maps an environment variable onto a koanf key. List values
// are comma separated.
func envValue(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	if key == "category_names" {
		names := strings.Split(value, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		return key, names
	}
	return key, value
}
