// Package environment holds the process settings read once at startup from a
// dotenv file and the process environment.
package environment

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrLoadEnvironment wraps failures reading or parsing the settings file.
var ErrLoadEnvironment = errors.New("load environment failed")

// Environment is an immutable snapshot of settings. It is safe for concurrent
// readers because nothing writes to it after Load returns.
type Environment struct {
	values map[string]string
	source string
}

type options struct {
	processEnv bool
}

// Option tweaks Load.
type Option func(*options)

// WithProcessEnv controls whether the process environment overlays the file.
// Enabled by default; variables already set in the process win over the file.
func WithProcessEnv(enabled bool) Option {
	return func(o *options) {
		o.processEnv = enabled
	}
}

// Load reads the dotenv file at path, when it exists, and overlays the process
// environment. Every call builds a fresh snapshot, so calling it again never
// duplicates or mixes state.
func Load(_ context.Context, path string, opts ...Option) (*Environment, error) {
	o := options{processEnv: true}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")
	source := ""

	if path != "" {
		switch _, err := os.Stat(path); {
		case err == nil:
			if err := k.Load(file.Provider(path), dotenv.Parser()); err != nil {
				return nil, fmt.Errorf("%w: parse %s: %v", ErrLoadEnvironment, path, err)
			}
			source = path
		case errors.Is(err, fs.ErrNotExist):
			// No settings file is a normal deployment.
		default:
			return nil, fmt.Errorf("%w: stat %s: %v", ErrLoadEnvironment, path, err)
		}
	}

	if o.processEnv {
		if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
			return nil, fmt.Errorf("%w: process env: %v", ErrLoadEnvironment, err)
		}
	}

	values := make(map[string]string, len(k.Keys()))
	for _, key := range k.Keys() {
		values[key] = k.String(key)
	}
	return &Environment{values: values, source: source}, nil
}

// New builds an Environment from explicit values.
func New(values map[string]string) *Environment {
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return &Environment{values: cp}
}

// Lookup returns the value stored under key and whether it was present.
func (e *Environment) Lookup(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.values[key]
	return v, ok
}

// Source returns the settings file that was read, or "" when none was.
func (e *Environment) Source() string {
	if e == nil {
		return ""
	}
	return e.source
}

// Len reports how many keys are held.
func (e *Environment) Len() int {
	if e == nil {
		return 0
	}
	return len(e.values)
}
