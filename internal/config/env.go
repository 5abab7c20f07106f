package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"strings"

	"github.com/joho/godotenv"
	"github.com/zclconf/go-cty/cty"
)

// Environment variables that override settings file values.
const (
	EnvSource    = "ERP_SOURCE"
	EnvLogLevel  = "ERP_LOG_LEVEL"
	EnvLogFormat = "ERP_LOG_FORMAT"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// Environment is a snapshot of process variables layered over the values
// of a .env file. Process variables win.
type Environment map[string]string

// LoadEnvironment reads dotenvPath, if it exists, and overlays environ
// (formatted like os.Environ). The process environment is not modified.
func LoadEnvironment(dotenvPath string, environ []string) (Environment, error) {
	env := Environment{}
	if dotenvPath != "" {
		vals, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			maps.Copy(env, vals)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read env file %s: %w", dotenvPath, err)
		}
	}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return env, nil
}

// Lookup returns the value for key; empty values count as unset.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok && v != ""
}

// Apply overrides s with the ERP_* variables that are set.
func (e Environment) Apply(s *Settings) {
	if v, ok := e.Lookup(EnvSource); ok {
		s.Source.Path = v
	}
	if v, ok := e.Lookup(EnvLogLevel); ok {
		s.Log.Level = strings.ToLower(v)
	}
	if v, ok := e.Lookup(EnvLogFormat); ok {
		s.Log.Format = strings.ToLower(v)
	}
}

func (e Environment) ctyValue() cty.Value {
	if len(e) == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(e))
	for k, v := range e {
		attrs[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(attrs)
}
