package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/gogpu/glyphforge/style"
)

// DecodeEnv reads a Document from environ, a list of KEY=VALUE pairs as
// returned by os.Environ. Only keys starting with EnvPrefix are used.
func DecodeEnv(environ []string) (Document, error) {
	vars := make(map[string]string)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			vars[k] = v
		}
	}

	var d Document
	if err := env.ParseWithOptions(&d, env.Options{
		Environment: vars,
		Prefix:      EnvPrefix,
	}); err != nil {
		return Document{}, fmt.Errorf("config: parse env: %w", err)
	}
	return d, nil
}

// FromEnv decodes environ into a resolved style.Config.
func FromEnv(environ []string) (style.Config, error) {
	d, err := DecodeEnv(environ)
	if err != nil {
		return style.Config{}, err
	}
	return d.StyleConfig()
}
