// Package env resolves platform credentials from the process environment
// and an optional dotenv file.
package env

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.CredentialSource = (*Source)(nil)

// Source looks keys up in the environment first and the dotenv file second.
// The file is read once and never written into the process environment.
type Source struct {
	file   string
	values map[string]string
}

// NewSource reads envFile when given, which must then exist. Otherwise the
// first existing path among fallbacks is read, and none is fine.
func NewSource(envFile string, fallbacks ...string) (*Source, error) {
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		logger.Debug("Loaded credentials from %s", envFile)
		return &Source{file: envFile, values: values}, nil
	}

	for _, path := range fallbacks {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		values, err := godotenv.Read(path)
		if err != nil {
			logger.Warn("Ignoring unreadable env file %s: %v", path, err)
			continue
		}
		logger.Debug("Loaded credentials from %s", path)
		return &Source{file: path, values: values}, nil
	}

	return &Source{values: map[string]string{}}, nil
}

// Lookup returns the value for key and whether it is set and non-empty.
func (s *Source) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	v, ok := s.values[key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// File returns the dotenv file that was read, or "".
func (s *Source) File() string {
	return s.file
}
