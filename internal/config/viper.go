// Package config resolves settings from viper and the OS environment.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/agentstation/skillmap/pkg/errors"
)

// Configuration keys.
const (
	KeyDataDir      = "data_dir"
	KeyInference    = "inference"
	KeyGeminiModel  = "gemini_model"
	KeyGeminiAPIKey = "GEMINI_API_KEY"
	KeyDatabaseURL  = "database_url"
	KeyListenAddr   = "listen_addr"
)

// Inference backends.
const (
	InferenceKeyword = "keyword"
	InferenceGemini  = "gemini"
)

// DefaultListenAddr is used by serve when listen_addr is unset.
const DefaultListenAddr = ":8080"

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// GetStringOr returns GetString(key), or def when the key is unset.
func GetStringOr(key, def string) string {
	if v := GetString(key); v != "" {
		return v
	}
	return def
}

// Inference returns the configured inference backend, validated.
func Inference() (string, error) {
	backend := GetStringOr(KeyInference, InferenceKeyword)
	switch backend {
	case InferenceKeyword, InferenceGemini:
		return backend, nil
	}
	return "", errors.NewValidationError(KeyInference, backend,
		fmt.Sprintf("must be %q or %q", InferenceKeyword, InferenceGemini))
}

// GeminiAPIKey returns the Gemini API key or a ConfigError when it is not set.
func GeminiAPIKey() (string, error) {
	key := GetString(KeyGeminiAPIKey)
	if key == "" {
		return "", errors.NewConfigError("gemini",
			fmt.Sprintf("environment variable %s not set", KeyGeminiAPIKey), nil)
	}
	return key, nil
}
