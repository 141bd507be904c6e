// Package config resolves the addon's effective configuration. Each
// Stremio install carries its own configuration in the addon URL;
// environment variables override all of it for single-tenant
// deployments.
package config

import (
	"encoding/json"
	"net/url"
	"os"
)

// Environment variables that override per-request configuration.
const (
	EnvGeminiKey     = "GEMINI_API_KEY"
	EnvTraktClientID = "TRAKT_CLIENT_ID"
	EnvTraktUser     = "TRAKT_USERNAME"
	EnvLocale        = "PREFERRED_LOCALE"
	EnvPort          = "PORT"
	EnvLogFile       = "LOG_FILE"
)

const (
	// DefaultLocale is the country code used when none is configured.
	DefaultLocale = "IN"

	// DefaultPort is the listen port when PORT is unset.
	DefaultPort = "7080"
)

// Request holds the per-install configuration a Stremio client embeds
// in addon URLs, matching the manifest's config field keys.
type Request struct {
	GeminiKey     string `json:"geminiKey"`
	TraktClientID string `json:"traktClientId"`
	TraktUser     string `json:"traktUser"`
	Locale        string `json:"locale"`
}

// Settings are the resolved credentials and preferences for one
// catalog request.
type Settings struct {
	GeminiKey     string
	TraktClientID string
	TraktUser     string
	Locale        string
}

// Complete reports whether all credentials required to serve a
// personalized catalog are present.
func (s Settings) Complete() bool {
	return s.GeminiKey != "" && s.TraktClientID != "" && s.TraktUser != ""
}

// ParseRequest decodes the URL-encoded JSON configuration segment of an
// addon URL. An empty segment yields an empty Request.
func ParseRequest(segment string) (Request, error) {
	var req Request
	if segment == "" {
		return req, nil
	}
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return Request{}, err
	}
	if err := json.Unmarshal([]byte(decoded), &req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Manager resolves request configuration against the environment.
type Manager struct {
	lookupEnv func(string) (string, bool)
}

// NewManager creates a Manager backed by the process environment.
func NewManager() *Manager {
	return &Manager{lookupEnv: os.LookupEnv}
}

func (m *Manager) env(key string) string {
	v, _ := m.lookupEnv(key)
	return v
}

// Resolve merges per-request configuration with environment overrides.
// Environment values win; the locale falls back to DefaultLocale.
func (m *Manager) Resolve(req Request) Settings {
	s := Settings{
		GeminiKey:     req.GeminiKey,
		TraktClientID: req.TraktClientID,
		TraktUser:     req.TraktUser,
		Locale:        req.Locale,
	}
	if v := m.env(EnvGeminiKey); v != "" {
		s.GeminiKey = v
	}
	if v := m.env(EnvTraktClientID); v != "" {
		s.TraktClientID = v
	}
	if v := m.env(EnvTraktUser); v != "" {
		s.TraktUser = v
	}
	if v := m.env(EnvLocale); v != "" {
		s.Locale = v
	}
	if s.Locale == "" {
		s.Locale = DefaultLocale
	}
	return s
}

// Port returns the HTTP listen port.
func (m *Manager) Port() string {
	if v := m.env(EnvPort); v != "" {
		return v
	}
	return DefaultPort
}

// LogFile returns the rotating log file path, or empty when file
// logging is disabled.
func (m *Manager) LogFile() string {
	return m.env(EnvLogFile)
}
