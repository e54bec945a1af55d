// Package config loads the agent's runtime configuration: a flag names
// the config file path, and its JSON contents are unmarshaled over a
// struct of defaults (flag-first, config-file overlay), rather than a
// dedicated config DSL or library.
package config

import (
	"encoding/json"
	"os"
)

// Config holds every recognized runtime configuration key.
type Config struct {
	// APIBindAddress is where the (external, not-yet-implemented) command
	// dispatcher would listen.
	APIBindAddress string `json:"api_bind_address"`

	// AdvertiseHostname is this agent's hostname as reported to the
	// control plane.
	AdvertiseHostname string `json:"advertise_hostname"`

	// TmpDir is reported in the startup log. The registered generic
	// hardware manager's image pipeline uses os.TempDir() and does not
	// read this value.
	TmpDir string `json:"tmp_dir"`

	// LogLevel is one of agentlog's level names (FATAL, ERROR, WARN, INFO,
	// DEBUG).
	LogLevel string `json:"log_level"`

	Metrics MetricsConfig `json:"metrics"`
}

// MetricsConfig controls how metrics are named and where they're sent.
type MetricsConfig struct {
	Backend             string `json:"backend"`
	GlobalPrefix        string `json:"global_prefix"`
	PrependHost         bool   `json:"prepend_host"`
	PrependHostReverse  bool   `json:"prepend_host_reverse"`
	PrependUUID         bool   `json:"prepend_uuid"`
	StatsdHost          string `json:"statsd_host"`
	StatsdPort          int    `json:"statsd_port"`
}

// Default returns the configuration used when no config file is supplied.
func Default() Config {
	return Config{
		APIBindAddress: "0.0.0.0:9999",
		TmpDir:         "/tmp",
		LogLevel:       "INFO",
		Metrics: MetricsConfig{
			Backend: "noop",
		},
	}
}

// Load reads path and unmarshals its JSON over Default(), so a config file
// only needs to set the keys it wants to override.
func Load(path string) (Config, error) {
	c := Default()

	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}

	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}

	return c, nil
}
