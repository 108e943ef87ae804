package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
  Tanzania Car Sharing client

  Usage:
    carshare -config-path config.yaml <command>

  Commands:
    login, signup, search, offer, myrides, cancel, vehicles,
    register-vehicle, profile, track, logout

  Configuration is read from .env, the YAML file, and the environment.
  Run with -help for flag details.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig prints the effective configuration with the credential redacted.
func PrintConfig(cfg *Config) {
	key := cfg.Geocoder.APIKey
	if key != "" {
		key = "[redacted]"
	}

	fmt.Printf("backend: %s (timeout %s)\n", cfg.Backend.BaseURL, cfg.Backend.Timeout)
	fmt.Printf("geocoder: %s (key %s)\n", cfg.Geocoder.BaseURL, key)
	fmt.Printf("session store: %s\n", cfg.Session.StorePath)
	fmt.Printf("tracking: poll %s, live %q\n", cfg.Tracking.PollInterval, cfg.Tracking.LiveURL)
	fmt.Printf("metrics: enabled=%t addr=%s\n", cfg.Metrics.Enabled, cfg.Metrics.Addr)
}
