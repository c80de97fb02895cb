package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for invalid or missing values. Values
// only needed by the gateway (the bot token) are checked when gateway is set.
func (c *Config) Validate(gateway bool) error {
	if errs := c.validate(gateway); len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (c *Config) validate(gateway bool) []string {
	var errs []string

	if gateway {
		if c.Discord.Token == "" {
			errs = append(errs, "discord.token is required")
		}
		if c.Discord.ClientID == "" {
			errs = append(errs, "discord.clientId is required")
		}
	}

	if c.Catalog.RefreshMinutes < 0 {
		errs = append(errs, "catalog.refreshMinutes must be non-negative")
	}

	if u := c.Twitch.QueryURL; u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		errs = append(errs, "twitch.queryUrl must be an http(s) URL")
	}

	return errs
}
