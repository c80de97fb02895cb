package config

// Config is the root configuration for emotic.
type Config struct {
	Discord DiscordConfig `json:"discord"`
	Twitch  TwitchConfig  `json:"twitch"`
	Catalog CatalogConfig `json:"catalog"`
	Bot     BotConfig     `json:"bot"`
}

// DiscordConfig holds Discord session settings.
type DiscordConfig struct {
	Token    string `json:"token"`
	ClientID string `json:"clientId"`

	// StatusText is the presence text refreshed after every catalog update.
	StatusText string `json:"statusText"`
}

// TwitchConfig holds upstream Twitch API settings.
type TwitchConfig struct {
	ClientID string `json:"clientId"`

	// QueryURL is the optional stream/channel query service base URL. When
	// empty the !stream and !channel commands degrade to an apology reply.
	QueryURL string `json:"queryUrl"`
}

// CatalogConfig holds emote catalog refresh settings.
type CatalogConfig struct {
	RefreshMinutes int `json:"refreshMinutes"`
}

// BotConfig holds miscellaneous bot settings.
type BotConfig struct {
	SourceURL string `json:"sourceUrl"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Discord: DiscordConfig{
			StatusText: "#emotes and :emotes:",
		},
		Catalog: CatalogConfig{
			RefreshMinutes: 60,
		},
		Bot: BotConfig{
			SourceURL: "https://github.com/joebot/emotic",
		},
	}
}
