package cli

import (
	"fmt"
	"os"

	"github.com/joebot/emotic/internal/config"
)

// RunStatus displays the current configuration status with styled output.
func RunStatus(cfg *config.Config) {
	cfgPath := config.ConfigPath()

	fmt.Println()
	fmt.Println(TitleStyle.Render(fmt.Sprintf("  %s emotic Status", Logo)))
	fmt.Println()

	fmt.Printf("  %-14s %s  %s\n", "Config", StatusBadge(fileExists(cfgPath)), DimStyle.Render(cfgPath))
	fmt.Printf("  %-14s %s\n", "Bot token", StatusBadge(cfg.Discord.Token != ""))
	fmt.Printf("  %-14s %s\n", "Client ID", StatusBadge(cfg.Discord.ClientID != ""))
	fmt.Println()

	fmt.Println("  " + BoldStyle.Render("Catalog"))
	fmt.Printf("    Refresh every %d minutes\n", cfg.Catalog.RefreshMinutes)
	fmt.Printf("    %s  Twitch client ID\n", StatusBadge(cfg.Twitch.ClientID != ""))
	fmt.Println()

	fmt.Println("  " + BoldStyle.Render("Query service"))
	if cfg.Twitch.QueryURL != "" {
		fmt.Println("    " + StatusBadge(true) + "  " + DimStyle.Render(cfg.Twitch.QueryURL))
	} else {
		fmt.Println("    " + StatusBadge(false) + "  " + DimStyle.Render("not configured (!stream and !channel degrade)"))
	}
	fmt.Println()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
