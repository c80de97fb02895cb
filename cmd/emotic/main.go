package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joebot/emotic/internal/bot"
	"github.com/joebot/emotic/internal/bus"
	"github.com/joebot/emotic/internal/catalog"
	"github.com/joebot/emotic/internal/channel"
	"github.com/joebot/emotic/internal/cli"
	"github.com/joebot/emotic/internal/config"
	"github.com/joebot/emotic/internal/logging"
	"github.com/joebot/emotic/internal/provider"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		cmdRun()
	case "chat":
		cmdChat()
	case "status":
		cmdStatus()
	case "version", "--version", "-v":
		fmt.Println(cli.TitleStyle.Render(
			fmt.Sprintf("  %s emotic v%s", cli.Logo, cli.Version),
		))
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	dim := cli.DimStyle.Render
	fmt.Println()
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("  %s emotic", cli.Logo)) + dim(" — Emote & Conversion Chat Responder"))
	fmt.Println()
	fmt.Println("  " + cli.BoldStyle.Render("Usage"))
	fmt.Println()
	fmt.Printf("    emotic %-10s %s\n", "run", dim("Connect to Discord and respond"))
	fmt.Printf("    emotic %-10s %s\n", "chat", dim("Local resolver sandbox"))
	fmt.Printf("    emotic %-10s %s\n", "status", dim("Show configuration"))
	fmt.Printf("    emotic %-10s %s\n", "version", dim("Show version"))
	fmt.Println()
}

// --- run command ---

func cmdRun() {
	cfg := mustLoadConfig()
	if err := cfg.Validate(true); err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrStyle.Render("  "+err.Error()))
		os.Exit(1)
	}

	slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, &logging.Options{
		Level: slog.LevelInfo,
		Color: true,
	})))

	queue := bus.NewQueue()
	store := catalog.NewStore()

	discord, err := channel.NewDiscord(cfg.Discord, queue)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrStyle.Render("  Error: "+err.Error()))
		os.Exit(1)
	}

	refresher := catalog.NewRefresher(store, feeds(cfg), refreshInterval(cfg), func(context.Context) {
		if err := discord.SetPresence(cfg.Discord.StatusText); err != nil {
			slog.Warn("Presence update failed", "err", err)
		}
	})

	coord := bot.New(bot.Config{
		Transport: discord,
		Queue:     queue,
		Store:     store,
		Streams:   provider.NewStreamsClient(cfg.Twitch.QueryURL, cfg.Twitch.ClientID),
		Session:   discord,
		ClientID:  cfg.Discord.ClientID,
		SourceURL: cfg.Bot.SourceURL,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go refresher.Run(ctx)
	go coord.Run(ctx)

	if err := discord.Start(ctx); err != nil && ctx.Err() == nil {
		slog.Error("Discord session lost", "err", err)
		os.Exit(1)
	}
}

// --- chat command ---

func cmdChat() {
	cfg := mustLoadConfig()
	redirectLogs()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := catalog.NewStore()
	refresher := catalog.NewRefresher(store, feeds(cfg), refreshInterval(cfg), nil)
	refresher.Refresh(ctx)

	coord := bot.New(bot.Config{
		Queue:     bus.NewQueue(),
		Store:     store,
		Streams:   provider.NewStreamsClient(cfg.Twitch.QueryURL, cfg.Twitch.ClientID),
		ClientID:  cfg.Discord.ClientID,
		SourceURL: cfg.Bot.SourceURL,
	})

	if err := cli.RunChat(coord.Pipeline(), ctx, cli.ChatConfig{CatalogSize: store.Size()}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// --- status command ---

func cmdStatus() {
	cfg, _ := config.Load()
	cli.RunStatus(cfg)
}

// --- helpers ---

func feeds(cfg *config.Config) []catalog.Feed {
	return []catalog.Feed{
		provider.NewTwitchFeed(cfg.Twitch.ClientID),
		provider.NewBTTVFeed(),
		provider.NewFFZFeed(),
	}
}

func refreshInterval(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Catalog.RefreshMinutes) * time.Minute
}

func redirectLogs() {
	logPath := filepath.Join(filepath.Dir(config.ConfigPath()), "chat.log")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(logging.NewHandler(io.Discard, nil)))
		return
	}
	slog.SetDefault(slog.New(logging.NewHandler(f, &logging.Options{Level: slog.LevelInfo})))
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
	}
	return cfg
}
