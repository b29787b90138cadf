package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"bookchat/internal/api"
	"bookchat/internal/telegram"
	"bookchat/internal/tui"
)

var telegramToken string

// telegramCmd bridges the recommendation service to a Telegram bot
var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Run a Telegram bot backed by the recommendation service",
	Long: `Run a Telegram bot that answers chat messages with book
recommendations. Each Telegram chat gets its own saved session, visible
from the TUI sidebar as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTelegramBridge()
	},
}

func init() {
	telegramCmd.Flags().StringVar(&telegramToken, "token", "", "Telegram bot token (or TELEGRAM_BOT_TOKEN)")
}

func runTelegramBridge() error {
	setupLogging()

	token := telegramToken
	if token == "" {
		token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("no bot token; use --token or set TELEGRAM_BOT_TOKEN")
	}

	cfg, err := tui.LoadOrCreateConfig(serverURL, lang)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := api.NewClient(cfg.ServerURL, time.Duration(cfg.RequestTimeoutSec)*time.Second)
	bridge, err := telegram.NewBridge(token, client, cfg.Lang)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("Telegram bridge running", "server", cfg.ServerURL)
	return bridge.Run(ctx)
}
