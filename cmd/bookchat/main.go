package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"bookchat/internal/datadir"
	"bookchat/internal/sshserve"
	"bookchat/internal/tui"
	"bookchat/internal/version"
)

var (
	serverURL string
	lang      string
	dataDir   string
	verbose   bool
)

// rootCmd starts the local TUI chat client when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "bookchat",
	Short: "Terminal client for the book recommendation service",
	Long: `Bookchat is a terminal chat client for a book recommendation service.

It keeps your conversations on the server, completes your sentences as you
type, and can also serve the same interface over SSH or bridge it to Telegram.`,
	Version: version.Full(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// versionCmd prints detailed build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("bookchat %s\n", version.Full())
		buildInfo := version.GetBuildInfo()
		if buildInfo.GitCommit != "unknown" {
			fmt.Printf("Git commit: %s\n", buildInfo.GitCommit)
		}
		if buildInfo.BuildDate != "unknown" {
			fmt.Printf("Build date: %s\n", buildInfo.BuildDate)
		}
		fmt.Printf("Go version: %s\n", buildInfo.GoVersion)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "recommendation service URL (default http://localhost:8000)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "reply language code (default en)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.bookchat)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(telegramCmd)
}

// setupLogging sends logs to a file in the data dir; stderr would corrupt
// the TUI's alternate screen.
func setupLogging() {
	tui.DataDirConfig = dataDir
	sshserve.DataDirConfig = dataDir

	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	path, err := datadir.FilePath(dataDir, "bookchat.log")
	if err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	log.SetOutput(f)
}

func runTUI() error {
	setupLogging()

	cfg, err := tui.LoadOrCreateConfig(serverURL, lang)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Info("Starting TUI", "server", cfg.ServerURL, "lang", cfg.Lang)
	return tui.Run(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
