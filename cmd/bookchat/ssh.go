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

	"bookchat/internal/sshserve"
	"bookchat/internal/tui"
)

var (
	sshListenAddr     string
	sshHostKeyPath    string
	sshAuthorizedKeys string
)

// sshCmd serves the chat TUI over SSH
var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Serve the chat TUI over SSH",
	Long: `Start an SSH server that presents the chat interface to anyone who
connects. With an authorized_keys file in place only listed keys may
connect; without one the server is open.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSSHServer()
	},
}

// sshAddKeyCmd authorizes a public key for the SSH server
var sshAddKeyCmd = &cobra.Command{
	Use:   "authorize <public-key>",
	Short: "Add a public key to the authorized_keys file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sshserve.DataDirConfig = dataDir
		if err := sshserve.AddAuthorizedKey(sshAuthorizedKeys, args[0]); err != nil {
			return err
		}
		fmt.Println("Key authorized.")
		return nil
	},
}

func init() {
	sshCmd.Flags().StringVar(&sshListenAddr, "listen", ":2222", "SSH listen address")
	sshCmd.Flags().StringVar(&sshHostKeyPath, "host-key", "", "host key path (default <data-dir>/ssh_host_key)")
	sshCmd.Flags().StringVar(&sshAuthorizedKeys, "authorized-keys", "", "authorized_keys path (default <data-dir>/authorized_keys)")
	sshCmd.AddCommand(sshAddKeyCmd)
}

func runSSHServer() error {
	setupLogging()

	cfg, err := tui.LoadOrCreateConfig(serverURL, lang)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	server, err := sshserve.NewServer(sshserve.Config{
		ListenAddr:         sshListenAddr,
		HostKeyPath:        sshHostKeyPath,
		AuthorizedKeysPath: sshAuthorizedKeys,
		ServerURL:          cfg.ServerURL,
		Lang:               cfg.Lang,
		AssistantName:      cfg.AssistantName,
		AutocompleteLimit:  cfg.AutocompleteLimit,
		Debounce:           time.Duration(cfg.DebounceMs) * time.Millisecond,
		RequestTimeout:     time.Duration(cfg.RequestTimeoutSec) * time.Second,
	})
	if err != nil {
		return err
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("SSH server listening", "addr", sshListenAddr)
		if err := server.ListenAndServe(); err != nil {
			log.Error("SSH server stopped", "err", err)
			done <- syscall.SIGTERM
		}
	}()

	<-done
	log.Info("Shutting down SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
