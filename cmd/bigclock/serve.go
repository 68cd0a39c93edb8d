package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bubbletea "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/spf13/cobra"

	"github.com/nd70/bigclock/internal/clock"
	"github.com/nd70/bigclock/internal/config"
	termhost "github.com/nd70/bigclock/internal/host/term"
	"github.com/nd70/bigclock/internal/tui"
)

var (
	serveHost    string
	servePort    string
	serveKeyPath string
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the clock over SSH",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveHost, "host", getEnv("BIGCLOCK_SSH_HOST", "::"), "address to listen on")
	cmd.Flags().StringVar(&servePort, "port", getEnv("BIGCLOCK_SSH_PORT", "2222"), "port to listen on")
	cmd.Flags().StringVar(&serveKeyPath, "host-key", getEnv("BIGCLOCK_SSH_HOST_KEY", ""), "SSH host key path")
	return cmd
}

func runServeCmd(_ *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts := optionsFromFile(fileCfg.Clock)

	wishOpts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(serveHost, servePort)),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(opts)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	}
	if serveKeyPath != "" {
		wishOpts = append(wishOpts, wish.WithHostKeyPath(serveKeyPath))
	}

	server, err := wish.NewServer(wishOpts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Starting SSH server on %s:%s", serveHost, servePort)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// teaHandler builds one clock session per SSH session, sized from the
// client PTY.
func teaHandler(opts clock.Options) func(ssh.Session) (tea.Model, []tea.ProgramOption) {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, ok := sess.Pty()
		cols, rows := 0, 0
		if ok {
			cols, rows = pty.Window.Width, pty.Window.Height
		}

		h := termhost.New(cols, rows)
		session := clock.New(h)
		if err := session.Setup(opts); err != nil {
			log.Printf("invalid configuration for %s: %v", sess.User(), err)
		}

		return tui.NewModel(h, session), []tea.ProgramOption{tea.WithAltScreen()}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
