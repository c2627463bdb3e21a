package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/anndream/gitgud/httpgit"
	"github.com/anndream/gitgud/log"
	"github.com/anndream/gitgud/repohost"
)

var (
	addr     string
	realm    string
	token    string
	username string
	password string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Smart HTTP transport server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", envOr("GITGUD_ADDR", ":8080"), "address to listen on")
	serveCmd.Flags().StringVar(&realm, "realm", envOr("GITGUD_REALM", "gitgud"), "WWW-Authenticate realm")
	serveCmd.Flags().StringVar(&token, "token", os.Getenv("GITGUD_TOKEN"), "push token (checked as the Basic auth password)")
	serveCmd.Flags().StringVar(&username, "username", os.Getenv("GITGUD_USERNAME"), "push username for Basic auth")
	serveCmd.Flags().StringVar(&password, "password", os.Getenv("GITGUD_PASSWORD"), "push password for Basic auth")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runServe(ctx context.Context) error {
	resolver := repohost.NewMemoryResolver()
	checker := &repohost.StaticChecker{Username: username, Password: password, Token: token}
	handler := httpgit.NewHandler(resolver, checker, realm)

	logger := newStartupLogger()
	ctx = log.ToContext(ctx, logger)

	srv := &http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler.ServeHTTP(w, r.WithContext(log.ToContext(r.Context(), logger)))
		}),
	}

	banner := color.New(color.FgGreen, color.Bold)
	banner.Printf("gitgud-server listening on %s\n", addr)
	if checker.Token == "" && checker.Password == "" {
		color.New(color.FgYellow).Println("warning: no push credentials configured — every push will be rejected")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("gitgud-server: %w", err)
	case <-sigCh:
		logger.Info("gitgud-server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
