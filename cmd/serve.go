package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"appsuite-be/internal/server"
	"appsuite-be/internal/service"
)

const shutdownTimeout = 10 * time.Second

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		gin.SetMode(Cfg.GinMode)

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := server.New(server.Deps{
			Config:       Cfg,
			Logger:       a.logger,
			URLService:   a.urls,
			AuthService:  a.auth,
			Notes:        service.NewNoteStore(),
			RegexService: service.NewRegexService(),
			NameService:  service.NewNameService(),
		})
		defer srv.Close()

		httpServer := &http.Server{
			Addr:              ":" + Cfg.Port,
			Handler:           srv.Router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info("server starting", zap.String("addr", httpServer.Addr), zap.String("base_url", Cfg.BaseURL))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(ServeCmd)
}
