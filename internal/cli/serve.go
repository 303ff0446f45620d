package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/config"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/db"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/handlers"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/handlers/reservations"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/middleware"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// ReservationsPath is where the booking form and list are served.
const ReservationsPath = "/reservas"

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reservation form and list over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config
			if addr != "" {
				cfg.Addr = addr
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ADDR)")

	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	d, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer d.Close()

	if cfg.DB.EnsureSchema {
		if err := d.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(d, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (driver=%s)", cfg.Addr, cfg.DB.Driver)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the HTTP engine around an open database.
func NewRouter(d *db.DB, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())

	r.GET("/healthz", handlers.Health(d))
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, ReservationsPath) })

	reservations.NewHandler(store.New(d), cfg.RequestTimeout).Register(r, ReservationsPath)
	return r
}
