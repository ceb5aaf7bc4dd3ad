package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/reoring/omnitree/internal/loader"
	"github.com/reoring/omnitree/internal/logger"
	"github.com/reoring/omnitree/internal/server"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve <schema.yaml>",
		Short: "Serve a schema definition over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			log := logger.L()

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(pkg, log),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				log.Info("server.listen", "addr", addr, "package", pkg.Name)
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

			log.Info("server.shutdown")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(sctx)
		},
	}

	c.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return c
}
