package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpLayer "stress-advisor/http"
	"stress-advisor/repository"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	log := a.log

	var store repository.BucketStore
	if addr := a.cfg.RateLimit.RedisAddr; addr != "" {
		redisStore := repository.NewRedisBucketStore(addr)
		defer redisStore.Close()
		pingCtx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
		if err := redisStore.Ping(pingCtx); err != nil {
			log.WithError(err).Warn("redis unreachable, rate limiting fails open until it recovers")
		}
		cancel()
		store = redisStore
	} else {
		memStore := repository.NewMemoryBucketStore()
		defer memStore.Stop()
		store = memStore
	}

	rateLimiter := httpLayer.NewRateLimiter(store, a.cfg.RateLimit.Capacity, a.cfg.RateLimit.Window, a.metrics, log)

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Stress:   httpLayer.NewStressHandler(a.stress, a.metrics, log),
		Scenario: httpLayer.NewScenarioHandler(a.scenario, log),
		Explain:  httpLayer.NewExplainHandler(a.explain, log),
	}, rateLimiter, a.metrics, log)

	server := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: a.cfg.LLM.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		log.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Error during server shutdown")
	}

	log.Info("Server exited")
	return nil
}
