package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codama/internal/config"
	"codama/internal/logger"
	"codama/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (defaults to ./config.yaml when present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	srv, err := server.NewServer(context.Background(), cfg, appLog)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("failed to start server: %v", err))
	}

	go func() {
		appLog.Info(fmt.Sprintf("Server listening on %s", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal(fmt.Sprintf("http server error: %s", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down server gracefully ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error(fmt.Sprintf("Server Shutdown: %v", err))
	}
	appLog.Info("Server exiting")
}
