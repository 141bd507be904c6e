package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"recstream/config"
	"recstream/handlers"
	"recstream/services/recs"
	"recstream/utils"
)

func main() {
	cfgManager := config.NewManager()

	if logFile := cfgManager.LogFile(); logFile != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}))
	}

	service := recs.NewService()

	router := utils.NewRouter()
	handlers.RegisterRoutes(router,
		handlers.NewManifestHandler(),
		handlers.NewCatalogHandler(service, cfgManager))

	addr := ":" + cfgManager.Port()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}
