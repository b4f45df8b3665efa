package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediaflow-iptv/catalog"
	"mediaflow-iptv/config"
	"mediaflow-iptv/exporter"
	"mediaflow-iptv/handlers"
	"mediaflow-iptv/logger"
	"mediaflow-iptv/updater"
	"mediaflow-iptv/utils"
)

func main() {
	log := logger.Default

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// manually set time zone
	if tz := os.Getenv("TZ"); tz != "" {
		var err error
		time.Local, err = time.LoadLocation(tz)
		if err != nil {
			log.Errorf("error loading location '%s': %v", tz, err)
		}
	}

	config.SetConfig(&config.Config{
		DataPath: utils.GetEnv("DATA_PATH"),
	})

	builder := catalog.NewBuilder(channelSource(log), log)
	cache := catalog.NewCache(log)

	upd, err := updater.Initialize(ctx, builder, cache, log)
	if err != nil {
		log.Fatalf("Error initializing background processes: %v", err)
	}

	router := handlers.NewRouter(cache, upd, log)

	port := utils.GetEnv("PORT")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		log.Log("Shutdown signal received")

		upd.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error during server shutdown: %v", err)
		}
		cancel()
	}()

	log.Logf("Server is running on port %s", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server error: %v", err)
	}
	log.Log("Server stopped")
}

// channelSource picks where catalog builds read raw channels from: the
// local channel source document by default, or the upstream MediaHubMX
// catalog when CHANNEL_SOURCE=vavoo and a signer endpoint is configured.
func channelSource(log logger.Logger) catalog.EntrySource {
	if utils.GetEnv("CHANNEL_SOURCE") == "vavoo" {
		signerURL := os.Getenv("SIGNER_URL")
		if signerURL == "" {
			log.Warn("CHANNEL_SOURCE=vavoo requires SIGNER_URL; falling back to the channel source document")
			return catalog.NewFileSource(log)
		}

		client := exporter.NewClient(utils.GetEnv("VAVOO_ENDPOINT"), log)
		signer := exporter.NewHTTPSignatureProvider(signerURL, log)
		return exporter.NewSource(client, signer, utils.GetEnv("VAVOO_GROUP"), log)
	}

	return catalog.NewFileSource(log)
}
