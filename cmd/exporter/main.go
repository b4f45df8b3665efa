package main

import (
	"context"
	"flag"
	"os"

	"mediaflow-iptv/config"
	"mediaflow-iptv/exporter"
	"mediaflow-iptv/logger"
	"mediaflow-iptv/store"
	"mediaflow-iptv/utils"
)

// One-shot playlist export: fetch the full upstream catalog and write it
// as an extended-M3U file. Runs to completion or failure, no server.
func main() {
	log := logger.Default

	var (
		output    = flag.String("output", "channels.m3u8", "playlist output file")
		group     = flag.String("group", utils.GetEnv("VAVOO_GROUP"), "upstream channel group")
		endpoint  = flag.String("endpoint", utils.GetEnv("VAVOO_ENDPOINT"), "upstream catalog endpoint")
		signerURL = flag.String("signer", os.Getenv("SIGNER_URL"), "external signer endpoint")
		signature = flag.String("signature", "", "use a fixed signature instead of the signer")
	)
	flag.Parse()

	config.SetConfig(&config.Config{
		DataPath: utils.GetEnv("DATA_PATH"),
	})

	filters, err := store.LoadChannelFilters()
	if err != nil {
		log.Fatalf("Error loading channel filters: %v", err)
	}
	excludes, err := store.LoadChannelExcludes()
	if err != nil {
		log.Fatalf("Error loading channel excludes: %v", err)
	}
	categories, err := store.LoadCategoryKeywords()
	if err != nil {
		log.Fatalf("Error loading category keywords: %v", err)
	}
	logos, err := store.LoadLogoMap()
	if err != nil {
		log.Fatalf("Error loading logo map: %v", err)
	}

	var signer exporter.SignatureProvider
	if *signature != "" {
		signer = exporter.StaticSignatureProvider(*signature)
	} else if *signerURL != "" {
		signer = exporter.NewHTTPSignatureProvider(*signerURL, log)
	} else {
		log.Fatal("Either -signature or -signer (SIGNER_URL) is required")
	}

	ctx := context.Background()

	log.Log("Getting authentication signature...")
	sig, err := signer.Signature(ctx)
	if err != nil {
		log.Fatalf("Error obtaining signature: %v", err)
	}

	log.Logf("Fetching channel list for group %s...", *group)
	client := exporter.NewClient(*endpoint, log)
	entries, err := client.FetchAll(ctx, sig, *group)
	if err != nil {
		if len(entries) == 0 {
			log.Fatalf("Error fetching channel list: %v", err)
		}
		log.Warnf("Pagination stopped early, writing partial playlist with %d channels: %v", len(entries), err)
	}
	if len(entries) == 0 {
		log.Fatal("No channels available")
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Error creating %s: %v", *output, err)
	}
	defer out.Close()

	writer := exporter.NewWriter(filters, excludes, categories, logos, log)
	written, err := writer.Write(out, entries)
	if err != nil {
		log.Fatalf("Error writing playlist: %v", err)
	}

	log.Logf("Playlist generated successfully: %s (%d channels)", *output, written)
}
