package main

import (
	"context"
	"flag"
	"log"

	"curriculum/internal/config"
	"curriculum/internal/firebase"
	"curriculum/internal/server"
	"curriculum/internal/session"
	"curriculum/internal/source"
)

func main() {
	// glog registers its flags on the default set.
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v\n", err)
	}

	src, err := newSource(context.Background(), cfg)
	if err != nil {
		log.Fatalf("❌ Could not create course source: %v\n", err)
	}
	log.Printf("✅ Using %s course source\n", cfg.Source)

	server.Start(session.NewRegistry(src, cfg.NotificationBuffer))
}

func newSource(ctx context.Context, cfg *config.ServerConfig) (source.Source, error) {
	if cfg.Source == config.SourceFirestore {
		client, err := firebase.NewFirestoreClient(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		return source.NewFirestoreSource(client), nil
	}
	return source.NewFixtureSource(cfg.FixturePath)
}
