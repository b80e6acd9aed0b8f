package main

import (
	"log"
	"time"

	"github.com/wayfaremedia/waypost"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cfg := waypost.SiteConfig{
		Name:                   waypost.EnvOr("SITE_NAME", "Waypost"),
		URL:                    waypost.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:            waypost.EnvOr("SITE_DESCRIPTION", "Stories from the road"),
		Author:                 waypost.EnvOr("SITE_AUTHOR", ""),
		Addr:                   waypost.EnvOr("ADDR", ":3000"),
		DatabasePath:           waypost.EnvOr("DATABASE_PATH", "data/waypost.db"),
		EngagementEnabled:      waypost.EnvOr("ENGAGEMENT_ENABLED", "true") == "true",
		EngagementDatabasePath: waypost.EnvOr("ENGAGEMENT_DATABASE_PATH", "data/engagement.db"),
		EditorPassword:         waypost.MustEnv("EDITOR_PASSWORD"),
		SessionSecret:          waypost.MustEnv("SESSION_SECRET"),
		CookieSecure:           waypost.EnvOr("COOKIE_SECURE", "true") == "true",
		ContentCacheTTL:        5 * time.Minute,
	}

	app := waypost.New(cfg)
	defer app.Close()

	log.Printf("waypost %s listening on %s", version, cfg.Addr)
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
