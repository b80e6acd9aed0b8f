package waypost

import "time"

// SiteConfig holds all configuration for a waypost site.
type SiteConfig struct {
	Name        string // Site name (default "Waypost")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/waypost.db")

	EngagementEnabled      bool   // Enable comments/likes/reports/newsletter (default true via cmd)
	EngagementDatabasePath string // Engagement SQLite path (default "data/engagement.db")

	EditorPassword string // Required: editor login password
	SessionSecret  string // Required: session encryption secret
	CookieSecure   bool   // Set true for HTTPS

	ContentCacheTTL time.Duration // Published-content cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Waypost"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/waypost.db"
	}
	if c.EngagementDatabasePath == "" {
		c.EngagementDatabasePath = "data/engagement.db"
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithPostStore overrides the post-storage primitive the write path uses.
// The default is the App's own SQLite store.
func WithPostStore(ps PostStore) Option {
	return func(a *App) {
		a.Posts = ps
	}
}
