// Package waypost is the public-facing engine of a travel-content site
// built with Go, Echo, and templ. It renders CMS-authored posts and landing
// pages from a section model, exposes the JSON write path the editor uses,
// and ships newsletter/comment/like/report endpoints out of the box.
package waypost

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wayfaremedia/waypost/engagement"
)

// App is the central waypost application. It wires together the store,
// cache, handlers, middleware, and engagement features.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *ContentCache

	// Posts is the storage primitive the write path delegates to. Defaults
	// to the App's own Store; tests and embedders may substitute their own.
	Posts PostStore

	loginLimiter    *LoginLimiter
	engagementStore *engagement.Store
	customRoutes    []func(*App)
	staticDir       string
}

// New creates a new waypost App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the
// server.
func (a *App) Start() error {
	if a.Config.EditorPassword == "" {
		return fmt.Errorf("waypost: EditorPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("waypost: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("waypost: init store: %w", err)
	}
	a.Store = store
	if a.Posts == nil {
		a.Posts = store
	}

	a.Cache = NewContentCache(store, a.Config.ContentCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.EngagementEnabled {
		es, err := engagement.NewStore(a.Config.EngagementDatabasePath)
		if err != nil {
			return fmt.Errorf("waypost: init engagement: %w", err)
		}
		a.engagementStore = es
		if err := engagement.InitSalt(es); err != nil {
			return fmt.Errorf("waypost: init engagement salt: %w", err)
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework-shipped client script, served from the embedded FS and
	// falling through to the user's static dir for everything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/engagement.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public pages
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/posts", handlePostsRedirect)
	e.GET("/", a.handleHome)
	e.GET("/posts/:slug/", a.handlePost)
	e.GET("/stories/:slug/", a.handleStory)
	e.GET("/category/:category/", a.handleCategory)

	// Editor session
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/images/upload/", a.handleImageUpload, a.requireEditor)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete, a.requireEditor)

	// JSON write path and editor reads
	e.POST("/api/posts", a.handleCreatePost, a.requireEditor)
	e.PUT("/api/posts/:id", a.handleUpdatePost, a.requireEditor)
	e.DELETE("/api/posts/:id", a.handleDeletePost, a.requireEditor)
	e.GET("/api/posts", a.handleListPosts)
	e.GET("/api/posts/:slug", a.handleGetPost, a.requireEditor)
	e.PUT("/api/pages/:slug", a.handleSavePage, a.requireEditor)

	// Engagement endpoints
	if a.Config.EngagementEnabled && a.engagementStore != nil {
		h := engagement.NewHandler(a.engagementStore, a.engagementStore)
		h.RegisterRoutes(e.Group("/api"))
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.engagementStore != nil {
		a.engagementStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if
// empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("waypost: required environment variable %s is not set", key)
	}
	return v
}
