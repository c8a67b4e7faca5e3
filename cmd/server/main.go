package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/objectstore"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/platform/config"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/platform/httpserver"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/platform/logger"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/platform/metrics"
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/suppliers"
	httptransport "github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/transport/http"
)

// declarationManifests are registered lazily: each framework's declaration is
// parsed on first use rather than at boot, so a broken framework under
// development does not take the whole service down.
var declarationManifests = map[string]string{
	"declaration": "declaration",
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	loader := content.NewLoader(cfg.ContentRoot)
	frameworks, err := discoverFrameworks(cfg.ContentRoot)
	if err != nil {
		log.Fatalf("scanning content root %s: %v", cfg.ContentRoot, err)
	}
	for _, slug := range frameworks {
		if err := loader.LazyLoadManifests(slug, declarationManifests); err != nil {
			log.Fatalf("registering manifests for %s: %v", slug, err)
		}
	}
	log.Printf("registered content for %d frameworks", len(frameworks))

	api := suppliers.NewClient(cfg.DataAPIURL, cfg.DataAPIToken)
	documents := objectstore.NewMemory()

	handler := httptransport.NewHandler(log, m, loader, api, documents)
	router := httptransport.NewRouter(handler)

	srv := httpserver.New(cfg.Addr, router)

	log.Printf("starting supplier frontend on %s", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}

// discoverFrameworks treats each directory under the content root as one
// framework's content checkout.
func discoverFrameworks(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var slugs []string
	for _, entry := range entries {
		if entry.IsDir() {
			slugs = append(slugs, entry.Name())
		}
	}
	return slugs, nil
}
