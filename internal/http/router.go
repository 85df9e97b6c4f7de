// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, rate
// limiting, CORS, compression, and security headers.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/brunovsouza/go-wishlist-backend/internal/cache"
	"github.com/brunovsouza/go-wishlist-backend/internal/config"
	"github.com/brunovsouza/go-wishlist-backend/internal/domain"
	"github.com/brunovsouza/go-wishlist-backend/internal/http/handlers"
	"github.com/brunovsouza/go-wishlist-backend/internal/http/middleware"
	"github.com/brunovsouza/go-wishlist-backend/internal/repo"
	"github.com/brunovsouza/go-wishlist-backend/internal/services"
)

// personRepoShim adapts the repository free functions to the
// services.PersonRepo interface expected by the PersonService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type personRepoShim struct{}

func (personRepoShim) CreatePerson(ctx context.Context, db *gorm.DB, name, email string) (*domain.Person, error) {
	return repo.CreatePerson(ctx, db, name, email)
}

func (personRepoShim) ListPersons(ctx context.Context, db *gorm.DB) ([]domain.Person, error) {
	return repo.ListPersons(ctx, db)
}

func (personRepoShim) GetPerson(ctx context.Context, db *gorm.DB, id string) (*domain.Person, error) {
	return repo.GetPerson(ctx, db, id)
}

func (personRepoShim) UpdatePerson(ctx context.Context, db *gorm.DB, id, name, email string) error {
	return repo.UpdatePerson(ctx, db, id, name, email)
}

func (personRepoShim) DeletePerson(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeletePerson(ctx, db, id)
}

// productRepoShim adapts the product-list repository free functions to the
// services.ProductListRepo interface.
type productRepoShim struct{}

func (productRepoShim) AddProduct(ctx context.Context, db *gorm.DB, personID, productID string) (*domain.ProductListEntry, error) {
	return repo.AddProduct(ctx, db, personID, productID)
}

func (productRepoShim) CountProducts(ctx context.Context, db *gorm.DB, personID string) (int64, error) {
	return repo.CountProducts(ctx, db, personID)
}

func (productRepoShim) ProductInList(ctx context.Context, db *gorm.DB, personID, productID string) (bool, error) {
	return repo.ProductInList(ctx, db, personID, productID)
}

func (productRepoShim) ListProductsPage(ctx context.Context, db *gorm.DB, personID string, offset, limit int) ([]domain.ProductListEntry, error) {
	return repo.ListProductsPage(ctx, db, personID, offset, limit)
}

func (productRepoShim) RemoveProduct(ctx context.Context, db *gorm.DB, personID, productID string) error {
	return repo.RemoveProduct(ctx, db, personID, productID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs (token values are redacted)
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics (+ /metrics endpoint)
//  7. Rate limiter (per user/IP)
//  8. CORS, gzip, and security headers
//
// Protected routes additionally run TokenAuth; mutating routes run
// RequireJSON before their handler parses the body.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store cache.Store, cat services.Catalog, cfg config.Config) {
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())

	// Global body size limit (1 MiB); payloads here are tiny JSON documents.
	r.Use(limitBody(1 << 20))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, "Path not found!", gin.H{"path": c.Request.URL.Path})
	})

	// Dependency injection: services ← repo/db/cache/catalog
	personSvc := services.NewPersonService(db, personRepoShim{}, store)
	personSvc.CacheTTL = cfg.Cache.TTL
	personSvc.NameLocale = language.English

	productSvc := &services.ProductListService{
		DB:       db,
		Repo:     productRepoShim{},
		Cache:    store,
		Catalog:  cat,
		PageSize: cfg.ItemsPerPage,
		Workers:  cfg.Catalog.Workers,
		CacheTTL: cfg.Cache.TTL,
	}

	h := handlers.New(personSvc, productSvc, store, cfg.SecretKey, cfg.Password, cfg.TokenTTL)

	// Liveness
	r.GET("/ping", h.Ping)
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Per-group probes stay unauthenticated, like the login route itself.
	r.GET("/login/ping", h.Ping)
	r.GET("/person/ping", h.Ping)
	r.GET("/cache/ping", h.Ping)

	r.GET("/login/", h.Login)

	requireToken := middleware.TokenAuth(cfg.SecretKey)
	requireJSON := middleware.RequireJSON()

	person := r.Group("/person", requireToken)
	{
		person.GET("/", h.ListPersons)
		person.POST("/", requireJSON, h.CreatePerson)
		person.GET("/:id", h.GetPerson)
		person.PUT("/:id", requireJSON, h.ReplacePerson)
		person.PATCH("/:id", requireJSON, h.UpdatePerson)
		person.DELETE("/:id", requireJSON, h.DeletePerson)

		person.GET("/:id/product", h.ListProducts)
		person.POST("/:id/product", requireJSON, h.AddProduct)
		person.DELETE("/:id/product", requireJSON, h.RemoveProduct)
	}

	r.POST("/cache/clear", requireToken, requireJSON, h.ClearCache)
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
