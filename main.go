package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/jaan-distributors/storefront/pkg/auth"
	"github.com/jaan-distributors/storefront/pkg/cart"
	"github.com/jaan-distributors/storefront/pkg/catalog"
	"github.com/jaan-distributors/storefront/pkg/client"
	"github.com/jaan-distributors/storefront/pkg/repository"
	"github.com/jaan-distributors/storefront/pkg/service"
)

const defaultPort = "8080"

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.Level = logrus.DebugLevel
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry := initTelemetry(ctx, log)
	defer shutdownTelemetry(context.Background())

	// Cart persistence slot. Without Redis the storefront still runs: carts
	// live in memory for the process lifetime, the contract stays the same.
	var (
		cartStore cart.CartStore
		rdb       *redis.Client
	)
	if os.Getenv("REDIS_ADDR") != "" || os.Getenv("REDIS_SENTINEL_ADDRS") != "" {
		cr, err := repository.NewCartRedis(log)
		if err != nil {
			log.Fatalf("failed to create cart store: %v", err)
		}
		cartStore = cr
		rdb = cr.Client()
	} else {
		log.Info("REDIS_ADDR not set, using in-memory cart persistence")
		cartStore = repository.NewCartMemory(log)
	}

	// Catalog: MySQL when a DSN is configured, the static seed otherwise.
	var catalogRepo catalog.ProductRepository
	var db *gorm.DB
	if dsn := os.Getenv("CATALOG_DSN"); dsn != "" {
		var err error
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("failed to connect to mysql: %v", err)
		}
		catalogRepo = catalog.NewMysqlRepo(db)
		if rdb != nil {
			catalogRepo = catalog.NewCachedRepo(catalogRepo, rdb, log)
		}
	} else {
		log.Info("CATALOG_DSN not set, serving the static seed catalog")
		catalogRepo = catalog.NewStaticRepo()
	}

	odooAddr := os.Getenv("ODOO_BASE_URL")
	if odooAddr == "" {
		odooAddr = "http://localhost:8069"
		log.Infof("ODOO_BASE_URL not set, defaulting to %s", odooAddr)
	}
	erp := client.NewOdooClient(odooAddr, log)

	var userRepo auth.UserRepository
	if db != nil {
		if err := db.AutoMigrate(&auth.Record{}); err != nil {
			log.Fatalf("failed to migrate users table: %v", err)
		}
		userRepo = auth.NewGormRepo(db)
	} else {
		userRepo = auth.NewMemoryRepo()
	}

	fe := &storefront{
		log:      log,
		sessions: cart.NewManager(cartStore, log),
		catalog:  catalogRepo,
		erp:      erp,
		checkout: service.NewCheckoutService(catalogRepo, erp, log),
		auth:     auth.NewService(userRepo),
	}

	r := mux.NewRouter()
	fe.routes(r)

	limiter := NewLimiter(rdb, log)
	var handler http.Handler = ensureSessionID(&logHandler{log: log, next: r})
	if limiter != nil {
		handler = limiter.GlobalAndIPLimiter(handler)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("storefront listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("server shutdown: %v", err)
	}
}
