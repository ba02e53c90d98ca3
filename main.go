package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"profee-cloud/internal/audit"
	"profee-cloud/internal/auth"
	"profee-cloud/internal/export"
	fuelapp "profee-cloud/internal/fuel/application"
	fuelrepo "profee-cloud/internal/fuel/infrastructure/postgres"
	fuelinterfaces "profee-cloud/internal/fuel/interfaces"
	"profee-cloud/internal/maintenance"
	"profee-cloud/internal/observability/metrics"
	statementapp "profee-cloud/internal/statement/application"
	statementrepo "profee-cloud/internal/statement/infrastructure/postgres"
	statementinterfaces "profee-cloud/internal/statement/interfaces"
	companyapp "profee-cloud/internal/titlecompany/application"
	companyrepo "profee-cloud/internal/titlecompany/infrastructure/postgres"
	companyinterfaces "profee-cloud/internal/titlecompany/interfaces"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	branding, err := export.LoadBranding()
	if err != nil {
		logger.Printf("export config error: %v (using defaults)", err)
	}

	statementRepo := statementrepo.NewStatementRepository(db)
	statementService, err := statementapp.NewStatementService(statementRepo)
	if err != nil {
		logger.Fatalf("statement service error: %v", err)
	}
	statementHandler, err := statementinterfaces.NewStatementHandler(statementService, branding, auditRepo)
	if err != nil {
		logger.Fatalf("statement handler error: %v", err)
	}

	sessionRepo := fuelrepo.NewSessionRepository(db)
	fuelService, err := fuelapp.NewFuelService(sessionRepo)
	if err != nil {
		logger.Fatalf("fuel service error: %v", err)
	}
	fuelHandler, err := fuelinterfaces.NewFuelHandler(fuelService, branding, auditRepo)
	if err != nil {
		logger.Fatalf("fuel handler error: %v", err)
	}

	companyRepo := companyrepo.NewCompanyRepository(db)
	companyService, err := companyapp.NewCompanyService(companyRepo)
	if err != nil {
		logger.Fatalf("titlecompany service error: %v", err)
	}
	companyHandler, err := companyinterfaces.NewCompanyHandler(companyService, auditRepo)
	if err != nil {
		logger.Fatalf("titlecompany handler error: %v", err)
	}

	migrator, err := maintenance.NewMigrator(maintenance.NewPostgresVersionStore(db), statementRepo, logger)
	if err != nil {
		logger.Fatalf("maintenance migrator error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := migrator.Run(ctx, cfg.AppVersion); err != nil {
		logger.Fatalf("version migration error: %v", err)
	}
	cancel()
	maintenanceHandler, err := maintenance.NewHandler(statementRepo, auditRepo)
	if err != nil {
		logger.Fatalf("maintenance handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/statements", statementHandler)
	mux.Handle("/api/v1/statements/", statementHandler)
	mux.Handle("/api/v1/fuel/", fuelHandler)
	mux.Handle("/api/v1/title-companies", companyHandler)
	mux.Handle("/api/v1/title-companies/", companyHandler)
	mux.Handle("/api/v1/maintenance/", maintenanceHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	AppVersion  string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		AppVersion:  getenvDefault("APP_VERSION", "unknown"),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
