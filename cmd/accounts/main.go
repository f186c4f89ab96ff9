package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	accountshttp "github.com/mbickford/accounts-service/internal/accounts/http"
	"github.com/mbickford/accounts-service/internal/accounts/repository"
	"github.com/mbickford/accounts-service/internal/accounts/service"
	"github.com/mbickford/accounts-service/internal/common/config"
	"github.com/mbickford/accounts-service/internal/common/constants"
	commoncrypto "github.com/mbickford/accounts-service/internal/common/crypto"
	"github.com/mbickford/accounts-service/internal/common/db"
	commonhttp "github.com/mbickford/accounts-service/internal/common/http"
	"github.com/mbickford/accounts-service/internal/common/logger"
	srv "github.com/mbickford/accounts-service/internal/common/server"
	"github.com/mbickford/accounts-service/internal/common/token"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "accounts", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	userRepo := repository.NewPgRepository(pool)
	hasher := &commoncrypto.BcryptHasher{}
	codec := token.NewCodec(cfg.SecretKey)
	authService := service.NewAuthService(userRepo, hasher, codec, log)

	handler := accountshttp.NewHandler(authService, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewRateLimiter(constants.RateLimitRequestsPerSecond, constants.RateLimitBurst)
	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.Middleware(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, log, "accounts")
}
