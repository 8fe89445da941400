package api

import (
	"context"
	"net/http"
	"time"

	"cryptofolio/src/api/controllers"
	"cryptofolio/src/api/handlers"
	"cryptofolio/src/clients/coingecko"
	"cryptofolio/src/config"
	"cryptofolio/src/database"
	"cryptofolio/src/repositories"
	"cryptofolio/src/services"
	"cryptofolio/src/utils"
	redis_utils "cryptofolio/src/utils/redis"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler

	logger    *logrus.Logger
	tokenAuth *jwtauth.JWTAuth

	holdingRepository repositories.HoldingRepository
	priceClient       coingecko.CoinGeckoServiceClientI
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	// Redis is optional: without it price lookups just hit upstream.
	var redisHandler *redis_utils.RedisHandler
	if cfg.Databases.Redis.Host != "" {
		redisHandler, err = redis_utils.NewRedisHandler(cfg)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, price caching disabled")
			redisHandler = nil
		}
	}

	priceClient := coingecko.NewClient(cfg, redisHandler)

	transactionRepository := repositories.NewTransactionRepository(db)
	holdingRepository := repositories.NewHoldingRepository(db)
	userRepository := repositories.NewUserRepository(db)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil)

	ledgerService := services.NewLedgerService()
	reconcileService := services.NewReconcileService(transactionRepository, holdingRepository, ledgerService)
	portfolioService := services.NewPortfolioService(holdingRepository, priceClient)
	authService := services.NewAuthService(userRepository, tokenAuth, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	handler := handlers.NewHandler(
		controllers.NewTransactionsController(transactionRepository, holdingRepository, reconcileService),
		controllers.NewHoldingsController(holdingRepository),
		controllers.NewPortfolioController(portfolioService),
		controllers.NewMarketController(priceClient),
		controllers.NewAuthController(authService),
	)

	server := &Server{
		Router:            chi.NewRouter(),
		Handler:           handler,
		logger:            logger,
		tokenAuth:         tokenAuth,
		holdingRepository: holdingRepository,
		priceClient:       priceClient,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(s.loggerMiddleware)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Post("/api/auth/register", s.Handler.Register)
	s.Router.Post("/api/auth/login", s.Handler.Login)

	s.Router.Route("/api/market", func(r chi.Router) {
		r.Get("/coins", s.Handler.GetMarkets)
		r.Get("/coins/{coinId}", s.Handler.GetCoinDetail)
		r.Get("/search", s.Handler.SearchCoins)
	})

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.tokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Route("/api/transactions", func(r chi.Router) {
			r.Get("/", s.Handler.GetTransactions)
			r.Get("/{id}", s.Handler.GetTransactionByID)
			r.Post("/", s.Handler.CreateTransaction)
			r.Put("/{id}", s.Handler.UpdateTransaction)
			r.Delete("/{id}", s.Handler.DeleteTransaction)
		})

		r.Route("/api/holdings", func(r chi.Router) {
			r.Get("/", s.Handler.GetHoldings)
		})

		r.Route("/api/portfolio", func(r chi.Router) {
			r.Get("/", s.Handler.GetPortfolio)
			r.Post("/refresh", s.Handler.RefreshPortfolio)
		})
	})
}

func (s *Server) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(utils.WithLogger(r.Context(), s.logger)))
	})
}

// WarmupPrices pre-fetches quotes for every held coin so the next
// portfolio read is served from cache. Wired to the cron scheduler.
func (s *Server) WarmupPrices() {
	ctx, cancel := context.WithTimeout(utils.WithLogger(context.Background(), s.logger), 30*time.Second)
	defer cancel()

	coinIDs, err := s.holdingRepository.ListCoinIDs(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("price warmup: could not list held coins")
		return
	}
	if len(coinIDs) == 0 {
		return
	}

	if _, err := s.priceClient.RefreshSimplePrices(ctx, coinIDs); err != nil {
		s.logger.WithError(err).Warn("price warmup: refresh failed")
	}
}

func NewHTTPServer(server *Server, port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
