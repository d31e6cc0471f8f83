package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/console/handler"
	"github.com/xela07ax/inventory-console/internal/infra"
	"github.com/xela07ax/inventory-console/internal/infra/auth"
)

type ConsoleServer struct {
	router *chi.Mux
	logger *zap.Logger
	cfg    infra.ServerConfig

	// Сессия оператора: гард читает из нее токен на каждый запрос
	session auth.SessionReader
	metrics http.Handler

	// Обработчики экранов консоли
	authHandler     *handler.AuthHandler      // /auth
	dashHandler     *handler.DashboardHandler // /api/dashboard
	productHandler  *handler.ProductHandler   // /api/products
	storeHandler    *handler.StoreHandler     // /api/stores
	stockHandler    *handler.StockHandler     // /api/stock
	activityHandler *handler.ActivityHandler  // /api/activity
}

// NewConsoleServer инициализирует HTTP-поверхность консоли со всеми зависимостями
func NewConsoleServer(
	cfg infra.ServerConfig,
	logger *zap.Logger,
	session auth.SessionReader,
	metrics http.Handler,
	authH *handler.AuthHandler,
	dashH *handler.DashboardHandler,
	productH *handler.ProductHandler,
	storeH *handler.StoreHandler,
	stockH *handler.StockHandler,
	activityH *handler.ActivityHandler,
) *ConsoleServer {
	s := &ConsoleServer{
		router:          chi.NewRouter(),
		logger:          logger.Named("console-api"),
		cfg:             cfg,
		session:         session,
		metrics:         metrics,
		authHandler:     authH,
		dashHandler:     dashH,
		productHandler:  productH,
		storeHandler:    storeH,
		stockHandler:    stockH,
		activityHandler: activityH,
	}

	s.routes()
	return s
}

func (s *ConsoleServer) routes() {
	r := s.router

	// --- 1. Глобальные инфраструктурные Middleware (для всех) ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	// --- 2. ПУБЛИЧНЫЕ РОУТЫ ---
	r.Group(func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		if s.metrics != nil {
			r.Method(http.MethodGet, "/metrics", s.metrics)
		}

		r.Post("/auth/login", s.authHandler.Login)
		r.Post("/auth/logout", s.authHandler.Logout)
		r.Get("/auth/session", s.authHandler.Session)
	})

	// --- 3. ЗАЩИЩЕННЫЙ ПЕРИМЕТР (нужна установленная сессия) ---
	r.Group(func(r chi.Router) {
		r.Use(auth.NewMiddleware(s.session, s.cfg.LoginPath, s.logger))

		// Мутации только для админа. Это подсказка UI, границу доверия держит API
		admin := auth.RequireAdmin(s.session, s.logger)

		r.Get("/api/dashboard", s.dashHandler.Get)

		r.Route("/api/products", func(r chi.Router) {
			r.Get("/", s.productHandler.List)
			r.With(admin).Post("/", s.productHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(admin)
				r.Put("/", s.productHandler.Update)
				r.Delete("/", s.productHandler.Delete)
			})
		})

		r.Route("/api/stores", func(r chi.Router) {
			r.Get("/", s.storeHandler.List)
			r.With(admin).Post("/", s.storeHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(admin)
				r.Put("/", s.storeHandler.Update)
				r.Delete("/", s.storeHandler.Delete)
			})
		})

		r.Route("/api/stock", func(r chi.Router) {
			r.Get("/", s.stockHandler.List)
			r.With(admin).Put("/", s.stockHandler.Update)
		})

		r.Get("/api/activity", s.activityHandler.Recent)
		if s.activityHandler.HasHistory() {
			r.Get("/api/activity/history", s.activityHandler.History)
		}
	})
}

// requestLogger — журнал запросов через zap вместо стандартного middleware.Logger.
func (s *ConsoleServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// ServeHTTP позволяет использовать ConsoleServer как стандартный http.Handler
func (s *ConsoleServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer собирает http.Server с адресом и таймаутами из конфига.
func (s *ConsoleServer) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
}
