package handlers

import (
	"net/http"

	"campusexpense/internal/config"
	"campusexpense/internal/db"
	"campusexpense/internal/middleware"
	"campusexpense/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	txRunner   db.TxRunner
	cfg        config.Config
	users      UserStore
	categories CategoryStore
	budgets    BudgetStore
	expenses   ExpenseStore
	rates      RateStore
	audit      AuditStore
	summary    SummaryService
	hub        *websocket.Hub
}

func New(txRunner db.TxRunner, cfg config.Config, users UserStore, categories CategoryStore, budgets BudgetStore, expenses ExpenseStore, rates RateStore, audit AuditStore, summaryService SummaryService, hub *websocket.Hub) *Handler {
	return &Handler{
		txRunner:   txRunner,
		cfg:        cfg,
		users:      users,
		categories: categories,
		budgets:    budgets,
		expenses:   expenses,
		rates:      rates,
		audit:      audit,
		summary:    summaryService,
		hub:        hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
	})
	router.Route("/categories", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Put("/{id}", h.RenameCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})
	router.Route("/budgets", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/", h.ListBudgets)
		r.Post("/", h.CreateBudget)
		r.Put("/{id}", h.UpdateBudget)
		r.Delete("/{id}", h.DeleteBudget)
	})
	router.Route("/expenses", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/", h.ListExpenses)
		r.Post("/", h.CreateExpense)
	})
	router.Route("/summary", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/{month}", h.GetMonthSummary)
		r.Get("/{month}/breakdown", h.GetBudgetBreakdown)
	})
	router.Route("/rates", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/active", h.GetActiveRate)
		r.Post("/", h.SetRate)
	})
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/audit", h.ListAuditLog)
	router.Get("/ws/summary", h.WSSummary)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
