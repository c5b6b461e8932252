package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusexpense/internal/config"
	"campusexpense/internal/db"
	"campusexpense/internal/handlers"
	"campusexpense/internal/migrate"
	"campusexpense/internal/store"
	"campusexpense/internal/summary"
	"campusexpense/internal/websocket"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	if err := migrate.Run(context.Background(), database); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("failed to load timezone %q: %v", cfg.Timezone, err)
	}

	users := store.NewUserStore(database)
	categories := store.NewCategoryStore(database)
	budgets := store.NewBudgetStore(database)
	expenses := store.NewExpenseStore(database)
	rates := store.NewRateStore(database)
	audit := store.NewAuditStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()
	summaryService := summary.NewService(budgets, categories, expenses, loc)

	handler := handlers.New(txRunner, cfg, users, categories, budgets, expenses, rates, audit, summaryService, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("expense API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
