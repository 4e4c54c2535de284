package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"elibrary/internal/api"
	"elibrary/internal/app/service"
	"elibrary/internal/common/security"
	"elibrary/internal/domain/repository"
	"elibrary/internal/platform/config"
	"elibrary/internal/platform/database"
	"elibrary/internal/platform/sessions"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Construct the store handle. It dials lazily: an unreachable
	// database fails individual requests with 503 instead of killing the
	// process here.
	pg := database.New(config.AppConfig.DBConnStr)
	defer pg.Close()

	// 4. Session revocation store (redis).
	revocations, err := sessions.NewRevocationStore(
		config.AppConfig.RedisAddr,
		config.AppConfig.RedisPassword,
		config.AppConfig.RedisDB,
	)
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer revocations.Close()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(pg)
	bookRepo := repository.NewPgBookRepository(pg)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, revocations)
	bookService := service.NewBookService(bookRepo)
	contactService := service.NewContactService(config.AppConfig.ContactsFile)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, bookService, contactService, config.AppConfig.WebDir)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
