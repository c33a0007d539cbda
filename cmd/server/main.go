package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/askhatb/challenge-on/internal/config"
	"github.com/askhatb/challenge-on/internal/database"
	"github.com/askhatb/challenge-on/internal/handlers"
	"github.com/askhatb/challenge-on/internal/identity"
	"github.com/askhatb/challenge-on/internal/repository"
	"github.com/askhatb/challenge-on/internal/services"
	"github.com/askhatb/challenge-on/pkg/logger"
	"github.com/askhatb/challenge-on/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// --- Services ---
	verifier := identity.NewGoogleVerifier(cfg.GoogleClientID)
	authService := services.NewAuthService(userRepo, verifier, cfg.JWTSecret, cfg.TokenExpiry)
	challengeService := services.NewChallengeService(challengeRepo, progressRepo)
	progressService := services.NewProgressService(progressRepo, challengeRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	progressHandler := handlers.NewProgressHandler(progressService)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public auth route
	router.HandleFunc("/api/auth/google", authHandler.GoogleSignInHandler).Methods("POST")

	// Protected auth routes
	protectedAuthRoutes := router.PathPrefix("/api/auth").Subrouter()
	protectedAuthRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedAuthRoutes.HandleFunc("/me", authHandler.MeHandler).Methods("GET")

	// Challenge routes
	protectedChallengeRoutes := router.PathPrefix("/api/challenges").Subrouter()
	protectedChallengeRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedChallengeRoutes.HandleFunc("", challengeHandler.GetChallengesHandler).Methods("GET")
	protectedChallengeRoutes.HandleFunc("", challengeHandler.CreateChallengeHandler).Methods("POST")
	protectedChallengeRoutes.HandleFunc("/{id}", challengeHandler.GetChallengeHandler).Methods("GET")
	protectedChallengeRoutes.HandleFunc("/{id}", challengeHandler.UpdateChallengeHandler).Methods("PUT")
	protectedChallengeRoutes.HandleFunc("/{id}", challengeHandler.DeleteChallengeHandler).Methods("DELETE")

	// Progress routes
	protectedProgressRoutes := router.PathPrefix("/api/progress").Subrouter()
	protectedProgressRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedProgressRoutes.HandleFunc("/challenge/{challengeId}", progressHandler.GetLogsHandler).Methods("GET")
	protectedProgressRoutes.HandleFunc("", progressHandler.CreateLogHandler).Methods("POST")
	protectedProgressRoutes.HandleFunc("/{id}", progressHandler.UpdateLogHandler).Methods("PUT")
	protectedProgressRoutes.HandleFunc("/{id}", progressHandler.DeleteLogHandler).Methods("DELETE")

	// Media uploads
	protectedUploadRoutes := router.PathPrefix("/api/uploads").Subrouter()
	protectedUploadRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUploadRoutes.HandleFunc("", uploadHandler.UploadMediaHandler).Methods("POST")
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
