package main

import (
	"log"
	"net/http"
	"os"

	"pola_backend/internal/config"
	"pola_backend/internal/logger"
	"pola_backend/internal/middleware"
	"pola_backend/internal/routes"
	"pola_backend/internal/storage"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Make sure the document upload directory exists before accepting files
	if err := storage.EnsureUploadDir(); err != nil {
		log.Fatalf("could not prepare upload directory: %v", err)
	}

	// Setup Gin router (recovery and request logging are wired inside)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}

	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
