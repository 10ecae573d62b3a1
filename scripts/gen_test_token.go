package main

import (
	"fmt"
	"log"
	"os"

	"codeberg.org/geniusgpt/server/internal/auth"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// load environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	// no user row needed up front: the token ledger provisions the account
	// with the starting grant on first request
	testEmail := "test@geniusgpt.dev"
	userID := os.Getenv("TEST_USER_ID")
	if userID == "" {
		userID = uuid.New().String()
	}

	token, err := auth.GenerateJWT(userID, testEmail)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("✅ Test user ID: %s\n", userID)
	fmt.Printf("\n🔑 Test JWT Token:\n%s\n\n", token)
	fmt.Printf("Export this token for testing:\nexport GENIUSGPT_TOKEN=\"%s\"\n", token)
}
