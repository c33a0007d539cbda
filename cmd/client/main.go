package main

import (
	"fmt"
	"os"

	"github.com/askhatb/challenge-on/internal/client/api"
	"github.com/askhatb/challenge-on/internal/client/cmd"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on environment variables")
	}

	serverURL := os.Getenv("SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}

	client := api.NewClient(serverURL)
	cmd.Init(client)
	cmd.Execute()
}
