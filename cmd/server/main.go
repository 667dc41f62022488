package main

import (
	"os"

	"merlin/backend/internal/app"
)

// @title           Merlin Chat API
// @version         1.0
// @description     Backend for the Merlin chat assistant: token-authenticated chat sessions, LLM-backed message turns with optional step-by-step reasoning, location-aware restaurant suggestions and PDF document context.

// @host      localhost:5001
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token issued by /api/login, sent as "Bearer <token>".
func main() {
	os.Exit(app.Run())
}
