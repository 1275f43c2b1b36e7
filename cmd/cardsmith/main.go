package main

import (
	"log"

	"github.com/MrSnakeDoc/cardsmith/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ cardsmith failed to start: %v", err)
	}
}
