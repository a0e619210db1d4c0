package main

import (
	"log"

	"github.com/tooldex/tooldex/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ tooldex failed to start: %v", err)
	}
}
