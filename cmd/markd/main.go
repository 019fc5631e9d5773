package main

import (
	"log"

	"github.com/mkoval/markd/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ markd failed to start: %v", err)
	}
}
