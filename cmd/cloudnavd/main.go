package main

import (
	"log"

	"github.com/cloudnav/cloudnav/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ cloudnavd failed to start: %v", err)
	}
}
