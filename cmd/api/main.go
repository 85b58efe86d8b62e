package main

import (
	"log"

	"MockECommerce/config"
	"MockECommerce/internal/api"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}
	api.Run(cfg)
}
