package main

import (
	"log"

	"github.com/kavjeydev/notepod-sub000/internal/app"
	"github.com/kavjeydev/notepod-sub000/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
