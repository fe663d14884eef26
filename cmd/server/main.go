package main

import (
	"log"

	"vardiya-backend/internal/config"
	"vardiya-backend/internal/database"
	"vardiya-backend/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := server.New(cfg)

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
