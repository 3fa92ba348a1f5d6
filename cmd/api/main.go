package main

import (
	"fmt"
	"log"

	"github.com/maarten-vizzerz/comaker/internal/config"
	"github.com/maarten-vizzerz/comaker/internal/db"
	"github.com/maarten-vizzerz/comaker/internal/historie"
	httpserver "github.com/maarten-vizzerz/comaker/internal/http"
	"github.com/maarten-vizzerz/comaker/internal/seed"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DSN)
	db.AutoMigrate(gdb)
	reg := db.InstallHistorie(gdb)

	if err := seed.FirstSetup(gdb); err != nil {
		log.Fatalf("❌ Seed failed: %v", err)
	}

	svc := historie.NewService(gdb, reg)

	r := httpserver.NewRouter(gdb, svc, cfg.JWTSecret)
	log.Printf("🚀 Server listening on :%s\n", cfg.AppPort)
	r.Run(fmt.Sprintf(":%s", cfg.AppPort))
}
