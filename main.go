// @title rhello flow API
// @version 1.0
// @description Backend do ATS rhello flow: vagas, candidatos, scorecards e testes externos.

// @contact.name Suporte rhello
// @contact.email suporte@rhello.com.br

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"rhello_flow_backend/internal/app"
	"rhello_flow_backend/internal/config"
	"rhello_flow_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "executa apenas a migração do banco e encerra")
	migrate := flag.Bool("migrate", false, "força a migração do banco na subida (mesmo em modo release)")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("migração concluída, encerrando")
		return
	}

	application.Run()
}
