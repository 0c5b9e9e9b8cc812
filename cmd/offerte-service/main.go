package main

import (
	"fmt"
	"os"

	"github.com/groenvak/offerte-service/internal/auth"
	"github.com/groenvak/offerte-service/internal/config"
	"github.com/groenvak/offerte-service/internal/db"
	"github.com/groenvak/offerte-service/internal/excel"
	httphandler "github.com/groenvak/offerte-service/internal/http"
	"github.com/groenvak/offerte-service/internal/http/middleware"
	"github.com/groenvak/offerte-service/internal/logger"
	"github.com/groenvak/offerte-service/internal/pdf"
	"github.com/groenvak/offerte-service/internal/repository"
	"github.com/groenvak/offerte-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	referentieRepo := repository.NewReferentieRepository(database)
	offerteRepo := repository.NewOfferteRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	planningRepo := repository.NewPlanningRepository(database)
	urenRepo := repository.NewUrenRepository(database)

	pdfGenerator := pdf.NewGenerator()
	excelGenerator := excel.NewGenerator()

	offerteService := service.NewOfferteService(referentieRepo, offerteRepo, projectRepo, pdfGenerator, cfg)
	referentieService := service.NewReferentieService(referentieRepo, cfg)
	projectService := service.NewProjectService(projectRepo)
	planningService := service.NewPlanningService(planningRepo, projectRepo)
	urenService := service.NewUrenService(urenRepo, projectRepo, excelGenerator)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(offerteService, referentieService, projectService, planningService, urenService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting offerte service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
