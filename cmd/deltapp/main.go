package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Zandino/Deltapp/internal/auth"
	"github.com/Zandino/Deltapp/internal/config"
	"github.com/Zandino/Deltapp/internal/db"
	"github.com/Zandino/Deltapp/internal/excel"
	"github.com/Zandino/Deltapp/internal/geocode"
	httphandler "github.com/Zandino/Deltapp/internal/http"
	"github.com/Zandino/Deltapp/internal/http/middleware"
	"github.com/Zandino/Deltapp/internal/logger"
	"github.com/Zandino/Deltapp/internal/mailer"
	"github.com/Zandino/Deltapp/internal/pdf"
	"github.com/Zandino/Deltapp/internal/repository"
	"github.com/Zandino/Deltapp/internal/service"
	"github.com/Zandino/Deltapp/internal/tracking"
)

func main() {
	_ = godotenv.Load()

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

	interventionRepo := repository.NewInterventionRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	clientRepo := repository.NewClientRepository(database)
	technicianRepo := repository.NewTechnicianRepository(database)
	contractRepo := repository.NewContractRepository(database)
	priceRepo := repository.NewPriceRepository(database)
	invoiceRepo := repository.NewInvoiceRepository(database)
	documentRepo := repository.NewDocumentRepository(database)
	userRepo := repository.NewUserRepository(database)

	var mail mailer.Mailer
	if cfg.SMTP.Host == "" {
		mail = mailer.NewConsole(log)
	} else {
		mail = mailer.NewSMTP(cfg.SMTP)
	}

	tokenTTL, err := time.ParseDuration(cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid JWT_TOKEN_TTL")
	}

	handler := httphandler.NewHandler(httphandler.HandlerDeps{
		Interventions: service.NewInterventionService(interventionRepo),
		Projects:      service.NewProjectService(projectRepo, interventionRepo),
		Clients:       service.NewClientService(clientRepo),
		Technicians:   service.NewTechnicianService(technicianRepo),
		Contracts:     service.NewContractService(contractRepo),
		Prices:        service.NewPriceService(priceRepo),
		Accounting:    service.NewAccountingService(invoiceRepo, interventionRepo),
		Documents:     service.NewDocumentService(documentRepo),
		Users:         service.NewUserService(userRepo, mail, log),
		Tracking:      tracking.New(cfg.Tracking.BaseURL, cfg.Tracking.Token),
		Geocoder:      geocode.New(cfg.Geocode.BaseURL),
		Excel:         excel.NewGenerator(),
		PDF:           pdf.NewGenerator(),
		Issuer:        auth.NewIssuer(cfg.Auth.AccessSecret, tokenTTL),
		Log:           log,
	})

	authMiddleware := middleware.Auth(auth.NewParser(cfg.Auth.AccessSecret))
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting deltapp service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
