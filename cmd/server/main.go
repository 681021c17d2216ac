package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hiyoshi/pos-register/internal/application/commands"
	"github.com/hiyoshi/pos-register/internal/application/use_cases"
	"github.com/hiyoshi/pos-register/internal/config"
	"github.com/hiyoshi/pos-register/internal/domain/register"
	"github.com/hiyoshi/pos-register/internal/domain/scanner"
	"github.com/hiyoshi/pos-register/internal/infrastructure/backend"
	"github.com/hiyoshi/pos-register/internal/infrastructure/decoder"
	"github.com/hiyoshi/pos-register/internal/infrastructure/http/server"
	"github.com/hiyoshi/pos-register/internal/infrastructure/monitoring"
	"github.com/hiyoshi/pos-register/internal/pkg/clock"
	"github.com/hiyoshi/pos-register/internal/pkg/generator"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	log := logger.NewLogger()
	log.Info("Starting POS register service")

	cfg, configErr := config.LoadConfig(*configPath)
	if configErr != nil {
		log.Fatal("Failed to load configuration", "error", configErr)
	}

	ledger := backend.NewClient(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.TimeoutSeconds)*time.Second,
		log,
	)

	session := register.NewSession(register.Identity{
		EmployeeCode: cfg.Register.EmployeeCode,
		StoreCode:    cfg.Register.StoreCode,
		PosNumber:    cfg.Register.PosNumber,
	})
	cart := register.NewCart()

	// One draft transaction per process lifetime, opened in the background;
	// checkout refuses to run until it resolves.
	sessionUseCase := use_cases.NewSessionUseCase(ledger, session, clock.NewRealClock(), log)
	go func() {
		if err := sessionUseCase.Open(context.Background()); err != nil {
			log.Error("Draft transaction not opened", "error", err.Error())
		}
	}()

	streamDecoder := decoder.NewStreamDecoder(cfg.Scanner.DecoderAddr, log)
	scanController := scanner.NewController(streamDecoder, log)

	lookupHandler := commands.NewLookupHandler(ledger, cart, log)
	purchaseUseCase := use_cases.NewPurchaseUseCase(
		ledger,
		session,
		cart,
		generator.NewDetailIDGenerator(),
		log,
		cfg.Register.TaxRatePercent,
	)

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	// Decoded codes feed the same lookup path as typed ones.
	go func() {
		for {
			select {
			case <-serverCtx.Done():
				return
			case code := <-scanController.Codes():
				monitoring.RecordCodeDecoded()
				if _, err := lookupHandler.Handle(serverCtx, commands.LookupCommand{Code: code}); err != nil {
					log.Error("Scanned code lookup failed", "code", code, "error", err.Error())
				}
			}
		}
	}()

	httpServer := server.NewServer(cfg, lookupHandler, cart, scanController, purchaseUseCase, session, log)

	var metricsServer *monitoring.MetricsServer
	if cfg.Server.MetricsAddr != "" {
		metricsServer = monitoring.NewMetricsServer(cfg.Server.MetricsAddr)
		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Error("Metrics server failed", "error", err.Error())
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		shutdownCtx, shutdownCancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer shutdownCancel()

		log.Info("Shutting down server...")
		if err := scanController.Stop(); err != nil {
			log.Debug("Scanner already idle", "error", err.Error())
		}
		if metricsServer != nil {
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				log.Error("Metrics server shutdown error", "error", err)
			}
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}

		serverStopCtx()
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed", "error", err)
	}

	<-serverCtx.Done()
	log.Info("Server stopped")
}
