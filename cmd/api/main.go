package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deployhub/orchestrator/internal/adapters/dns"
	"github.com/deployhub/orchestrator/internal/adapters/executor"
	"github.com/deployhub/orchestrator/internal/adapters/paas"
	"github.com/deployhub/orchestrator/internal/adapters/proxy"
	"github.com/deployhub/orchestrator/internal/api/controllers"
	"github.com/deployhub/orchestrator/internal/api/routes"
	"github.com/deployhub/orchestrator/internal/audit"
	"github.com/deployhub/orchestrator/internal/orchestrator"
	"github.com/deployhub/orchestrator/internal/pipeline"
	"github.com/deployhub/orchestrator/internal/platform/config"
	"github.com/deployhub/orchestrator/internal/platform/database"
	applog "github.com/deployhub/orchestrator/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := applog.Init(applog.Config{LogDir: cfg.LogDir}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	slogger := applog.Get()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to audit database: %v", err)
	}
	defer database.Close()

	auditRepo := audit.NewRepository(db)

	exec := executor.New(cfg.ProxySitesDir, cfg.ContainerConfigDir, cfg.TmpDir)
	proxyWriter := proxy.New(cfg.ProxySitesDir, []string{"caddy", "validate", "--config"}, []string{"systemctl", "reload", "caddy"}, exec)

	adapters := &pipeline.Adapters{
		PaaS:     paas.New(cfg.PaaSURL, cfg.PaaSAPIToken, cfg.ServerUUID),
		DNS:      dns.New(cfg.DNSURL, cfg.DNSAPIKey),
		Proxy:    proxyWriter,
		Executor: exec,
	}

	pipelineCfg := pipeline.Config{
		ServerIP:              cfg.ServerIP,
		BaseDomain:            cfg.BaseDomain,
		DefaultGitRepo:        cfg.DefaultGitRepo,
		DNSZone:               cfg.BaseDomain,
		WaitReadyInterval:     cfg.WaitReadyInterval,
		WaitReadyBudget:       cfg.WaitReadyBudget,
		WaitReadyPollTimeout:  cfg.WaitReadyPollTimeout,
	}
	p := pipeline.New(adapters, pipelineCfg)

	orch := orchestrator.New(p, adapters, auditRepo, slogger, cfg.BaseDomain)

	ctrls := routes.Controllers{
		Health:     controllers.NewHealthController(orch),
		Deploy:     controllers.NewDeployController(orch),
		Project:    controllers.NewProjectController(orch),
		Deployment: controllers.NewDeploymentController(orch),
	}

	router := routes.SetupRouter(ctrls)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Minute,
	}

	go func() {
		slogger.Info("starting deployment orchestrator API", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	slogger.Info("server exited")
}
