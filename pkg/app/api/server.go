// Package api implements app.Runner for the agreement server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chainsafe/agreement-middleware/pkg/agreement"
	agreementservice "github.com/chainsafe/agreement-middleware/pkg/agreement/service"
	apphttp "github.com/chainsafe/agreement-middleware/pkg/app/http"
	"github.com/chainsafe/agreement-middleware/pkg/auth"
	"github.com/chainsafe/agreement-middleware/pkg/compiler"
	"github.com/chainsafe/agreement-middleware/pkg/config"
	"github.com/chainsafe/agreement-middleware/pkg/contracts"
	"github.com/chainsafe/agreement-middleware/pkg/ethereum"
	"github.com/chainsafe/agreement-middleware/pkg/keys"
)

const (
	defaultRequestTimeout = 10 * time.Minute
	startupTimeout        = 30 * time.Second
)

// readiness is the part of the ledger the /ready probe needs
type readiness interface {
	IsLive(ctx context.Context) bool
}

// Server holds cfg to init the agreement server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new agreement server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("agreement server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting agreement server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	ledger, err := ethereum.NewClient(startCtx, &cfg.Ethereum, logger)
	if err != nil {
		return fmt.Errorf("connect ledger: %w", err)
	}
	defer ledger.Close()

	logger.Info("Connected to ledger",
		zap.String("rpc_url", cfg.Ethereum.RPCURL),
		zap.String("chain_id", ledger.ChainID().String()),
	)

	registry, err := s.loadRegistry(logger)
	if err != nil {
		return err
	}

	solc := compiler.NewSolcCompiler(&cfg.Compiler, logger)
	if err := solc.CheckVersion(startCtx); err != nil {
		// deployment fails later with a compile error; everything else still works
		logger.Warn("Solidity compiler check failed", zap.Error(err))
	}

	session, err := s.newSession(logger)
	if err != nil {
		return err
	}
	defer session.Close()

	opts, err := agreement.OptionsFromConfig(&cfg.Ethereum)
	if err != nil {
		return fmt.Errorf("ethereum options: %w", err)
	}

	orchestrator := agreement.NewOrchestrator(
		session,
		ledger,
		keys.NewSigner(ledger.ChainID()),
		registry,
		solc,
		opts,
		logger,
	)

	svc := agreementservice.NewLog(agreementservice.NewService(orchestrator), logger)
	router := s.setupRouter(svc, ledger, logger)

	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

func (s *Server) loadRegistry(logger *zap.Logger) (*contracts.Registry, error) {
	registry, err := contracts.LoadRegistry(s.cfg.Contracts.MasterABIPath)
	if err != nil {
		return nil, fmt.Errorf("load master agreement abi: %w", err)
	}
	if err := registry.Validate(contracts.RequiredMethods, contracts.RequiredEvents); err != nil {
		return nil, fmt.Errorf("master agreement abi: %w", err)
	}
	logger.Info("Loaded master agreement interface",
		zap.String("path", s.cfg.Contracts.MasterABIPath),
		zap.String("contract", registry.Name()),
	)
	return registry, nil
}

// newSession seeds the session with the configured master address, if any
func (s *Server) newSession(logger *zap.Logger) (*agreement.Session, error) {
	session := agreement.NewSession()
	if s.cfg.Agreement.MasterAddress == "" {
		return session, nil
	}

	master := common.HexToAddress(s.cfg.Agreement.MasterAddress)
	if err := session.ConfigureMaster(master); err != nil {
		return nil, fmt.Errorf("seed master agreement: %w", err)
	}
	logger.Info("Master agreement preconfigured", zap.String("master_address", master.Hex()))
	return session, nil
}

func (s *Server) setupRouter(svc agreementservice.Service, ledger readiness, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultRequestTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if !ledger.IsLive(r.Context()) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("ledger unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if s.cfg.Monitoring.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	validator := auth.NewJWTValidator(s.cfg.Auth.JWTSecret, s.cfg.Auth.JWTIssuer)
	if validator.IsConfigured() {
		logger.Info("Operator authentication enabled")
	}

	// Agreement endpoints
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(validator, logger))
		agreementservice.RegisterRoutes(r, svc, logger)
	})

	return r
}
