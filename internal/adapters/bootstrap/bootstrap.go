// Package bootstrap wires one agent process together: config, database,
// persistence, metrics, the HTTP game client, treasurer, admiral, and the
// runner/coordinator pair. It is the numbered-step wiring the teacher's
// cmd/spacetraders-daemon/main.go performs inline, pulled into its own
// package so both cmd/spacetrader-agent/main.go and the cli run command
// share one bootstrap path instead of duplicating it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arcfleet/spacetrader-agent/internal/adapters/api"
	"github.com/arcfleet/spacetrader-agent/internal/adapters/metrics"
	"github.com/arcfleet/spacetrader-agent/internal/adapters/persistence"
	"github.com/arcfleet/spacetrader-agent/internal/adapters/wiring"
	"github.com/arcfleet/spacetrader-agent/internal/application/admiral"
	"github.com/arcfleet/spacetrader-agent/internal/application/logging"
	"github.com/arcfleet/spacetrader-agent/internal/application/runner"
	"github.com/arcfleet/spacetrader-agent/internal/application/treasurer"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
	"github.com/arcfleet/spacetrader-agent/internal/infrastructure/config"
	"github.com/arcfleet/spacetrader-agent/internal/infrastructure/database"
)

// TickInterval is the runner's tick duration: how long a While node in a
// ship's behavior tree sleeps between iterations (spec.md §4.7).
const TickInterval = 2 * time.Second

// Agent bundles every long-lived collaborator one process needs, so Run
// can tear the whole thing down and rebuild it on a reset signal without
// the caller needing to know what's inside.
type Agent struct {
	Config      *config.Config
	DB          *persistence.Repository
	Metrics     *metrics.Collector
	API         *api.Client
	Registry    *prometheus.Registry
	Treasurer   *treasurer.Treasurer
	Admiral     *admiral.Admiral
	Runner      *runner.Runner
	Coordinator *runner.Coordinator

	resetSignal chan struct{}
	closeDB     func() error
}

// New performs every numbered wiring step and returns an Agent ready to
// Run. cfgPath is passed straight to config.LoadConfig ("" searches the
// default paths).
func New(cfgPath string) (*Agent, error) {
	fmt.Println("1. Loading configuration...")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	fmt.Printf("2. Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	fmt.Println("3. Running migrations...")
	repo := persistence.New(db, shared.RealClock{})
	if err := repo.Migrate(); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	fmt.Println("4. Registering metrics collectors...")
	registry := prometheus.NewRegistry()
	collector, err := metrics.New(registry)
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	fmt.Println("5. Initializing API client...")
	resetSignal := make(chan struct{}, 1)
	apiClient := api.New(api.Config{
		BaseURL:          cfg.API.BaseURL,
		Token:            cfg.Agent.Token,
		MaxRetries:       cfg.API.Retry.MaxAttempts,
		BackoffBase:      cfg.API.Retry.BackoffBase,
		CircuitThreshold: cfg.API.Circuit.FailureThreshold,
		CircuitTimeout:   cfg.API.Circuit.OpenTimeout,
		Clock:            shared.RealClock{},
		Metrics:          collector.API,
		ResetSignal:      resetSignal,
	})

	fmt.Println("6. Initializing treasurer and admiral...")
	treas := treasurer.New(repo, shared.RealClock{}, nil, collector.Financial)
	priorEntries, err := repo.Ledger.LoadAll(context.Background())
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("load ledger for restore: %w", err)
	}
	if err := treas.Restore(priorEntries); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("restore treasurer from ledger: %w", err)
	}
	adm := admiral.New(repo, treas)

	fmt.Println("7. Wiring runner and coordinator...")
	r := runner.New(TickInterval)
	buildTree := wiring.NewTreeBuilder(wiring.TreeBuilderDeps{
		API:        apiClient,
		Store:      repo,
		Treasurer:  treas,
		Contracts:  repo,
		FindPath:   wiring.NewPathFinder(repo),
		Clock:      shared.RealClock{},
		ShipLookup: adm,
		Facts: func() (*admiral.Facts, error) {
			return admiral.CollectFacts(context.Background(), repo, cfg.Agent.HomeSystem, cfg.Agent.ConstructionWaypoint)
		},
	})
	coordinator := runner.NewCoordinator(r, adm, repo, func() (*admiral.Facts, error) {
		return admiral.CollectFacts(context.Background(), repo, cfg.Agent.HomeSystem, cfg.Agent.ConstructionWaypoint)
	}, buildTree, collector.Fleet)

	return &Agent{
		Config:      cfg,
		DB:          repo,
		Metrics:     collector,
		API:         apiClient,
		Treasurer:   treas,
		Admiral:     adm,
		Runner:      r,
		Coordinator: coordinator,
		Registry:    registry,
		resetSignal: resetSignal,
		closeDB:     func() error { return database.Close(db) },
	}, nil
}

// Close releases the database connection.
func (a *Agent) Close() error {
	return a.closeDB()
}

// Run starts the metrics HTTP server (if enabled) and the coordinator,
// then blocks until ctx is cancelled or the API client reports a game
// reset — spec.md §5/§6's cancellation story: a reset is "reported out of
// band to the top-level manager", which here means Run returns
// ErrGameReset so the caller can rebuild a fresh Agent and call Run again.
var ErrGameReset = errors.New("bootstrap: game reset detected, rebuild required")

func (a *Agent) Run(ctx context.Context) error {
	ctx = logging.WithLogger(ctx, logging.NewStdoutLogger(os.Stdout, logging.ParseLevel(a.Config.Logging.Level)))

	var metricsServer *http.Server
	if a.Config.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(a.Config.Metrics.Path, promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
		addr := fmt.Sprintf("%s:%d", a.Config.Metrics.Host, a.Config.Metrics.Port)
		metricsServer = &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error(ctx, "metrics server stopped", map[string]any{"err": err.Error()})
			}
		}()
		defer metricsServer.Close()
	}

	coordCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.Coordinator.Run(coordCtx)

	logging.Info(ctx, "agent started", map[string]any{"agent": a.Config.Agent.Symbol})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-a.resetSignal:
		logging.Error(ctx, "game reset detected, stopping fleet", nil)
		return ErrGameReset
	}
}

// RunUntilSignal runs the agent, rebuilding it on every detected reset,
// until the process receives SIGINT/SIGTERM.
func RunUntilSignal(cfgPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		agent, err := New(cfgPath)
		if err != nil {
			return err
		}

		err = agent.Run(ctx)
		closeErr := agent.Close()

		switch {
		case errors.Is(err, ErrGameReset):
			if closeErr != nil {
				fmt.Fprintf(os.Stderr, "warning: close during reset: %v\n", closeErr)
			}
			continue
		case errors.Is(err, context.Canceled):
			return closeErr
		default:
			if closeErr != nil && err == nil {
				return closeErr
			}
			return err
		}
	}
}
