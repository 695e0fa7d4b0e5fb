// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package main is the entry point for the recommendation engine process.
//
// Startup order: load configuration, init logging, open the graph and
// vector stores, optionally dial the broker and build the projector
// worker pool, wire the admission/orchestrator/control services onto an
// HTTP router, then hand everything to a suture supervisor tree for
// supervised, graceful-shutdown-aware execution.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orbitlane/recoengine/internal/admission"
	"github.com/orbitlane/recoengine/internal/api"
	"github.com/orbitlane/recoengine/internal/broker"
	"github.com/orbitlane/recoengine/internal/config"
	"github.com/orbitlane/recoengine/internal/control"
	"github.com/orbitlane/recoengine/internal/deadletter"
	"github.com/orbitlane/recoengine/internal/graphstore"
	"github.com/orbitlane/recoengine/internal/logging"
	"github.com/orbitlane/recoengine/internal/orchestrator"
	"github.com/orbitlane/recoengine/internal/projector"
	"github.com/orbitlane/recoengine/internal/supervisor"
	"github.com/orbitlane/recoengine/internal/supervisor/services"
	"github.com/orbitlane/recoengine/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logging.Info().Msg("starting recoengine")

	graph, err := graphstore.New(cfg.Graph)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open graph store")
	}
	defer func() {
		if err := graph.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing graph store")
		}
	}()

	vector := vectorstore.New(cfg.Vector)

	deadLetter, err := deadletter.Open(cfg.DeadLetter)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open dead-letter mirror")
	}
	defer func() {
		if err := deadLetter.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing dead-letter mirror")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slogLogger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}

	tree.AddDataService(deadletter.NewJanitor(deadLetter, cfg.DeadLetter.GCInterval))

	var (
		admissionSvc *admission.Service
		brkr         *broker.Broker
	)

	if cfg.UseBroker {
		brkr, err = broker.New(cfg.Broker, cfg.Queue)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to connect to broker")
		}
		defer func() {
			if err := brkr.Close(); err != nil {
				logging.Error().Err(err).Msg("error closing broker")
			}
		}()

		pool := projector.NewPool(
			slogLogger,
			cfg.Worker,
			cfg.Retry.Schedule,
			brkr,
			brkr,
			projector.NewGraphApplier(graph),
			projector.NewVectorApplier(),
			deadLetter,
		)
		tree.AddDataService(pool)

		admissionSvc = admission.New(graph, brkr, true)
	} else {
		admissionSvc = admission.New(graph, nil, false)
	}

	orch := orchestrator.New(graph, vector, cfg.Recommend)
	ctrl := control.New(brokerOrNil(brkr), orch, deadLetter)

	router := api.NewRouter(api.Deps{
		Admission:    admissionSvc,
		Orchestrator: orch,
		Control:      ctrl,
	}, []string{}, 100, time.Minute)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("http server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
		}
	}

	logging.Info().Msg("recoengine stopped gracefully")
}

// brokerOrNil returns a nil control.BrokerSurface when the broker is not
// in use, since the control.Service's Health aggregation must still report
// a broker status ("disabled") rather than panic on a nil *broker.Broker.
func brokerOrNil(b *broker.Broker) control.BrokerSurface {
	if b == nil {
		return noBroker{}
	}
	return b
}

// noBroker is the control.BrokerSurface used when UseBroker is false: every
// probe reports the broker as absent rather than failing the health check.
type noBroker struct{}

func (noBroker) Health() broker.Health { return broker.Health{Status: "disabled"} }
func (noBroker) QueueInfo(_ string) (broker.QueueInfo, error) {
	return broker.QueueInfo{}, errBrokerDisabled
}
func (noBroker) Purge(_ string) (int, error) { return 0, errBrokerDisabled }

var errBrokerDisabled = errors.New("recoengine: broker is disabled (use_broker=false)")
