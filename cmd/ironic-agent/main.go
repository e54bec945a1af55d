// Command ironic-agent is the bare-metal provisioning agent's static
// binary entry point. It wires the ambient stack (config, logging,
// metrics) to the elected hardware manager and the command dispatcher;
// it does not itself serve the control-plane API (see internal/rpc's
// package comment).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/supermari0/ironic-python-agent/internal/agent"
	"github.com/supermari0/ironic-python-agent/internal/config"
	"github.com/supermari0/ironic-python-agent/internal/hardware"
	"github.com/supermari0/ironic-python-agent/internal/metrics"
	"github.com/supermari0/ironic-python-agent/internal/procexec"
	"github.com/supermari0/ironic-python-agent/internal/rpc"
	"github.com/supermari0/ironic-python-agent/pkg/agentlog"
)

var configPath = flag.String("config", "", "path to agent JSON config file (defaults applied if unset)")

func buildMetricsLogger(cfg config.Config, hostname string) *metrics.Logger {
	var backend metrics.Backend
	switch cfg.Metrics.Backend {
	case "statsd":
		backend = metrics.NewStatsdBackend(cfg.Metrics.StatsdHost, cfg.Metrics.StatsdPort)
	default:
		backend = metrics.NoopBackend{}
	}

	return metrics.New(backend, metrics.Config{
		GlobalPrefix:       cfg.Metrics.GlobalPrefix,
		PrependUUID:        cfg.Metrics.PrependUUID,
		PrependHost:        cfg.Metrics.PrependHost,
		PrependHostReverse: cfg.Metrics.PrependHostReverse,
		NodeUUID:           uuid.New().String(),
		Hostname:           hostname,
	})
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ironic-agent: loading config: %v\n", err)
		os.Exit(1)
	}

	level, err := agentlog.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ironic-agent: %v\n", err)
		os.Exit(1)
	}
	agentlog.SetLevelAll(level)

	hostname, _ := os.Hostname()
	metricsLogger := buildMetricsLogger(cfg, hostname)
	defer metricsLogger.Timed("agent", "uptime_ms")()

	mgr := hardware.Elect()
	if mgr == nil {
		agentlog.Fatal("no hardware manager registered")
	}
	agentlog.Info("elected hardware manager version %v", mgr.HardwareManagerVersion())

	core := &core{
		mgr:     mgr,
		cache:   agent.NewImageCache(),
		runner:  procexec.New(),
		workers: rpc.NewWorkers(),
	}

	agentlog.Info("ironic-agent ready, tmp_dir=%v cached_image_id=%q", cfg.TmpDir, core.cache.CachedImageID())
}

// core bundles the state an external dispatcher needs to call
// rpc.Dispatch/Workers.Dispatch: the elected manager, the per-agent image
// cache, the process runner, and the async-command worker pool. Building
// the HTTP transport that would drive it is out of scope (internal/rpc's
// package comment).
type core struct {
	mgr     hardware.Manager
	cache   *agent.ImageCache
	runner  procexec.CommandRunner
	workers *rpc.Workers
}
