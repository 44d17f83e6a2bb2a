// Package observability starts the process telemetry: Uptrace tracing, Pyroscope profiling and
// an optional pprof listener.
package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/tournament-registration/internal/config"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

type stopFunc struct {
	name string
	stop func(context.Context) error
}

// Stack tracks what Start enabled so Shutdown can stop it in reverse order.
type Stack struct {
	logger    *logging.Logger
	stops     []stopFunc
	pprofAddr string
}

func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger}

	s.startTracing(cfg)
	if err := s.startProfiler(cfg); err != nil {
		_ = s.Shutdown(context.Background())
		return nil, err
	}
	if err := s.startPprof(cfg); err != nil {
		_ = s.Shutdown(context.Background())
		return nil, err
	}
	return s, nil
}

// PprofAddr is the bound pprof address, empty when pprof is off.
func (s *Stack) PprofAddr() string {
	return s.pprofAddr
}

func (s *Stack) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(s.stops) - 1; i >= 0; i-- {
		item := s.stops[i]
		if err := item.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", item.name, err))
			continue
		}
		s.logger.Info("telemetry stopped", "component", item.name)
	}
	s.stops = nil
	return errors.Join(errs...)
}

func (s *Stack) startTracing(cfg config.Config) {
	switch {
	case !cfg.UptraceEnabled:
		s.logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		s.logger.Warn("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	s.stops = append(s.stops, stopFunc{name: "uptrace", stop: uptrace.Shutdown})
	s.logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)
}

func (s *Stack) startProfiler(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		s.logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.PyroscopeAppName,
		ServerAddress:   cfg.PyroscopeServerAddress,
		AuthToken:       cfg.PyroscopeAuthToken,
		UploadRate:      cfg.PyroscopeUploadRate,
		Tags:            map[string]string{"env": cfg.AppEnv, "service": cfg.ServiceName},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
		},
	})
	if err != nil {
		return fmt.Errorf("start pyroscope: %w", err)
	}
	s.stops = append(s.stops, stopFunc{name: "pyroscope", stop: func(context.Context) error { return profiler.Stop() }})
	s.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return nil
}

// startPprof binds before returning so a bad PPROF_ADDR fails startup.
func (s *Stack) startPprof(cfg config.Config) error {
	if !cfg.PprofEnabled {
		return nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return fmt.Errorf("listen pprof on %s: %w", cfg.PprofAddr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("pprof server failed", "error", err)
		}
	}()

	s.pprofAddr = ln.Addr().String()
	s.stops = append(s.stops, stopFunc{name: "pprof", stop: srv.Shutdown})
	s.logger.Info("pprof listening", "addr", s.pprofAddr)
	return nil
}
