package preview

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/journalsite/internal/build"
	"git.home.luguber.info/inful/journalsite/internal/config"
	"git.home.luguber.info/inful/journalsite/internal/foundation/errors"
	"git.home.luguber.info/inful/journalsite/internal/logfields"
	"git.home.luguber.info/inful/journalsite/internal/metrics"
)

const (
	// DefaultPort is the preview server port.
	DefaultPort     = 1316
	defaultDebounce = 300 * time.Millisecond
)

// Options configures a preview session.
type Options struct {
	// Load returns the configuration for each build, so edits to the config
	// file are picked up on the next rebuild.
	Load func() (*config.Config, error)
	// ConfigPath is watched in addition to the journal inputs. Optional.
	ConfigPath string
	// OutputDir replaces the configured output directory.
	OutputDir string
	// Port to listen on; 0 picks a free port.
	Port int
	// Registry is served on /metrics when set.
	Registry *prom.Registry
	Recorder metrics.Recorder
	Debounce time.Duration
}

// buildStatus tracks the last build so the server can explain a failure.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.hasGoodBuild = true
}

func (bs *buildStatus) get() (hasGoodBuild bool, lastError error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.hasGoodBuild, bs.lastError
}

// Session is a running preview.
type Session struct {
	opts   Options
	status buildStatus
	server *http.Server
	ln     net.Listener
}

// Run performs the initial build, serves the output and rebuilds on change
// until ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}

	cfg, err := opts.Load()
	if err != nil {
		return err
	}
	// Watch before the first build so edits made during it are not lost.
	w, err := newWatcher(watchTargets(cfg, opts.ConfigPath), opts.OutputDir)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	s.rebuild(ctx)

	if err := s.listen(); err != nil {
		return err
	}
	slog.Info("Preview server listening", logfields.URL(s.URL()), logfields.Path(opts.OutputDir))
	fmt.Printf("Serving %s at %s\n", opts.OutputDir, s.URL())

	rebuildReq, trigger := setupRebuildDebouncer(s.opts.Debounce)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				slog.Info("Change detected; rebuilding site")
				s.rebuild(ctx)
			}
		}
	}()

	w.run(ctx, trigger)
	<-done
	return s.shutdown()
}

func newSession(opts Options) (*Session, error) {
	if opts.Load == nil {
		return nil, errors.InternalError("preview needs a configuration loader").Build()
	}
	if opts.OutputDir == "" {
		return nil, errors.ValidationError("preview needs an output directory").Build()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	s := &Session{opts: opts}
	s.server = &http.Server{
		Handler:           newHandler(opts.OutputDir, &s.status, opts.Registry),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Session) listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.opts.Port))
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to start preview server").
			WithContext("port", s.opts.Port).Fatal().Build()
	}
	s.ln = ln
	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("Preview server failed", logfields.Error(err))
		}
	}()
	return nil
}

// URL is the address the server listens on.
func (s *Session) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// rebuild runs one build and returns the configuration it used, or nil when
// the configuration could not be loaded.
func (s *Session) rebuild(ctx context.Context) *config.Config {
	cfg, err := s.opts.Load()
	if err != nil {
		slog.Warn("Configuration invalid; keeping previous output", logfields.Error(err))
		s.status.setError(err)
		return nil
	}
	cfg.Output = s.opts.OutputDir

	res, err := build.NewBuildService().WithRecorder(s.opts.Recorder).Run(ctx, build.BuildRequest{Config: cfg})
	if err != nil {
		slog.Warn("Rebuild failed", logfields.Error(err))
		s.status.setError(err)
		return cfg
	}
	s.status.setSuccess()
	slog.Info(res.Summary())
	return cfg
}

func (s *Session) shutdown() error {
	slog.Info("Shutting down preview server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Warn("Preview server shutdown error", logfields.Error(err))
	}
	return nil
}

// setupRebuildDebouncer returns a channel that receives one value after
// events stop arriving for delay, and the function that reports an event.
func setupRebuildDebouncer(delay time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}
