package processor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"codeberg.org/snonux/abbrevkit/internal/cli"
	"codeberg.org/snonux/abbrevkit/internal/logging"
	"codeberg.org/snonux/abbrevkit/internal/metrics"
)

// LockFileName is created in the working directory while a stage runs
const LockFileName = ".abbrevkit.lock"

// ErrLocked is returned when another run holds the working directory lock
var ErrLocked = errors.New("another abbrevkit run is using this working directory")

// Processor runs the pipeline stages
type Processor struct {
	flags   *cli.Flags
	logger  *slog.Logger
	metrics *metrics.Recorder
	out     io.Writer
	runID   string
}

// NewProcessor creates a processor configured from flags
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	logger, err := logging.New(logging.Options{
		Level:  flags.LogLevel,
		Format: flags.LogFormat,
	})
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	return &Processor{
		flags:   flags,
		logger:  logger.With("run_id", runID),
		metrics: metrics.NewRecorder(),
		out:     os.Stdout,
		runID:   runID,
	}, nil
}

// SetOutput redirects the human readable summaries
func (p *Processor) SetOutput(w io.Writer) {
	p.out = w
}

// SetLogger replaces the structured logger
func (p *Processor) SetLogger(logger *slog.Logger) {
	p.logger = logger.With("run_id", p.runID)
}

// Metrics returns the recorder collecting this run's metrics
func (p *Processor) Metrics() *metrics.Recorder {
	return p.metrics
}

// Filter runs the token filter stage
func (p *Processor) Filter() (FilterResult, error) {
	var res FilterResult
	err := p.locked(func() error {
		var err error
		res, err = p.filterStage()
		return err
	})
	return res, err
}

// Features runs the feature extraction stage
func (p *Processor) Features() (FeaturesResult, error) {
	var res FeaturesResult
	err := p.locked(func() error {
		var err error
		res, err = p.featuresStage()
		return err
	})
	return res, err
}

// Chunk runs the chunking stage
func (p *Processor) Chunk() (ChunkResult, error) {
	var res ChunkResult
	err := p.locked(func() error {
		var err error
		res, err = p.chunkStage()
		return err
	})
	return res, err
}

// Run executes filter, features and chunk in order, stopping at the first failure
func (p *Processor) Run() error {
	return p.locked(func() error {
		if _, err := p.filterStage(); err != nil {
			return err
		}
		if _, err := p.featuresStage(); err != nil {
			return err
		}
		_, err := p.chunkStage()
		return err
	})
}

// Finish writes the metrics file when one is configured
func (p *Processor) Finish() error {
	if p.flags.MetricsFile == "" {
		return nil
	}
	path := p.path(p.flags.MetricsFile)
	if err := p.metrics.WriteFile(path); err != nil {
		return err
	}
	p.logger.Debug("metrics written", "path", path)
	return nil
}

// locked runs fn while holding the working directory lock
func (p *Processor) locked(fn func() error) error {
	if err := os.MkdirAll(p.workDir(), 0755); err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}

	lockPath := filepath.Join(p.workDir(), LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (%s)", ErrLocked, lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn("failed to release lock", "path", lockPath, "error", err)
		}
	}()

	return fn()
}

// path resolves a configured path against the working directory
func (p *Processor) path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.workDir(), name)
}

func (p *Processor) workDir() string {
	if p.flags.WorkDir == "" {
		return "."
	}
	return p.flags.WorkDir
}

// timed logs and records the duration of a stage
func (p *Processor) timed(stage string, start time.Time) {
	d := time.Since(start)
	p.metrics.ObserveStage(stage, d)
	p.logger.Debug("stage timing", "stage", stage, "duration", d)
}
