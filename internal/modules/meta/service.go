// README: Meta service; aggregates db and LLM probes and reads the log directory.
package meta

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"eztravel/internal/ai"
)

var (
	ErrLogDirUnreadable = errors.New("could not read log directory")
	errDBNotConfigured  = errors.New("database not configured")
)

const UnknownUptime = "unknown"

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type LLMProber interface {
	Info(ctx context.Context) ai.ModelStatus
	Liveness(ctx context.Context) error
	Uptime(ctx context.Context, now time.Time) (time.Duration, error)
}

type Deps struct {
	DB        Pinger
	DBTimeout time.Duration
	LLM       LLMProber
	BootTime  time.Time
	LogDir    string
	Build     BuildInfo
	Logger    *slog.Logger
}

type Service struct {
	db        Pinger
	dbTimeout time.Duration
	llm       LLMProber
	bootTime  time.Time
	logDir    string
	build     BuildInfo
	log       *slog.Logger
	now       func() time.Time
}

func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	build := deps.Build
	if build.GoVersion == "" {
		build.GoVersion = runtime.Version()
	}
	if build.Platform == "" {
		build.Platform = runtime.GOOS + "/" + runtime.GOARCH
	}
	timeout := deps.DBTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Service{
		db:        deps.DB,
		dbTimeout: timeout,
		llm:       deps.LLM,
		bootTime:  deps.BootTime,
		logDir:    deps.LogDir,
		build:     build,
		log:       logger,
		now:       time.Now,
	}
}

// Health runs the db and LLM checks concurrently. The API component is
// always healthy; answering at all implies it.
func (s *Service) Health(ctx context.Context) HealthReport {
	var (
		wg            sync.WaitGroup
		dbErr, llmErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		dbErr = s.pingDB(ctx)
	}()
	go func() {
		defer wg.Done()
		llmErr = s.llm.Liveness(ctx)
	}()
	wg.Wait()

	report := HealthReport{
		Components: Components{API: true, DB: dbErr == nil, LLM: llmErr == nil},
		Timestamp:  s.now().UTC().Format(time.RFC3339),
	}
	errs := map[string]string{}
	if dbErr != nil {
		s.log.Error("db health check failed", "error", dbErr)
		errs["db"] = dbErr.Error()
	}
	if llmErr != nil {
		s.log.Error("llm health check failed", "error", llmErr)
		errs["llm"] = llmErr.Error()
	}
	if len(errs) == 0 {
		report.OverallStatus = StatusOK
	} else {
		report.OverallStatus = StatusDegraded
		report.Errors = errs
	}
	return report
}

func (s *Service) pingDB(ctx context.Context) error {
	if s.db == nil {
		return errDBNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	return s.db.Ping(ctx)
}

func (s *Service) Version(ctx context.Context) VersionReport {
	return VersionReport{BuildInfo: s.build, LLM: s.llm.Info(ctx)}
}

func (s *Service) Uptime(ctx context.Context) UptimeReport {
	now := s.now()
	report := UptimeReport{
		ServerUptime: ai.FormatUptime(now.Sub(s.bootTime)),
		LLMUptime:    UnknownUptime,
		Timestamp:    now.UTC().Format(time.RFC3339),
	}
	d, err := s.llm.Uptime(ctx, now)
	if err != nil {
		report.LLMErrors = fmt.Sprintf("Failed to retrieve LLM uptime: %v", err)
		s.log.Error(report.LLMErrors)
		return report
	}
	report.LLMUptime = ai.FormatUptime(d)
	return report
}

// Logs returns the content of every regular file in the log directory keyed
// by file name. A file that cannot be read is reported in place of its content.
func (s *Service) Logs(context.Context) (map[string]string, error) {
	entries, err := os.ReadDir(s.logDir)
	if err != nil {
		s.log.Error("failed to read log directory", "dir", s.logDir, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrLogDirUnreadable, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	s.log.Debug("found log files", "count", len(names))

	out := make(map[string]string, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(s.logDir, name))
		if err != nil {
			s.log.Error("failed to read log file", "file", name, "error", err)
			out[name] = fmt.Sprintf("Error reading file: %v", err)
			continue
		}
		out[name] = string(content)
	}
	return out, nil
}
