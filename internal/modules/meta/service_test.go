// README: Meta service tests with stubbed db and LLM probes.
package meta

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eztravel/internal/ai"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubLLM struct {
	liveErr   error
	uptime    time.Duration
	uptimeErr error
	info      ai.ModelStatus
}

func (l stubLLM) Info(context.Context) ai.ModelStatus { return l.info }
func (l stubLLM) Liveness(context.Context) error      { return l.liveErr }
func (l stubLLM) Uptime(context.Context, time.Time) (time.Duration, error) {
	return l.uptime, l.uptimeErr
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name       string
		db         Pinger
		llm        stubLLM
		wantStatus string
		wantErrs   []string
	}{
		{"all healthy", stubPinger{}, stubLLM{}, StatusOK, nil},
		{"db down", stubPinger{err: errors.New("connection refused")}, stubLLM{}, StatusDegraded, []string{"db"}},
		{"llm down", stubPinger{}, stubLLM{liveErr: errors.New("dial tcp: timeout")}, StatusDegraded, []string{"llm"}},
		{"both down", stubPinger{err: errors.New("x")}, stubLLM{liveErr: errors.New("y")}, StatusDegraded, []string{"db", "llm"}},
		{"no database", nil, stubLLM{}, StatusDegraded, []string{"db"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(Deps{DB: tc.db, LLM: tc.llm})
			r := svc.Health(context.Background())

			assert.Equal(t, tc.wantStatus, r.OverallStatus)
			assert.Equal(t, tc.wantStatus == StatusOK, r.OK())
			assert.True(t, r.Components.API)
			assert.Len(t, r.Errors, len(tc.wantErrs))
			for _, k := range tc.wantErrs {
				assert.NotEmpty(t, r.Errors[k], k)
			}
			assert.Equal(t, r.Components.DB, r.Errors["db"] == "")
			assert.Equal(t, r.Components.LLM, r.Errors["llm"] == "")
			_, err := time.Parse(time.RFC3339, r.Timestamp)
			assert.NoError(t, err)
		})
	}
}

func TestHealth_ErrorMessageSurfaced(t *testing.T) {
	svc := NewService(Deps{DB: stubPinger{err: errors.New("connection refused")}, LLM: stubLLM{}})
	r := svc.Health(context.Background())
	assert.Equal(t, "connection refused", r.Errors["db"])
}

func TestVersion(t *testing.T) {
	svc := NewService(Deps{
		LLM:   stubLLM{info: ai.ModelStatus{Model: "mistral", Status: ai.StatusLoaded}},
		Build: BuildInfo{Version: "1.2.3", Commit: "abc"},
	})
	r := svc.Version(context.Background())
	assert.Equal(t, "1.2.3", r.Version)
	assert.Equal(t, "abc", r.Commit)
	assert.NotEmpty(t, r.GoVersion)
	assert.NotEmpty(t, r.Platform)
	assert.Equal(t, ai.StatusLoaded, r.LLM.Status)
}

func TestUptime(t *testing.T) {
	boot := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	svc := NewService(Deps{BootTime: boot, LLM: stubLLM{uptime: 90 * time.Second}})
	svc.now = func() time.Time { return boot.Add(2*time.Hour + 5*time.Minute + 7*time.Second) }
	r := svc.Uptime(context.Background())
	assert.True(t, r.OK())
	assert.Equal(t, "2h 5m 7s", r.ServerUptime)
	assert.Equal(t, "0h 1m 30s", r.LLMUptime)
	assert.Empty(t, r.LLMErrors)

	svc = NewService(Deps{BootTime: boot, LLM: stubLLM{uptimeErr: ai.ErrModelNotRunning}})
	svc.now = func() time.Time { return boot.Add(time.Second) }
	r = svc.Uptime(context.Background())
	assert.False(t, r.OK())
	assert.Equal(t, "unknown", r.LLMUptime)
	assert.Equal(t, "Failed to retrieve LLM uptime: model not running", r.LLMErrors)
	assert.Equal(t, "0h 0m 1s", r.ServerUptime)
}

func TestLogs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "all.log"), []byte("line one\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "error.log"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	svc := NewService(Deps{LogDir: dir, LLM: stubLLM{}})
	logs, err := svc.Logs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"all.log": "line one\n", "error.log": ""}, logs)
}

func TestLogs_MissingDir(t *testing.T) {
	svc := NewService(Deps{LogDir: filepath.Join(t.TempDir(), "missing"), LLM: stubLLM{}})
	_, err := svc.Logs(context.Background())
	assert.ErrorIs(t, err, ErrLogDirUnreadable)
}
