// README: Meta payloads (health, version, uptime).
package meta

import "eztravel/internal/ai"

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

type Components struct {
	API bool `json:"api"`
	LLM bool `json:"llm"`
	DB  bool `json:"db"`
}

type HealthReport struct {
	OverallStatus string            `json:"overall_status"`
	Components    Components        `json:"components"`
	Errors        map[string]string `json:"errors,omitempty"`
	Timestamp     string            `json:"timestamp"`
}

func (r HealthReport) OK() bool {
	return r.OverallStatus == StatusOK
}

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

type VersionReport struct {
	BuildInfo
	LLM ai.ModelStatus `json:"llm"`
}

type UptimeReport struct {
	ServerUptime string `json:"server_uptime"`
	LLMUptime    string `json:"llm_uptime"`
	LLMErrors    string `json:"llm_errors,omitempty"`
	Timestamp    string `json:"timestamp"`
}

func (r UptimeReport) OK() bool {
	return r.LLMErrors == ""
}
