package observability

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// SessionCounter reports active realtime sessions without exposing the registry.
type SessionCounter interface {
	Count() int
}

// Stats is the health snapshot served over the API.
type Stats struct {
	UptimeSeconds  int64   `json:"uptime_seconds"`
	ActiveSessions int     `json:"active_sessions"`
	AllocMemMb     uint64  `json:"alloc_mem_mb"`
	NumGC          uint32  `json:"num_gc"`
	NumGoroutine   int     `json:"num_goroutine"`
	CPUPercent     float64 `json:"cpu_percent"`
	RSSMb          uint64  `json:"rss_mb"`
}

// Monitor samples process and runtime metrics on demand.
type Monitor struct {
	log      *slog.Logger
	sessions SessionCounter
	start    time.Time
	proc     *process.Process
}

func NewMonitor(log *slog.Logger, sessions SessionCounter) *Monitor {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("process metrics unavailable", "err", err)
	}
	return &Monitor{log: log, sessions: sessions, start: time.Now(), proc: proc}
}

// Snapshot gathers the current stats. Process-level metrics degrade to zero
// when sampling fails; the snapshot itself never errors.
func (m *Monitor) Snapshot() Stats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := Stats{
		UptimeSeconds:  int64(time.Since(m.start).Seconds()),
		ActiveSessions: m.sessions.Count(),
		AllocMemMb:     mem.Alloc / 1024 / 1024,
		NumGC:          mem.NumGC,
		NumGoroutine:   runtime.NumGoroutine(),
	}

	if m.proc != nil {
		if cpu, err := m.proc.CPUPercent(); err == nil {
			stats.CPUPercent = cpu
		}
		if info, err := m.proc.MemoryInfo(); err == nil && info != nil {
			stats.RSSMb = info.RSS / 1024 / 1024
		}
	}
	return stats
}
