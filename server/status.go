package server

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// StatusResponse reports server health and resource usage for /api/status
type StatusResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	State         string  `json:"state"`          // "running", "draining", "stopped"
	UptimeSeconds int64   `json:"uptime_seconds"` // Seconds since the server started
	Clients       int     `json:"clients"`        // Connected editor sessions
	Compiles      int64   `json:"compiles"`       // Successful compiles since start
	Failures      int64   `json:"failures"`       // Failed compiles since start
	ProcessRSSMB  float64 `json:"process_rss_mb"` // Resident memory of this process
	ProcessCPUPct float64 `json:"process_cpu_percent"`
	MemoryUsedGB  float64 `json:"memory_used_gb"`  // System memory in use
	MemoryTotalGB float64 `json:"memory_total_gb"` // Total system memory
	MemoryPercent float64 `json:"memory_percent"`  // System memory utilization
}

// statusSnapshot collects the current counters and resource usage.
// Resource probes degrade to zero values rather than failing the request.
func (s *BatonServer) statusSnapshot(version string) StatusResponse {
	resp := StatusResponse{
		Status:        "ok",
		Version:       version,
		State:         stateString(s.getState()),
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Clients:       s.ClientCount(),
		Compiles:      s.compileOK.Load(),
		Failures:      s.compileFail.Load(),
	}

	if v, err := mem.VirtualMemory(); err == nil && v.Total > 0 {
		resp.MemoryTotalGB = float64(v.Total) / 1024 / 1024 / 1024
		resp.MemoryUsedGB = float64(v.Total-v.Available) / 1024 / 1024 / 1024
		resp.MemoryPercent = (resp.MemoryUsedGB / resp.MemoryTotalGB) * 100
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil {
			resp.ProcessRSSMB = float64(info.RSS) / 1024 / 1024
		}
		if pct, err := proc.CPUPercent(); err == nil {
			resp.ProcessCPUPct = pct
		}
	}

	return resp
}
