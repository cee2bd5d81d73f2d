package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/cache"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/services"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/theory"
	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	startTime time.Time
	version   string
	compile   *services.CompileService
}

func NewMetricsHandler(version string, compile *services.CompileService) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		compile:   compile,
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	bytesToMB        = 1024 * 1024
)

// formatUptime formats the uptime duration with seconds rounded to 2 decimal places
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

type MetricsResponse struct {
	Status    string          `json:"status"`
	Uptime    string          `json:"uptime"`
	Timestamp string          `json:"timestamp"`
	Version   string          `json:"version"`
	StartTime string          `json:"start_time"`
	System    SystemMetrics   `json:"system"`
	Compiler  CompilerMetrics `json:"compiler"`
}

type SystemMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	NumGC        uint32 `json:"num_gc"`
}

// CompilerMetrics describes what the compiler knows and how the cache is doing
type CompilerMetrics struct {
	Cache          cache.Stats `json:"cache"`
	HistoryEnabled bool        `json:"history_enabled"`
	Scales         []string    `json:"scales"`
	Chords         []string    `json:"chords"`
	Grooves        []string    `json:"grooves"`
}

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(time.Since(h.startTime)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		System: SystemMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / bytesToMB,
			MemTotalMB:   m.TotalAlloc / bytesToMB,
			NumGC:        m.NumGC,
		},
		Compiler: CompilerMetrics{
			Cache:          h.compile.CacheStats(),
			HistoryEnabled: h.compile.HistoryEnabled(),
			Scales:         theory.ScaleNames(),
			Chords:         theory.ChordQualities(),
			Grooves:        theory.GrooveNames(),
		},
	}

	c.JSON(http.StatusOK, resp)
}
