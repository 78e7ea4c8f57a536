// internal/handlers/health.go
package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockscan/internal/core/ports"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

// QueueInspector is the part of *asynq.Inspector the checker reads
type QueueInspector interface {
	Queues() ([]string, error)
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
}

// HealthChecker reports on the stores and queues the scanner depends on
type HealthChecker struct {
	db        ports.Database
	cache     ports.CacheRepository
	queues    QueueInspector
	version   string
	env       string
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthChecker creates a new health checker. cache and queues may be nil.
func NewHealthChecker(
	database ports.Database,
	cache ports.CacheRepository,
	queues QueueInspector,
	version, environment string,
	logger *slog.Logger,
) *HealthChecker {
	return &HealthChecker{
		db:        database,
		cache:     cache,
		queues:    queues,
		version:   version,
		env:       environment,
		logger:    logger.With(slog.String("component", "health")),
		startTime: time.Now(),
	}
}

// HealthStatus represents the health status of the application
type HealthStatus struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Uptime      string                 `json:"uptime"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ServiceInfo `json:"services"`
	System      SystemInfo             `json:"system"`
}

// ServiceInfo represents the status of a service dependency
type ServiceInfo struct {
	Status       string                 `json:"status"`
	Message      string                 `json:"message,omitempty"`
	ResponseTime string                 `json:"response_time,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// SystemInfo represents system-level information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
	NumGC         uint32 `json:"num_gc"`
}

// Healthy reports whether every enabled dependency answered
func (s HealthStatus) Healthy() bool {
	return s.Status == StatusHealthy
}

// Check probes every dependency. The database is required, the others
// only degrade the result.
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health := HealthStatus{
		Status:      StatusHealthy,
		Version:     h.version,
		Environment: h.env,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now(),
		Services:    make(map[string]ServiceInfo),
		System:      systemInfo(),
	}

	dbStatus := h.checkDatabase(ctx)
	health.Services["database"] = dbStatus
	if dbStatus.Status != StatusHealthy {
		health.Status = StatusUnhealthy
	}

	cacheStatus := h.checkCache(ctx)
	health.Services["redis"] = cacheStatus
	if cacheStatus.Status == StatusUnhealthy && health.Status == StatusHealthy {
		health.Status = StatusDegraded
	}

	queueStatus := h.checkQueues(ctx)
	health.Services["asynq"] = queueStatus
	if queueStatus.Status == StatusUnhealthy && health.Status == StatusHealthy {
		health.Status = StatusDegraded
	}

	return health
}

// Ready pings the database only
func (h *HealthChecker) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	return nil
}

func (h *HealthChecker) checkDatabase(ctx context.Context) ServiceInfo {
	start := time.Now()
	info := ServiceInfo{
		Status:  StatusHealthy,
		Details: make(map[string]interface{}),
	}

	if err := h.db.Ping(ctx); err != nil {
		info.Status = StatusUnhealthy
		info.Message = err.Error()
		h.logger.ErrorContext(ctx, "database health check failed",
			slog.String("error", err.Error()))
		return info
	}

	for k, v := range h.db.Stats() {
		info.Details[k] = v
	}

	info.ResponseTime = time.Since(start).String()
	return info
}

func (h *HealthChecker) checkCache(ctx context.Context) ServiceInfo {
	if h.cache == nil {
		return ServiceInfo{Status: StatusDisabled}
	}

	start := time.Now()
	info := ServiceInfo{Status: StatusHealthy}

	if err := h.cache.Ping(ctx); err != nil {
		info.Status = StatusUnhealthy
		info.Message = err.Error()
		h.logger.WarnContext(ctx, "redis health check failed",
			slog.String("error", err.Error()))
		return info
	}

	info.ResponseTime = time.Since(start).String()
	return info
}

func (h *HealthChecker) checkQueues(ctx context.Context) ServiceInfo {
	if h.queues == nil {
		return ServiceInfo{Status: StatusDisabled}
	}

	start := time.Now()
	info := ServiceInfo{
		Status:  StatusHealthy,
		Details: make(map[string]interface{}),
	}

	queues, err := h.queues.Queues()
	if err != nil {
		info.Status = StatusUnhealthy
		info.Message = err.Error()
		h.logger.WarnContext(ctx, "asynq health check failed",
			slog.String("error", err.Error()))
		return info
	}

	for _, queue := range queues {
		qInfo, err := h.queues.GetQueueInfo(queue)
		if err != nil {
			continue
		}
		info.Details[queue] = map[string]interface{}{
			"pending":  qInfo.Pending,
			"active":   qInfo.Active,
			"retry":    qInfo.Retry,
			"archived": qInfo.Archived,
		}
	}

	info.ResponseTime = time.Since(start).String()
	return info
}

// WriteHealth prints status as aligned text for the command line
func WriteHealth(w io.Writer, status HealthStatus) error {
	if _, err := fmt.Fprintf(w, "status: %s (version %s, %s)\n", status.Status, status.Version, status.Environment); err != nil {
		return err
	}

	names := make([]string, 0, len(status.Services))
	for name := range status.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		svc := status.Services[name]
		line := fmt.Sprintf("  %-9s %s", name, svc.Status)
		if svc.ResponseTime != "" {
			line += " in " + svc.ResponseTime
		}
		if svc.Message != "" {
			line += ": " + svc.Message
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func systemInfo() SystemInfo {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		MemoryAllocMB: memStats.Alloc / 1024 / 1024,
		NumGC:         memStats.NumGC,
	}
}
