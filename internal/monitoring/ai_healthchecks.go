package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMEOUT = 5 * time.Second

type Checker interface {
	Healthy(ctx context.Context) bool
}

// MonitorPipelineHealth probes checker every interval and stores the result
// in healthy until ctx is cancelled.
func MonitorPipelineHealth(ctx context.Context, checker Checker, healthy *atomic.Bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, HEALTHCHECK_TIMEOUT)
			isHealthy := checker.Healthy(probeCtx)
			cancel()

			if was := healthy.Swap(isHealthy); was != isHealthy {
				if isHealthy {
					slog.Info("[HealthCheck] Pipelines recovered")
				} else {
					slog.Warn("[HealthCheck] Pipelines are unhealthy")
				}
			}
		}
	}
}
