package addictiontube

import (
	"context"
	"fmt"
	"time"

	healthuc "github.com/mjmj007a/addictiontube/internal/usecase/health"
)

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Health checks the vector index and the embedding provider.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	var err error
	if report.Status != healthuc.Healthy {
		err = fmt.Errorf("health status %s", report.Status)
	}
	c.obs.observe("health", start, err)

	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
