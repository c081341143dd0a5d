package orchestrator

import "context"

// HealthStatus is the body of GET /api/health (§6).
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// Version is the orchestrator's own release identifier, reported in the
// health probe.
const Version = "1.0.0"

// Health probes per-backend reachability and reports overall liveness.
func (o *Orchestrator) Health(ctx context.Context, now string) HealthStatus {
	services := map[string]string{"api": "ok"}

	if _, err := o.adapters.PaaS.ListProjects(ctx); err != nil {
		services["paas"] = "unreachable"
	} else {
		services["paas"] = "ok"
	}

	if _, err := o.adapters.DNS.ListRecords(ctx, o.baseDomain); err != nil {
		services["dns"] = "unreachable"
	} else {
		services["dns"] = "ok"
	}

	status := "ok"
	for _, v := range services {
		if v != "ok" {
			status = "degraded"
		}
	}

	return HealthStatus{
		Status:    status,
		Timestamp: now,
		Services:  services,
		Version:   Version,
	}
}
