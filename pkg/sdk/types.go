package addictiontube

// Story is one search hit. Title is "N/A" and Description is empty when the
// index holds no value for them.
type Story struct {
	ID          string
	Score       float64
	Title       string
	Description string
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
