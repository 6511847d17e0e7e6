package domain

// VectorConfig describes the embedding space the story index was built with.
type VectorConfig struct {
	Model          string
	Dimensions     int
	DistanceMetric string
}

// DefaultVectorConfig returns the configuration of the production story index
// (OpenAI text-embedding-ada-002, cosine).
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:          "text-embedding-ada-002",
		Dimensions:     1536,
		DistanceMetric: "cosine",
	}
}
