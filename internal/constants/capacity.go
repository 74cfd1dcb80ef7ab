package constants

const (
	// Rating bounds enforced by the input surface (flags and forms), not by the scorer.
	MinRating = 1
	MaxRating = 5
	// DefaultRating preselects the middle of the scale in the check-in form
	DefaultRating = 3

	// Day classification thresholds (inclusive upper bounds)
	SurvivalMax    = 3
	MaintenanceMax = 6
	ProgressMax    = 8

	// History reflection constants
	MinFrequencyRecords = 5  // below this no frequency pattern is claimed
	FrequencyWindow     = 10 // most recent records considered for frequency
	MinPatternRecords   = 6  // below this the grouper is not run

	// Pattern grouping constants
	PatternClusters  = 2
	KMeansRestarts   = 10
	KMeansSeed       = 42
	KMeansMaxIter    = 300
	KMeansTolerance  = 1e-4
	FeatureClientDay = 1.0
	FeatureSoloDay   = 0.0
)
