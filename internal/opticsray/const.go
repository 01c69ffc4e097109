package opticsray

// Defaults used when the scene config leaves a field empty.
const (
	TMin              = 1e-6 // closest accepted hit distance, also rejects self-hits right after a refraction
	TMax              = 1e5
	MaxDepth          = 64 // refraction chain cap, deeper rays are lost
	SamplingRate      = 0.01
	MissedRayLength   = 5.0
	CircleResolution  = 50
	PointCrossSize    = 0.01
	GIFDelay          = 10 // 100ths of a second per frame
	Seed              = 1
	Workers           = 1
	DefaultConfigPath = "scenes/config.json"

	// hot-loop constants
	parallelEps = 1e-12 // |d·n| below this is treated as parallel
	boundaryEps = 1e-12 // relative slack on inclusive boundary tests
)
