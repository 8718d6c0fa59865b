package config

import "github.com/sprl-go/sprl/selfplay"

// IterationConfig is the JSON shape of one IterationOptions block in
// selfPlayOptions.json, mirroring original_source's SelfPlayOptions.hpp.
type IterationConfig struct {
	NumGamesPerWorker int `json:"numGamesPerWorker"`
	UCTTraversals     int `json:"uctTraversals"`
	MaxBatchSize      int `json:"maxBatchSize"`
	MaxQueueSize      int `json:"maxQueueSize"`

	SymmetrizeData    bool    `json:"symmetrizeData"`
	FastPlayoutProb   float32 `json:"fastPlayoutProb"`
	FastPlayoutFactor float32 `json:"fastPlayoutFactor"`

	PolicyTargetPruning bool `json:"policyTargetPruning"`
	ForcedPlayouts      bool `json:"forcedPlayouts"`

	EarlyGameCutoff int     `json:"earlyGameCutoff"`
	EarlyGameExp    float32 `json:"earlyGameExp"`
	RestGameExp     float32 `json:"restGameExp"`
}

// DefaultIterationConfig mirrors selfplay.DefaultOptions' values plus the
// worker-sizing fields that selfplay.Options itself doesn't carry.
func DefaultIterationConfig() IterationConfig {
	return IterationConfig{
		NumGamesPerWorker:   100,
		UCTTraversals:       200,
		MaxBatchSize:        8,
		MaxQueueSize:        8,
		SymmetrizeData:      true,
		FastPlayoutProb:     0,
		FastPlayoutFactor:   1,
		PolicyTargetPruning: false,
		ForcedPlayouts:      false,
		EarlyGameCutoff:     15,
		EarlyGameExp:        0.98,
		RestGameExp:         10.0,
	}
}

// IsValid reports whether the config's ranges make sense.
func (c IterationConfig) IsValid() bool {
	return c.NumGamesPerWorker >= 1 &&
		c.UCTTraversals >= 1 &&
		c.MaxBatchSize >= 1 &&
		c.MaxQueueSize >= 1 &&
		c.FastPlayoutProb >= 0 && c.FastPlayoutProb <= 1 &&
		c.FastPlayoutFactor >= 0 && c.FastPlayoutFactor <= 1 &&
		c.EarlyGameCutoff >= 0
}

// ToOptions converts the JSON config into a selfplay.Options.
func (c IterationConfig) ToOptions() selfplay.Options {
	return selfplay.Options{
		UCTTraversals:       c.UCTTraversals,
		SymmetrizeData:      c.SymmetrizeData,
		FastPlayoutProb:     c.FastPlayoutProb,
		FastPlayoutFactor:   c.FastPlayoutFactor,
		PolicyTargetPruning: c.PolicyTargetPruning,
		ForcedPlayouts:      c.ForcedPlayouts,
		EarlyGameCutoff:     c.EarlyGameCutoff,
		EarlyGameExp:        c.EarlyGameExp,
		RestGameExp:         c.RestGameExp,
	}
}

// WorkerConfig is the JSON shape of selfPlayOptions.json: the top-level
// self-play worker configuration, mirroring original_source's
// WorkerOptions.
type WorkerConfig struct {
	ModelName    string `json:"modelName"`
	ModelVariant string `json:"modelVariant"`

	NumGroups      int `json:"numGroups"`
	NumWorkerTasks int `json:"numWorkerTasks"`
	NumIters       int `json:"numIters"`

	InitIterationOptions IterationConfig `json:"initIterationOptions"`
	IterationOptions     IterationConfig `json:"iterationOptions"`
}

// RunName is "<ModelName>_<ModelVariant>" (with "base" standing in for an
// empty ModelVariant), the run-identifying string used to build model and
// save-directory paths.
func (c WorkerConfig) RunName() string {
	variant := c.ModelVariant
	if variant == "" {
		variant = "base"
	}
	return c.ModelName + "_" + variant
}

// IsValid reports whether both iteration-option blocks and the worker
// sizing fields are sensible.
func (c WorkerConfig) IsValid() bool {
	return c.ModelName != "" &&
		c.NumGroups >= 1 &&
		c.NumWorkerTasks >= 1 &&
		c.NumIters >= 1 &&
		c.InitIterationOptions.IsValid() &&
		c.IterationOptions.IsValid()
}
