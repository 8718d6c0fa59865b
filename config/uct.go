package config

import (
	"github.com/sprl-go/sprl/search"
)

// NodeOptions is the JSON shape of uctOptions.json's nested "nodeOptions"
// object, mirroring original_source's NodeOptions one-to-one.
type NodeOptions struct {
	DirEps   float32 `json:"dirEps"`
	DirAlpha float32 `json:"dirAlpha"`
	UWeight  float32 `json:"uWeight"`

	// InitQMethod is one of "ZERO", "PARENT_NN_EVAL", "PARENT_LIVE_Q".
	InitQMethod string `json:"initQMethod"`
	TrueQAvg    bool   `json:"takeTrueQAvg"`
}

// UCTConfig is the JSON shape of uctOptions.json, mirroring
// original_source's UCTOptions.hpp TreeOptions/NodeOptions one-to-one:
// addNoise and symmetrizeState sit at the top level, the rest nests under
// nodeOptions.
type UCTConfig struct {
	AddNoise        bool `json:"addNoise"`
	SymmetrizeState bool `json:"symmetrizeState"`

	NodeOptions NodeOptions `json:"nodeOptions"`

	// VirtualLoss and MaxBatchSize have no original_source counterpart:
	// the original engine's UCT tree ran single-threaded with no batch
	// evaluator to amortize, so they're this engine's own batching
	// knobs, kept at the top level alongside addNoise/symmetrizeState.
	VirtualLoss  float32 `json:"virtualLoss"`
	MaxBatchSize int     `json:"maxBatchSize"`
}

// DefaultUCTConfig mirrors search.DefaultConfig's values.
func DefaultUCTConfig() UCTConfig {
	return UCTConfig{
		AddNoise:        true,
		SymmetrizeState: true,
		NodeOptions: NodeOptions{
			DirEps:      0.25,
			DirAlpha:    0.2,
			UWeight:     1.1,
			InitQMethod: "ZERO",
			TrueQAvg:    false,
		},
		VirtualLoss:  1.0,
		MaxBatchSize: 8,
	}
}

// IsValid reports whether the config's numeric ranges make sense.
func (c UCTConfig) IsValid() bool {
	switch c.NodeOptions.InitQMethod {
	case "ZERO", "PARENT_NN_EVAL", "PARENT_LIVE_Q":
	default:
		return false
	}
	return c.NodeOptions.UWeight > 0 &&
		c.VirtualLoss >= 0 &&
		c.MaxBatchSize >= 1 &&
		c.NodeOptions.DirEps >= 0 && c.NodeOptions.DirEps <= 1 &&
		c.NodeOptions.DirAlpha > 0
}

// ToSearchConfig converts the JSON config into a search.Config.
func (c UCTConfig) ToSearchConfig() search.Config {
	method := search.ZeroQ
	switch c.NodeOptions.InitQMethod {
	case "PARENT_NN_EVAL":
		method = search.ParentNNEval
	case "PARENT_LIVE_Q":
		method = search.ParentLiveQ
	}
	return search.Config{
		PUCT:            c.NodeOptions.UWeight,
		VirtualLoss:     c.VirtualLoss,
		MaxBatchSize:    c.MaxBatchSize,
		AddNoise:        c.AddNoise,
		DirEps:          c.NodeOptions.DirEps,
		DirAlpha:        c.NodeOptions.DirAlpha,
		SymmetrizeState: c.SymmetrizeState,
		InitQMethod:     method,
		TrueQAvg:        c.NodeOptions.TrueQAvg,
	}
}
