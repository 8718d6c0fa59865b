package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadUCTConfigDecodesNestedOptionsAndValidates(t *testing.T) {
	path := writeTemp(t, "uctOptions.json", `{"virtualLoss": 3, "maxBatchSize": 16,
		"addNoise": true, "symmetrizeState": true,
		"nodeOptions": {"dirEps": 0.25, "dirAlpha": 0.3, "uWeight": 1.5,
			"initQMethod": "PARENT_NN_EVAL", "takeTrueQAvg": true}}`)

	cfg, err := LoadUCTConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, float32(1.5), cfg.NodeOptions.UWeight)
	assert.Equal(t, "PARENT_NN_EVAL", cfg.NodeOptions.InitQMethod)

	sc := cfg.ToSearchConfig()
	assert.Equal(t, float32(1.5), sc.PUCT)
	assert.True(t, sc.TrueQAvg)
}

func TestLoadUCTConfigRejectsUnknownField(t *testing.T) {
	path := writeTemp(t, "uctOptions.json", `{"virtualLoss": 1, "maxBatchSize": 8,
		"addNoise": true, "symmetrizeState": true,
		"nodeOptions": {"dirEps": 0.25, "dirAlpha": 0.2, "uWeight": 1.1,
			"initQMethod": "ZERO", "takeTrueQAvg": false}, "bogusField": 1}`)

	_, err := LoadUCTConfig(path)
	assert.Error(t, err)
}

func TestLoadUCTConfigRejectsUnknownNestedField(t *testing.T) {
	path := writeTemp(t, "uctOptions.json", `{"virtualLoss": 1, "maxBatchSize": 8,
		"addNoise": true, "symmetrizeState": true,
		"nodeOptions": {"dirEps": 0.25, "dirAlpha": 0.2, "uWeight": 1.1,
			"initQMethod": "ZERO", "takeTrueQAvg": false, "bogusField": 1}}`)

	_, err := LoadUCTConfig(path)
	assert.Error(t, err)
}

func TestLoadUCTConfigRejectsInvalidInitQMethod(t *testing.T) {
	path := writeTemp(t, "uctOptions.json", `{"virtualLoss": 1, "maxBatchSize": 8,
		"addNoise": true, "symmetrizeState": true,
		"nodeOptions": {"dirEps": 0.25, "dirAlpha": 0.2, "uWeight": 1.1,
			"initQMethod": "bogus", "takeTrueQAvg": false}}`)

	_, err := LoadUCTConfig(path)
	assert.Error(t, err)
}

func TestLoadWorkerConfigRoundTrips(t *testing.T) {
	path := writeTemp(t, "selfPlayOptions.json", `{
		"modelName": "go7run",
		"modelVariant": "v2",
		"numGroups": 2,
		"numWorkerTasks": 4,
		"numIters": 10,
		"initIterationOptions": {
			"numGamesPerWorker": 50, "uctTraversals": 100, "maxBatchSize": 8, "maxQueueSize": 8,
			"symmetrizeData": true, "fastPlayoutProb": 0, "fastPlayoutFactor": 1,
			"policyTargetPruning": false, "forcedPlayouts": false,
			"earlyGameCutoff": 15, "earlyGameExp": 0.98, "restGameExp": 10.0
		},
		"iterationOptions": {
			"numGamesPerWorker": 200, "uctTraversals": 200, "maxBatchSize": 8, "maxQueueSize": 8,
			"symmetrizeData": true, "fastPlayoutProb": 0.25, "fastPlayoutFactor": 0.5,
			"policyTargetPruning": true, "forcedPlayouts": true,
			"earlyGameCutoff": 15, "earlyGameExp": 0.98, "restGameExp": 10.0
		}
	}`)

	cfg, err := LoadWorkerConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "go7run_v2", cfg.RunName())
	assert.Equal(t, 200, cfg.IterationOptions.NumGamesPerWorker)

	opts := cfg.IterationOptions.ToOptions()
	assert.Equal(t, float32(0.98), opts.EarlyGameExp)
	assert.True(t, opts.PolicyTargetPruning)
	assert.True(t, opts.ForcedPlayouts)
}
