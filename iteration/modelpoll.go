package iteration

import (
	"context"
	"fmt"
	"os"
	"time"
)

// ModelPathWaitInterval is how long WaitModelPath sleeps between checks for
// the traced model file.
const ModelPathWaitInterval = 30 * time.Second

// modelGrace is the pause after a model file first appears, giving the
// trainer's writer time to finish flushing it to disk before it's read.
const modelGrace = 5 * time.Second

// WaitModelPath blocks until the traced model file for iteration exists and
// returns its path, or "random" immediately if iteration is -1 (there is no
// prior iteration to wait on, so the seed evaluator is used). It returns
// early with ctx.Err() if ctx is canceled while waiting.
func WaitModelPath(ctx context.Context, runName string, iteration int) (string, error) {
	if iteration == -1 {
		return "random", nil
	}

	modelPath := fmt.Sprintf("data/models/%s/traced_%s_iteration_%d.pt", runName, runName, iteration)

	for {
		if _, err := os.Stat(modelPath); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(ModelPathWaitInterval):
		}
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(modelGrace):
	}
	return modelPath, nil
}
