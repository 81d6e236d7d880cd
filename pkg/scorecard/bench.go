package scorecard

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/modelkit/model-scorecard/pkg/precision"
)

// The bench allow-lists name the model IDs eligible for quantized
// benchmarking under the BENCH special precision setting. One list per
// quantized precision; models absent from a list are silently skipped for
// that precision.

//go:embed bench_models_w8a8.txt
var benchModelsW8A8Raw string

//go:embed bench_models_w8a16.txt
var benchModelsW8A16Raw string

var (
	benchModelsOnce sync.Once
	benchModels     map[precision.Precision]map[string]struct{}
)

func loadBenchModels() {
	benchModelsOnce.Do(func() {
		benchModels = map[precision.Precision]map[string]struct{}{
			precision.W8A8:  parseModelList(benchModelsW8A8Raw),
			precision.W8A16: parseModelList(benchModelsW8A16Raw),
		}
	})
}

func parseModelList(raw string) map[string]struct{} {
	models := make(map[string]struct{})
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			models[line] = struct{}{}
		}
	}
	return models
}

// IsBenchModel reports whether the model is allow-listed for quantized
// benchmarking at the given precision. The lists are loaded at most once per
// process.
func IsBenchModel(modelID string, p precision.Precision) bool {
	loadBenchModels()
	_, ok := benchModels[p][modelID]
	return ok
}

// ResetBenchModels clears the bench allow-list cache. Intended for test
// isolation.
func ResetBenchModels() {
	benchModelsOnce = sync.Once{}
	benchModels = nil
}
