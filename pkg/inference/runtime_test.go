package inference

import (
	"testing"

	"github.com/modelkit/model-scorecard/pkg/precision"
)

func TestEngineMapping(t *testing.T) {
	tcs := []struct {
		runtime TargetRuntime
		engine  Engine
	}{
		{RuntimeTFLite, EngineTFLite},
		{RuntimeQNNDLC, EngineQNN},
		{RuntimeQNNContextBinary, EngineQNN},
		{RuntimeGenie, EngineQNN},
		{RuntimeONNX, EngineONNX},
		{RuntimePrecompiledQNNONNX, EngineONNX},
		{RuntimeONNXRuntimeGenAI, EngineONNX},
	}
	for _, tc := range tcs {
		if got := tc.runtime.Engine(); got != tc.engine {
			t.Errorf("%s.Engine() = %s, want %s", tc.runtime, got, tc.engine)
		}
	}
}

func TestFloatAlwaysSupported(t *testing.T) {
	for _, r := range Runtimes() {
		if !r.SupportsPrecision(precision.Float) {
			t.Errorf("%s must support float", r)
		}
	}
}

func TestSupportsPrecision(t *testing.T) {
	// TFLite supports exactly one quantized profile.
	for _, p := range precision.All() {
		want := p == precision.Float || p == precision.W8A8
		if got := RuntimeTFLite.SupportsPrecision(p); got != want {
			t.Errorf("tflite.SupportsPrecision(%s) = %v, want %v", p, got, want)
		}
	}

	// The NPU-backed runtimes support the full mixed-precision set.
	for _, r := range []TargetRuntime{RuntimeQNNDLC, RuntimeQNNContextBinary, RuntimePrecompiledQNNONNX, RuntimeGenie, RuntimeONNXRuntimeGenAI} {
		for _, p := range precision.All() {
			if !r.SupportsPrecision(p) {
				t.Errorf("%s.SupportsPrecision(%s) = false, want true", r, p)
			}
		}
	}

	// ONNX supports the full set too.
	for _, p := range precision.All() {
		if !RuntimeONNX.SupportsPrecision(p) {
			t.Errorf("onnx.SupportsPrecision(%s) = false, want true", p)
		}
	}
}

func TestAOTAndGenAISets(t *testing.T) {
	aot := map[TargetRuntime]bool{
		RuntimeQNNContextBinary:   true,
		RuntimePrecompiledQNNONNX: true,
		RuntimeGenie:              true,
		RuntimeONNXRuntimeGenAI:   true,
	}
	genai := map[TargetRuntime]bool{
		RuntimeGenie:            true,
		RuntimeONNXRuntimeGenAI: true,
	}
	for _, r := range Runtimes() {
		if got := r.IsAOTCompiled(); got != aot[r] {
			t.Errorf("%s.IsAOTCompiled() = %v, want %v", r, got, aot[r])
		}
		if got := r.IsExclusivelyForGenAI(); got != genai[r] {
			t.Errorf("%s.IsExclusivelyForGenAI() = %v, want %v", r, got, genai[r])
		}
	}
}

func TestDefaultToolchainVersions(t *testing.T) {
	if got := RuntimeGenie.DefaultToolchainVersion().APIVersion(); got != "2.37" {
		t.Errorf("genie default toolchain = %s, want 2.37", got)
	}
	if got := RuntimeONNX.DefaultToolchainVersion().APIVersion(); got != "2.37" {
		t.Errorf("onnx default toolchain = %s, want 2.37", got)
	}
	for _, r := range []TargetRuntime{RuntimeTFLite, RuntimeQNNDLC, RuntimeQNNContextBinary} {
		if got := r.DefaultToolchainVersion().APIVersion(); got != "2.39" {
			t.Errorf("%s default toolchain = %s, want 2.39", r, got)
		}
	}
}

func TestParseRuntime(t *testing.T) {
	for _, r := range Runtimes() {
		parsed, err := ParseRuntime(r.String())
		if err != nil {
			t.Fatalf("ParseRuntime(%q) failed: %v", r, err)
		}
		if parsed != r {
			t.Errorf("ParseRuntime(%q) = %s", r, parsed)
		}
	}
	if _, err := ParseRuntime("coreml"); err == nil {
		t.Error("ParseRuntime(coreml) succeeded, want error")
	}
}

func TestSupportedRelease(t *testing.T) {
	if EngineONNX.SupportedRelease() == nil {
		t.Fatal("onnx engine should pin a release")
	}
	if EngineQNN.SupportedRelease() != nil {
		t.Error("qnn engine should accept any release")
	}
	if !EngineONNX.SupportsRelease(EngineONNX.SupportedRelease()) {
		t.Error("pinned release should satisfy the pin")
	}
}
