package inference

import (
	"fmt"

	"github.com/modelkit/model-scorecard/pkg/precision"
	"github.com/modelkit/model-scorecard/pkg/toolchain"
)

// TargetRuntime is a deployable on-device execution backend/format.
type TargetRuntime uint8

const (
	// RuntimeTFLite is the TensorFlow Lite (LiteRT) flatbuffer format.
	RuntimeTFLite TargetRuntime = iota
	// RuntimeQNNDLC is the device-agnostic NPU graph IR, compiled on-device.
	RuntimeQNNDLC
	// RuntimeQNNContextBinary is the device-specific precompiled NPU binary.
	RuntimeQNNContextBinary
	// RuntimeONNX is the ONNX Runtime format, compiled on-device.
	RuntimeONNX
	// RuntimePrecompiledQNNONNX is an NPU context binary embedded within an
	// ONNX file.
	RuntimePrecompiledQNNONNX
	// RuntimeGenie is the generative-AI inference extensions bundle.
	RuntimeGenie
	// RuntimeONNXRuntimeGenAI is the ONNX Runtime GenAI bundle.
	RuntimeONNXRuntimeGenAI
)

// Runtimes returns every target runtime in declaration order.
func Runtimes() []TargetRuntime {
	return []TargetRuntime{
		RuntimeTFLite,
		RuntimeQNNDLC,
		RuntimeQNNContextBinary,
		RuntimeONNX,
		RuntimePrecompiledQNNONNX,
		RuntimeGenie,
		RuntimeONNXRuntimeGenAI,
	}
}

// String implements Stringer.String for TargetRuntime.
func (r TargetRuntime) String() string {
	switch r {
	case RuntimeTFLite:
		return "tflite"
	case RuntimeQNNDLC:
		return "qnn_dlc"
	case RuntimeQNNContextBinary:
		return "qnn_context_binary"
	case RuntimeONNX:
		return "onnx"
	case RuntimePrecompiledQNNONNX:
		return "precompiled_qnn_onnx"
	case RuntimeGenie:
		return "genie"
	case RuntimeONNXRuntimeGenAI:
		return "onnxruntime_genai"
	default:
		panic("unhandled target runtime")
	}
}

// ParseRuntime looks a runtime up by its string name.
func ParseRuntime(name string) (TargetRuntime, error) {
	for _, r := range Runtimes() {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown target runtime %q", name)
}

// Engine returns the inference engine family that executes this runtime.
// Every runtime maps to exactly one engine.
func (r TargetRuntime) Engine() Engine {
	switch r {
	case RuntimeTFLite:
		return EngineTFLite
	case RuntimeQNNDLC, RuntimeQNNContextBinary, RuntimeGenie:
		return EngineQNN
	case RuntimeONNX, RuntimePrecompiledQNNONNX, RuntimeONNXRuntimeGenAI:
		return EngineONNX
	default:
		panic("unhandled target runtime")
	}
}

// FileExtension is the file extension (without the dot) assets for this
// runtime use.
func (r TargetRuntime) FileExtension() string {
	switch r {
	case RuntimeTFLite:
		return "tflite"
	case RuntimeQNNDLC:
		return "dlc"
	case RuntimeQNNContextBinary:
		return "bin"
	case RuntimeONNX, RuntimePrecompiledQNNONNX:
		return "onnx.zip"
	case RuntimeGenie:
		return "genie.zip"
	case RuntimeONNXRuntimeGenAI:
		return "onnxruntime_genai.zip"
	default:
		panic("unhandled target runtime")
	}
}

// IsAOTCompiled returns true if this asset is fully compiled ahead of time,
// meaning the deployable artifact already contains a device-specific context
// binary. Non-AOT runtimes compile on-device (JIT).
func (r TargetRuntime) IsAOTCompiled() bool {
	switch r {
	case RuntimeQNNContextBinary, RuntimePrecompiledQNNONNX, RuntimeGenie, RuntimeONNXRuntimeGenAI:
		return true
	default:
		return false
	}
}

// IsExclusivelyForGenAI returns true if this runtime is only usable for
// generative-model execution paths.
func (r TargetRuntime) IsExclusivelyForGenAI() bool {
	return r == RuntimeGenie || r == RuntimeONNXRuntimeGenAI
}

// SupportsPrecision reports whether this runtime can execute a graph in the
// given precision. Float is always supported; the quantized allow-list
// depends on the inference engine family.
func (r TargetRuntime) SupportsPrecision(p precision.Precision) bool {
	if p == precision.Float {
		return true
	}

	switch r {
	case RuntimeTFLite:
		return p == precision.W8A8
	case RuntimeONNX:
		return containsPrecision(p,
			precision.W8A8, precision.W8A16,
			// Enabled tentatively (not experimentally verified).
			precision.W16A16, precision.W4A16, precision.W4,
			// Mixed-precision profiles.
			precision.W8A8MixedInt16, precision.W8A16MixedInt16,
			precision.W8A8MixedFP16, precision.W8A16MixedFP16,
		)
	case RuntimeQNNDLC, RuntimeQNNContextBinary,
		// The following carry an embedded NPU context binary, so they
		// support the same precision set as the NPU paths.
		RuntimePrecompiledQNNONNX, RuntimeGenie, RuntimeONNXRuntimeGenAI:
		return containsPrecision(p,
			precision.W8A8, precision.W8A16, precision.W4A16, precision.W4, precision.W16A16,
			// Mixed-precision profiles.
			precision.W8A8MixedInt16, precision.W8A16MixedInt16,
			precision.W8A8MixedFP16, precision.W8A16MixedFP16,
		)
	default:
		panic("unhandled target runtime")
	}
}

// DefaultToolchainVersion is the toolchain version this runtime compiles
// with by default. This can differ from the engine default.
func (r TargetRuntime) DefaultToolchainVersion() toolchain.Version {
	if r == RuntimeGenie {
		return toolchain.MustParse("2.37")
	}
	return r.Engine().DefaultToolchainVersion()
}

func containsPrecision(p precision.Precision, set ...precision.Precision) bool {
	for _, candidate := range set {
		if p == candidate {
			return true
		}
	}
	return false
}
