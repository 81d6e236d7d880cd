// Package inference declares the static capability tables for inference
// engines and the target runtimes built on them: which precisions each
// runtime supports, whether it is compiled ahead of time, and which
// toolchain version it defaults to.
package inference

import (
	semver "github.com/Masterminds/semver/v3"

	"github.com/modelkit/model-scorecard/pkg/toolchain"
)

// Engine is the inference engine family that executes a TargetRuntime asset.
type Engine uint8

const (
	// EngineTFLite is the TensorFlow Lite (LiteRT) engine.
	EngineTFLite Engine = iota
	// EngineQNN is the on-device NPU engine driven by the vendor toolchain.
	EngineQNN
	// EngineONNX is the ONNX Runtime engine.
	EngineONNX
)

// String implements Stringer.String for Engine.
func (e Engine) String() string {
	switch e {
	case EngineTFLite:
		return "tflite"
	case EngineQNN:
		return "qnn"
	case EngineONNX:
		return "onnx"
	default:
		panic("unhandled inference engine")
	}
}

// FullPackageName is the human-readable engine package name.
func (e Engine) FullPackageName() string {
	switch e {
	case EngineTFLite:
		return "TensorFlow Lite"
	case EngineQNN:
		return "QNN (NPU runtime)"
	case EngineONNX:
		return "ONNX Runtime"
	default:
		panic("unhandled inference engine")
	}
}

// onnxSupportedRelease pins the ONNX Runtime release this toolkit was tested
// against.
var onnxSupportedRelease = semver.MustParse("1.22.2")

// SupportedRelease returns the engine release this toolkit is pinned to, or
// nil if any release is supported.
func (e Engine) SupportedRelease() *semver.Version {
	if e == EngineONNX {
		return onnxSupportedRelease
	}
	return nil
}

// SupportsRelease reports whether an installed engine release satisfies the
// pin. Engines without a pin accept any release.
func (e Engine) SupportsRelease(release *semver.Version) bool {
	pinned := e.SupportedRelease()
	return pinned == nil || pinned.Equal(release)
}

// DefaultToolchainVersion is the toolchain version this engine pairs with by
// default. This can differ from the remote catalog's default.
func (e Engine) DefaultToolchainVersion() toolchain.Version {
	if e == EngineONNX {
		return toolchain.MustParse("2.37")
	}
	return toolchain.MustParse("2.39")
}
