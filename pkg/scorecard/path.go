// Package scorecard enumerates the (precision, path, device) test matrix for
// a model: which quantization precisions to exercise, on which runtime paths,
// against which catalog devices, after applying environment overrides and
// model exclusion lists.
package scorecard

import (
	"fmt"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/modelkit/model-scorecard/pkg/inference"
	"github.com/modelkit/model-scorecard/pkg/precision"
	"github.com/modelkit/model-scorecard/pkg/scorecard/envvars"
)

// PathKind discriminates compile-testing paths from profile-testing paths.
type PathKind uint8

const (
	// CompilePath identifies compile-testing scorecard paths.
	CompilePath PathKind = iota
	// ProfilePath identifies profile-testing scorecard paths.
	ProfilePath
)

// String implements Stringer.String for PathKind.
func (k PathKind) String() string {
	switch k {
	case CompilePath:
		return "compile"
	case ProfilePath:
		return "profile"
	default:
		return "unknown"
	}
}

// Path is a runtime variant used for compile testing or profile testing.
// Paths are immutable values drawn from the fixed catalogs below; most map
// one-to-one onto a target runtime, but float-only variants (onnx_fp16)
// narrow the runtime's precision support.
type Path struct {
	kind         PathKind
	name         string
	runtime      inference.TargetRuntime
	floatOnly    bool
	extraOptions string
}

// Kind returns whether this is a compile or profile path.
func (p Path) Kind() PathKind { return p.kind }

// Name returns the path's catalog name.
func (p Path) Name() string { return p.name }

// String implements Stringer.String for Path.
func (p Path) String() string { return p.name }

// Runtime returns the target runtime this path compiles or profiles for.
func (p Path) Runtime() inference.TargetRuntime { return p.runtime }

// Enabled reports whether this path is enabled in the current environment.
// The path override list may name either paths or runtimes.
func (p Path) Enabled() bool {
	names, set := envvars.EnabledPaths()
	if !set {
		return true
	}
	for _, name := range names {
		if name == p.name || name == p.runtime.String() {
			return true
		}
	}
	return false
}

// SupportsPrecision reports whether this path can carry the given precision.
func (p Path) SupportsPrecision(prec precision.Precision) bool {
	if p.floatOnly {
		return prec == precision.Float
	}
	return p.runtime.SupportsPrecision(prec)
}

// ExtraOptions returns the extra job options this path submits with.
func (p Path) ExtraOptions() string { return p.extraOptions }

// ExtraOptionArgs splits ExtraOptions into argv form.
func (p Path) ExtraOptionArgs() ([]string, error) {
	if p.extraOptions == "" {
		return nil, nil
	}
	return shellwords.Parse(p.extraOptions)
}

// compilePaths and profilePaths are the path catalogs. Declaration order is
// the enumeration order surfaced to consumers.
var compilePaths = []Path{
	{kind: CompilePath, name: "tflite", runtime: inference.RuntimeTFLite},
	{kind: CompilePath, name: "qnn_dlc", runtime: inference.RuntimeQNNDLC},
	{kind: CompilePath, name: "qnn_context_binary", runtime: inference.RuntimeQNNContextBinary},
	{kind: CompilePath, name: "onnx", runtime: inference.RuntimeONNX},
	{kind: CompilePath, name: "onnx_fp16", runtime: inference.RuntimeONNX, floatOnly: true,
		extraOptions: "--quantize_full_type float16 --quantize_io"},
	{kind: CompilePath, name: "precompiled_qnn_onnx", runtime: inference.RuntimePrecompiledQNNONNX},
	{kind: CompilePath, name: "genie", runtime: inference.RuntimeGenie},
	{kind: CompilePath, name: "onnxruntime_genai", runtime: inference.RuntimeONNXRuntimeGenAI},
}

var profilePaths = []Path{
	{kind: ProfilePath, name: "tflite", runtime: inference.RuntimeTFLite},
	{kind: ProfilePath, name: "qnn_dlc", runtime: inference.RuntimeQNNDLC},
	{kind: ProfilePath, name: "qnn_context_binary", runtime: inference.RuntimeQNNContextBinary},
	{kind: ProfilePath, name: "onnx", runtime: inference.RuntimeONNX},
	{kind: ProfilePath, name: "precompiled_qnn_onnx", runtime: inference.RuntimePrecompiledQNNONNX},
	{kind: ProfilePath, name: "genie", runtime: inference.RuntimeGenie},
	{kind: ProfilePath, name: "onnxruntime_genai", runtime: inference.RuntimeONNXRuntimeGenAI},
}

// CompilePaths returns the compile path catalog in declaration order.
func CompilePaths() []Path {
	return compilePaths
}

// ProfilePaths returns the profile path catalog in declaration order.
func ProfilePaths() []Path {
	return profilePaths
}

// PathFilter selects paths in AllPaths. Nil axes mean "don't filter".
type PathFilter struct {
	// EnabledOnly keeps only paths enabled in the current environment.
	EnabledOnly bool
	// Precision keeps only paths that support the given precision.
	Precision *precision.Precision
	// IncludeGenAI includes paths for GenAI-exclusive runtimes, which are
	// otherwise excluded from enumeration.
	IncludeGenAI bool
}

// AllPaths returns the paths of the given kind matching every filter axis,
// in catalog order.
func AllPaths(kind PathKind, filter PathFilter) []Path {
	catalog := compilePaths
	if kind == ProfilePath {
		catalog = profilePaths
	}

	var paths []Path
	for _, p := range catalog {
		if p.runtime.IsExclusivelyForGenAI() && !filter.IncludeGenAI {
			continue
		}
		if filter.EnabledOnly && !p.Enabled() {
			continue
		}
		if filter.Precision != nil && !p.SupportsPrecision(*filter.Precision) {
			continue
		}
		paths = append(paths, p)
	}
	return paths
}

// ParsePath looks a path of the given kind up by name.
func ParsePath(kind PathKind, name string) (Path, error) {
	catalog := compilePaths
	if kind == ProfilePath {
		catalog = profilePaths
	}
	for _, p := range catalog {
		if p.name == name {
			return p, nil
		}
	}
	return Path{}, fmt.Errorf("unknown %s path %q", kind, name)
}
