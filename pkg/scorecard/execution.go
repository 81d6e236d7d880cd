package scorecard

import (
	"fmt"

	"github.com/modelkit/model-scorecard/pkg/inference"
	"github.com/modelkit/model-scorecard/pkg/precision"
	"github.com/modelkit/model-scorecard/pkg/scorecard/envvars"
)

// SupportMatrix maps each precision a model supports to the runtimes it
// supports at that precision. Omission of a precision means "not supported".
// Keys must be drawn from the canonical precision set.
type SupportMatrix map[precision.Precision][]inference.TargetRuntime

// Precisions returns the matrix's precisions in canonical declaration order.
// Map iteration order is randomized in Go, so enumeration must not range
// over the matrix directly.
func (m SupportMatrix) Precisions() []precision.Precision {
	var ordered []precision.Precision
	for _, p := range precision.All() {
		if _, ok := m[p]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// Supports reports whether the matrix lists the runtime at the precision.
func (m SupportMatrix) Supports(p precision.Precision, r inference.TargetRuntime) bool {
	for _, candidate := range m[p] {
		if candidate == r {
			return true
		}
	}
	return false
}

// orderedPrecisionSet deduplicates precisions while preserving first-insert
// order, keeping enumeration deterministic within a process run.
type orderedPrecisionSet struct {
	order []precision.Precision
	seen  map[precision.Precision]struct{}
}

func newOrderedPrecisionSet() *orderedPrecisionSet {
	return &orderedPrecisionSet{seen: make(map[precision.Precision]struct{})}
}

func (s *orderedPrecisionSet) add(p precision.Precision) {
	if _, ok := s.seen[p]; ok {
		return
	}
	s.seen[p] = struct{}{}
	s.order = append(s.order, p)
}

func (s *orderedPrecisionSet) remove(p precision.Precision) {
	if _, ok := s.seen[p]; !ok {
		return
	}
	delete(s.seen, p)
	for i, candidate := range s.order {
		if candidate == p {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func containsCanonical(ps []precision.Precision, p precision.Precision) bool {
	for _, candidate := range ps {
		if candidate == p {
			return true
		}
	}
	return false
}

// GetModelTestPrecisions returns the precisions to test for a model in this
// environment.
//
// The model's declared supported precisions seed the set under the DEFAULT
// and DEFAULT_MINUS_FLOAT special settings; DEFAULT_QUANTIZED and BENCH add
// their selections on top. Literal environment overrides are unioned in: all
// of them when the model can use a quantize job, otherwise only the ones the
// model declares support for.
func GetModelTestPrecisions(modelID string, modelSupported []precision.Precision, canUseQuantizeJob bool) ([]precision.Precision, error) {
	special, literals, err := envvars.EnabledPrecisions()
	if err != nil {
		return nil, err
	}

	enabled := newOrderedPrecisionSet()
	if special == envvars.SpecialDefault || special == envvars.SpecialDefaultMinusFloat {
		for _, p := range modelSupported {
			enabled.add(p)
		}
	}
	if special == envvars.SpecialDefaultMinusFloat {
		enabled.remove(precision.Float)
	}
	if special == envvars.SpecialDefaultQuantized {
		if containsCanonical(modelSupported, precision.W8A16) {
			enabled.add(precision.W8A16)
		} else {
			enabled.add(precision.W8A8)
		}
	}
	if special == envvars.SpecialBench {
		if containsCanonical(modelSupported, precision.Float) {
			enabled.add(precision.Float)
		}
		if containsCanonical(modelSupported, precision.W8A8) && IsBenchModel(modelID, precision.W8A8) {
			enabled.add(precision.W8A8)
		}
		if containsCanonical(modelSupported, precision.W8A16) && IsBenchModel(modelID, precision.W8A16) {
			enabled.add(precision.W8A16)
		}
	}

	if canUseQuantizeJob {
		// With quantize job support the model can run any requested
		// precision, even undeclared ones; the caller rejects truly
		// incompatible combinations later.
		for _, p := range literals {
			enabled.add(p)
		}
	} else {
		for _, p := range literals {
			if containsCanonical(modelSupported, p) {
				enabled.add(p)
			}
		}
	}

	return enabled.order, nil
}

// Parameterization is one independently executable (precision, path, device)
// triple of the test matrix.
type Parameterization struct {
	Precision precision.Precision
	Path      Path
	Device    *Device
}

// ParameterizationRequest carries a model's declarations and the consumer's
// mode selection into GetModelTestParameterizations.
type ParameterizationRequest struct {
	// ModelID identifies the model under test.
	ModelID string
	// SupportedPaths declares the (precision, runtime) pairs the model
	// supports.
	SupportedPaths SupportMatrix
	// TimeoutPaths declares (precision, runtime) pairs that time out. These
	// never run regardless of other settings.
	TimeoutPaths SupportMatrix
	// PathKind selects compile or profile paths.
	PathKind PathKind
	// CanUseQuantizeJob is whether the model can be quantized on demand; see
	// GetModelTestPrecisions.
	CanUseQuantizeJob bool
	// Devices restricts enumeration to an explicit device list. Nil means
	// all enabled non-mirror devices.
	Devices []*Device
	// IncludeUnsupportedPaths, when non-nil, overrides the
	// ignore-known-failures environment flag.
	IncludeUnsupportedPaths *bool
	// RequiresAOTPrepare keeps only AOT-compiled paths; by default only JIT
	// (compiled on-device) paths are kept.
	RequiresAOTPrepare bool
	// OnlyIncludeGenAIPaths keeps only GenAI-exclusive paths. Mutually
	// exclusive with RequiresAOTPrepare at call sites.
	OnlyIncludeGenAIPaths bool
}

// GetModelTestParameterizations enumerates the test matrix for a model.
//
// Each emitted triple is structurally compatible (path supports precision,
// device exposes path, device NPU supports precision), enabled in this
// environment, and compatible with the model's declarations. Triples are
// ordered: precisions outermost in resolution order, then paths in catalog
// order, then devices in catalog order. Each triple is generated at most
// once by construction.
func GetModelTestParameterizations(req ParameterizationRequest) ([]Parameterization, error) {
	includeUnsupported := envvars.IgnoreKnownFailures()
	if req.IncludeUnsupportedPaths != nil {
		includeUnsupported = *req.IncludeUnsupportedPaths
	}

	testPrecisions, err := GetModelTestPrecisions(req.ModelID, req.SupportedPaths.Precisions(), req.CanUseQuantizeJob)
	if err != nil {
		return nil, err
	}

	var ret []Parameterization
	for _, prec := range testPrecisions {
		prec := prec
		paths := AllPaths(req.PathKind, PathFilter{
			EnabledOnly:  true,
			Precision:    &prec,
			IncludeGenAI: req.OnlyIncludeGenAIPaths,
		})

		// The GenAI / AOT / JIT filters are mutually exclusive by
		// construction of call sites, never combined.
		var filtered []Path
		for _, path := range paths {
			switch {
			case req.OnlyIncludeGenAIPaths:
				if !path.Runtime().IsExclusivelyForGenAI() {
					continue
				}
			case req.RequiresAOTPrepare:
				if !path.Runtime().IsAOTCompiled() {
					continue
				}
			default:
				if path.Runtime().IsAOTCompiled() {
					continue
				}
			}

			if !includeUnsupported && !req.SupportedPaths.Supports(prec, path.Runtime()) {
				continue
			}
			// Timeouts are never overridden, even when unsupported paths
			// are included.
			if req.TimeoutPaths.Supports(prec, path.Runtime()) {
				continue
			}
			filtered = append(filtered, path)
		}

		devices := req.Devices
		if devices == nil {
			devices = AllDevices(DeviceFilter{Mirror: MirrorExclude})
		}

		for _, path := range filtered {
			for _, device := range devices {
				if !device.Enabled() || !device.NPUSupportsPrecision(prec) {
					continue
				}
				if !containsPath(device.PathsOfKind(path.Kind()), path) {
					continue
				}
				ret = append(ret, Parameterization{Precision: prec, Path: path, Device: device})
			}
		}
	}
	return ret, nil
}

// CompileParameterizations enumerates the compile-testing matrix for a model.
func CompileParameterizations(modelID string, supported, timeout SupportMatrix, canUseQuantizeJob, requiresAOTPrepare, onlyIncludeGenAIPaths bool) ([]Parameterization, error) {
	return GetModelTestParameterizations(ParameterizationRequest{
		ModelID:               modelID,
		SupportedPaths:        supported,
		TimeoutPaths:          timeout,
		PathKind:              CompilePath,
		CanUseQuantizeJob:     canUseQuantizeJob,
		RequiresAOTPrepare:    requiresAOTPrepare,
		OnlyIncludeGenAIPaths: onlyIncludeGenAIPaths,
	})
}

// ProfileParameterizations enumerates the profile-testing matrix for a model.
func ProfileParameterizations(modelID string, supported, timeout SupportMatrix, canUseQuantizeJob, requiresAOTPrepare bool) ([]Parameterization, error) {
	return GetModelTestParameterizations(ParameterizationRequest{
		ModelID:            modelID,
		SupportedPaths:     supported,
		TimeoutPaths:       timeout,
		PathKind:           ProfilePath,
		CanUseQuantizeJob:  canUseQuantizeJob,
		RequiresAOTPrepare: requiresAOTPrepare,
	})
}

// EvaluationParameterizations enumerates the numerical-evaluation matrix for
// a model, pinned to a single device.
//
// A nil device means DeviceUniversal. If the requested device is not among
// the enabled non-universal devices, a run scoped to exactly one enabled
// device substitutes that device; anything else is ambiguous and errors.
func EvaluationParameterizations(modelID string, supported, timeout SupportMatrix, canUseQuantizeJob bool, device *Device, requiresAOTPrepare bool) ([]Parameterization, error) {
	if device == nil {
		device = DeviceUniversal
	}

	var enabled []*Device
	for _, d := range AllDevices(DeviceFilter{EnabledOnly: true}) {
		if d != DeviceUniversal {
			enabled = append(enabled, d)
		}
	}
	if !containsDevice(enabled, device) {
		if len(enabled) == 1 {
			device = enabled[0]
		} else {
			return nil, fmt.Errorf(
				"when running numerical evaluation, must specify exactly one device or have %s as part of the device list",
				device)
		}
	}

	return GetModelTestParameterizations(ParameterizationRequest{
		ModelID:            modelID,
		SupportedPaths:     supported,
		TimeoutPaths:       timeout,
		PathKind:           ProfilePath,
		CanUseQuantizeJob:  canUseQuantizeJob,
		Devices:            []*Device{device},
		RequiresAOTPrepare: requiresAOTPrepare,
	})
}

// QuantizePrecisions returns the test precisions that involve quantized
// activations, i.e. the ones a quantize job must produce.
func QuantizePrecisions(modelID string, supported SupportMatrix, canUseQuantizeJob bool) ([]precision.Precision, error) {
	precisions, err := GetModelTestPrecisions(modelID, supported.Precisions(), canUseQuantizeJob)
	if err != nil {
		return nil, err
	}
	var quantized []precision.Precision
	for _, p := range precisions {
		if p.HasQuantizedActivations() {
			quantized = append(quantized, p)
		}
	}
	return quantized, nil
}

func containsDevice(devices []*Device, d *Device) bool {
	for _, candidate := range devices {
		if candidate == d {
			return true
		}
	}
	return false
}
