package scorecard

import (
	"fmt"

	"github.com/modelkit/model-scorecard/pkg/precision"
	"github.com/modelkit/model-scorecard/pkg/scorecard/envvars"
)

// Device is a target hardware entry in the device catalog. Devices are
// immutable rows loaded once at process start; identity comparison of
// *Device pointers is the intended equality.
type Device struct {
	name             string
	chipset          string
	enabledByDefault bool
	mirrorOf         *Device
	allPrecisions    bool
	npuPrecisions    map[precision.Precision]struct{}
	compilePaths     []Path
	profilePaths     []Path
}

// Name returns the device's catalog name.
func (d *Device) Name() string { return d.name }

// String implements Stringer.String for Device.
func (d *Device) String() string { return d.name }

// Chipset returns the device's chipset identifier.
func (d *Device) Chipset() string { return d.chipset }

// Enabled reports whether the device participates in this run. A device
// disabled in the catalog never appears regardless of other filters; an
// environment device override further narrows the enabled set.
func (d *Device) Enabled() bool {
	if !d.enabledByDefault {
		return false
	}
	names, set := envvars.EnabledDevices()
	if !set {
		return true
	}
	for _, name := range names {
		if name == d.name {
			return true
		}
	}
	return false
}

// IsMirror reports whether this device is an alias of another catalog
// device. Mirrors are excluded from default enumeration.
func (d *Device) IsMirror() bool { return d.mirrorOf != nil }

// MirrorOf returns the device this one mirrors, or nil.
func (d *Device) MirrorOf() *Device { return d.mirrorOf }

// NPUSupportsPrecision reports whether the device's NPU can execute the
// given precision.
func (d *Device) NPUSupportsPrecision(p precision.Precision) bool {
	if d.allPrecisions {
		return true
	}
	_, ok := d.npuPrecisions[p]
	return ok
}

// CompilePaths returns the compile paths this device exposes.
func (d *Device) CompilePaths() []Path { return d.compilePaths }

// ProfilePaths returns the profile paths this device exposes.
func (d *Device) ProfilePaths() []Path { return d.profilePaths }

// PathsOfKind returns the device's paths of the given kind.
func (d *Device) PathsOfKind(kind PathKind) []Path {
	if kind == ProfilePath {
		return d.profilePaths
	}
	return d.compilePaths
}

// SupportsCompilePath reports whether the device exposes the compile path.
func (d *Device) SupportsCompilePath(p Path) bool {
	return containsPath(d.compilePaths, p)
}

// SupportsProfilePath reports whether the device exposes the profile path.
func (d *Device) SupportsProfilePath(p Path) bool {
	return containsPath(d.profilePaths, p)
}

func containsPath(paths []Path, p Path) bool {
	for _, candidate := range paths {
		if candidate == p {
			return true
		}
	}
	return false
}

func precisionSet(ps ...precision.Precision) map[precision.Precision]struct{} {
	set := make(map[precision.Precision]struct{}, len(ps))
	for _, p := range ps {
		set[p] = struct{}{}
	}
	return set
}

// mustPaths resolves catalog path names, panicking on a typo in the static
// tables (a programming error, not user input).
func mustPaths(kind PathKind, names ...string) []Path {
	paths := make([]Path, 0, len(names))
	for _, name := range names {
		p, err := ParsePath(kind, name)
		if err != nil {
			panic(err)
		}
		paths = append(paths, p)
	}
	return paths
}

var (
	basePathNames  = []string{"tflite", "qnn_dlc", "qnn_context_binary", "onnx", "precompiled_qnn_onnx"}
	genAIPathNames = []string{"genie", "onnxruntime_genai"}
)

func withNames(names []string, extra ...string) []string {
	return append(append([]string(nil), names...), extra...)
}

// The device catalog. Registration order is the enumeration order surfaced
// to consumers.
var (
	// DeviceUniversal is the chipset-agnostic device used for compile jobs
	// and as the default numerical-evaluation target.
	DeviceUniversal = registerDevice(&Device{
		name:             "universal",
		chipset:          "universal",
		enabledByDefault: true,
		allPrecisions:    true,
		compilePaths:     mustPaths(CompilePath, withNames(basePathNames, append([]string{"onnx_fp16"}, genAIPathNames...)...)...),
		profilePaths:     mustPaths(ProfilePath, withNames(basePathNames, genAIPathNames...)...),
	})

	// Device8Gen2 is a previous-generation flagship phone. Its NPU predates
	// 4-bit weight support.
	Device8Gen2 = registerDevice(&Device{
		name:             "8_gen_2",
		chipset:          "sm8550",
		enabledByDefault: true,
		npuPrecisions: precisionSet(
			precision.Float, precision.W8A8, precision.W8A16, precision.W16A16,
			precision.W8A8MixedInt16, precision.W8A16MixedInt16,
			precision.W8A8MixedFP16, precision.W8A16MixedFP16,
		),
		compilePaths: mustPaths(CompilePath, withNames(basePathNames, "onnx_fp16")...),
		profilePaths: mustPaths(ProfilePath, basePathNames...),
	})

	// Device8Gen3 is a current-generation flagship phone.
	Device8Gen3 = registerDevice(&Device{
		name:             "8_gen_3",
		chipset:          "sm8650",
		enabledByDefault: true,
		allPrecisions:    true,
		compilePaths:     mustPaths(CompilePath, withNames(basePathNames, append([]string{"onnx_fp16"}, genAIPathNames...)...)...),
		profilePaths:     mustPaths(ProfilePath, withNames(basePathNames, genAIPathNames...)...),
	})

	// Device8Elite is the newest flagship phone.
	Device8Elite = registerDevice(&Device{
		name:             "8_elite",
		chipset:          "sm8750",
		enabledByDefault: true,
		allPrecisions:    true,
		compilePaths:     mustPaths(CompilePath, withNames(basePathNames, append([]string{"onnx_fp16"}, genAIPathNames...)...)...),
		profilePaths:     mustPaths(ProfilePath, withNames(basePathNames, genAIPathNames...)...),
	})

	// DeviceXElite is a Windows-on-ARM laptop; TFLite is not deployed there.
	DeviceXElite = registerDevice(&Device{
		name:             "x_elite",
		chipset:          "x1e80100",
		enabledByDefault: true,
		allPrecisions:    true,
		compilePaths: mustPaths(CompilePath,
			"qnn_dlc", "qnn_context_binary", "onnx", "onnx_fp16", "precompiled_qnn_onnx", "genie", "onnxruntime_genai"),
		profilePaths: mustPaths(ProfilePath,
			"qnn_dlc", "qnn_context_binary", "onnx", "precompiled_qnn_onnx", "genie", "onnxruntime_genai"),
	})

	// Device6490 is a mid-tier IoT platform. Its NPU runs 8-bit integer
	// graphs only; float stays on CPU/GPU, so float is not an NPU precision
	// here.
	Device6490 = registerDevice(&Device{
		name:             "6490",
		chipset:          "qcs6490",
		enabledByDefault: true,
		npuPrecisions:    precisionSet(precision.W8A8),
		compilePaths:     mustPaths(CompilePath, "tflite", "qnn_dlc", "qnn_context_binary"),
		profilePaths:     mustPaths(ProfilePath, "tflite", "qnn_dlc", "qnn_context_binary"),
	})

	// Device8Gen1 is retained for reference but no longer tested.
	Device8Gen1 = registerDevice(&Device{
		name:             "8_gen_1",
		chipset:          "sm8450",
		enabledByDefault: false,
		npuPrecisions: precisionSet(
			precision.Float, precision.W8A8, precision.W8A16,
		),
		compilePaths: mustPaths(CompilePath, basePathNames...),
		profilePaths: mustPaths(ProfilePath, basePathNames...),
	})

	// Device8Gen3Automotive is an automotive alias of Device8Gen3 with the
	// same silicon; excluded from default enumeration.
	Device8Gen3Automotive = registerMirror("8_gen_3_automotive", "sa8775p", Device8Gen3)
)

var deviceRegistry []*Device

func registerDevice(d *Device) *Device {
	deviceRegistry = append(deviceRegistry, d)
	return d
}

func registerMirror(name, chipset string, of *Device) *Device {
	return registerDevice(&Device{
		name:             name,
		chipset:          chipset,
		enabledByDefault: of.enabledByDefault,
		mirrorOf:         of,
		allPrecisions:    of.allPrecisions,
		npuPrecisions:    of.npuPrecisions,
		compilePaths:     of.compilePaths,
		profilePaths:     of.profilePaths,
	})
}

// RegisteredDevices returns every catalog device in registration order,
// including disabled devices and mirrors.
func RegisteredDevices() []*Device {
	return deviceRegistry
}

// MirrorFilter is the tri-state mirror axis of DeviceFilter.
type MirrorFilter uint8

const (
	// MirrorAny includes both mirrors and non-mirrors.
	MirrorAny MirrorFilter = iota
	// MirrorExclude excludes mirror devices (the resolver's default).
	MirrorExclude
	// MirrorOnly includes only mirror devices.
	MirrorOnly
)

// DeviceFilter selects devices in AllDevices. Nil/zero axes mean "don't
// filter on this axis".
type DeviceFilter struct {
	// EnabledOnly keeps only devices enabled in the current environment.
	EnabledOnly bool
	// NPUPrecision keeps only devices whose NPU supports the precision.
	NPUPrecision *precision.Precision
	// CompilePath keeps only devices exposing the compile path.
	CompilePath *Path
	// ProfilePath keeps only devices exposing the profile path.
	ProfilePath *Path
	// Mirror selects mirrors, non-mirrors, or both.
	Mirror MirrorFilter
}

// AllDevices returns the catalog devices matching every filter axis, in
// registration order.
func AllDevices(filter DeviceFilter) []*Device {
	var devices []*Device
	for _, d := range deviceRegistry {
		if filter.EnabledOnly && !d.Enabled() {
			continue
		}
		if filter.Mirror == MirrorExclude && d.IsMirror() {
			continue
		}
		if filter.Mirror == MirrorOnly && !d.IsMirror() {
			continue
		}
		if filter.NPUPrecision != nil && !d.NPUSupportsPrecision(*filter.NPUPrecision) {
			continue
		}
		if filter.CompilePath != nil && !d.SupportsCompilePath(*filter.CompilePath) {
			continue
		}
		if filter.ProfilePath != nil && !d.SupportsProfilePath(*filter.ProfilePath) {
			continue
		}
		devices = append(devices, d)
	}
	return devices
}

// ParseDevice looks a device up by its catalog name.
func ParseDevice(name string) (*Device, error) {
	for _, d := range deviceRegistry {
		if d.name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("unknown device %q", name)
}
