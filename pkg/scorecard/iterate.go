package scorecard

import (
	"github.com/modelkit/model-scorecard/pkg/precision"
)

// IterationOptions narrows ForEachPathAndDevice. Nil lists mean "don't
// filter on this axis".
type IterationOptions struct {
	IncludePaths         []Path
	ExcludePaths         []Path
	IncludeDevices       []*Device
	ExcludeDevices       []*Device
	IncludeMirrorDevices bool
}

// ForEachPathAndDevice invokes fn for every enabled, structurally compatible
// (precision, path, device) combination of the given kind. Nil precisions
// means float only.
func ForEachPathAndDevice(kind PathKind, precisions []precision.Precision, opts IterationOptions, fn func(precision.Precision, Path, *Device)) {
	if precisions == nil {
		precisions = []precision.Precision{precision.Float}
	}

	mirror := MirrorExclude
	if opts.IncludeMirrorDevices {
		mirror = MirrorAny
	}

	for _, prec := range precisions {
		prec := prec
		for _, path := range AllPaths(kind, PathFilter{EnabledOnly: true, Precision: &prec}) {
			path := path
			if opts.IncludePaths != nil && !containsPath(opts.IncludePaths, path) {
				continue
			}
			if containsPath(opts.ExcludePaths, path) {
				continue
			}

			filter := DeviceFilter{
				EnabledOnly:  true,
				NPUPrecision: &prec,
				Mirror:       mirror,
			}
			if kind == CompilePath {
				filter.CompilePath = &path
			} else {
				filter.ProfilePath = &path
			}

			for _, device := range AllDevices(filter) {
				if opts.IncludeDevices != nil && !containsDevice(opts.IncludeDevices, device) {
					continue
				}
				if containsDevice(opts.ExcludeDevices, device) {
					continue
				}
				fn(prec, path, device)
			}
		}
	}
}
