package scorecard

import (
	"github.com/modelkit/model-scorecard/pkg/precision"
)

// JobCacheName builds the key under which an asynchronously-run scorecard
// job is stored.
//
// pathName is the scorecard path or runtime name, "" when not applicable;
// component names a model component, "" when the model has only one. The
// float precision and the universal device contribute no segment, keeping
// keys for the common case short.
func JobCacheName(modelID string, p precision.Precision, pathName string, device *Device, component string) string {
	name := modelID
	if p != precision.Float {
		name += "_" + p.String()
	}
	if pathName != "" {
		name += "_" + pathName
	}
	if device != nil && device != DeviceUniversal {
		name += "-" + device.Name()
	}
	if component != "" {
		name += "_" + component
	}
	return name
}
