// Package envvars reads the environment-driven override lists that scope a
// scorecard run. Unset variables always mean "use defaults", never "enable
// nothing".
package envvars

import (
	"os"
	"strconv"
	"strings"

	"github.com/modelkit/model-scorecard/pkg/precision"
)

const (
	// PrecisionsEnvVar is a comma-separated list of precision strings, which
	// may include at most one special keyword (see SpecialPrecisionSetting).
	// Unset means DEFAULT: test each model's declared precisions.
	PrecisionsEnvVar = "SCORECARD_TEST_PRECISIONS"
	// PathsEnvVar is a comma-separated list of enabled scorecard path or
	// runtime names. Unset means all paths are enabled.
	PathsEnvVar = "SCORECARD_TEST_PATHS"
	// DevicesEnvVar is a comma-separated list of enabled device names. Unset
	// means all devices are enabled.
	DevicesEnvVar = "SCORECARD_TEST_DEVICES"
	// IgnoreKnownFailuresEnvVar enables paths a model declares unsupported
	// (known failures). Timeout exclusions are never overridden.
	IgnoreKnownFailuresEnvVar = "SCORECARD_IGNORE_KNOWN_FAILURES"
)

// SpecialPrecisionSetting is a global precision-selection mode keyword.
type SpecialPrecisionSetting uint8

const (
	// SpecialNone indicates no special keyword was configured.
	SpecialNone SpecialPrecisionSetting = iota
	// SpecialDefault tests each model's declared supported precisions.
	SpecialDefault
	// SpecialDefaultMinusFloat is SpecialDefault without float.
	SpecialDefaultMinusFloat
	// SpecialDefaultQuantized additionally tests one quantized precision per
	// model (w8a16 when supported, else w8a8).
	SpecialDefaultQuantized
	// SpecialBench selects the benchmarking precision set, gated on the
	// static bench allow-lists.
	SpecialBench
)

// String implements Stringer.String for SpecialPrecisionSetting.
func (s SpecialPrecisionSetting) String() string {
	switch s {
	case SpecialNone:
		return "NONE"
	case SpecialDefault:
		return "DEFAULT"
	case SpecialDefaultMinusFloat:
		return "DEFAULT_MINUS_FLOAT"
	case SpecialDefaultQuantized:
		return "DEFAULT_QUANTIZED"
	case SpecialBench:
		return "BENCH"
	default:
		return "UNKNOWN"
	}
}

func parseSpecial(token string) (SpecialPrecisionSetting, bool) {
	switch token {
	case "DEFAULT":
		return SpecialDefault, true
	case "DEFAULT_MINUS_FLOAT":
		return SpecialDefaultMinusFloat, true
	case "DEFAULT_QUANTIZED":
		return SpecialDefaultQuantized, true
	case "BENCH":
		return SpecialBench, true
	default:
		return SpecialNone, false
	}
}

// EnabledPrecisions reads the precision override list.
//
// It returns the active special setting (SpecialDefault when the variable is
// unset, SpecialNone when only literals are listed) and the literal
// precision overrides. Two different special keywords in one list are a
// *ConfigurationError; a malformed literal is a *precision.ParseError. Both
// fail fast.
func EnabledPrecisions() (SpecialPrecisionSetting, []precision.Precision, error) {
	raw := os.Getenv(PrecisionsEnvVar)
	if strings.TrimSpace(raw) == "" {
		return SpecialDefault, nil, nil
	}

	special := SpecialNone
	var literals []precision.Precision
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if s, ok := parseSpecial(token); ok {
			if special != SpecialNone && special != s {
				return SpecialNone, nil, &ConfigurationError{First: special, Second: s}
			}
			special = s
			continue
		}
		p, err := precision.Parse(token)
		if err != nil {
			return SpecialNone, nil, err
		}
		literals = append(literals, p)
	}
	return special, literals, nil
}

// EnabledPaths returns the enabled path-name override list. ok is false when
// the variable is unset, meaning all paths are enabled.
func EnabledPaths() (names []string, ok bool) {
	return commaList(PathsEnvVar)
}

// EnabledDevices returns the enabled device-name override list. ok is false
// when the variable is unset, meaning all devices are enabled.
func EnabledDevices() (names []string, ok bool) {
	return commaList(DevicesEnvVar)
}

// IgnoreKnownFailures reads the ignore-known-failures flag.
func IgnoreKnownFailures() bool {
	v, err := strconv.ParseBool(os.Getenv(IgnoreKnownFailuresEnvVar))
	return err == nil && v
}

func commaList(envVar string) ([]string, bool) {
	raw, set := os.LookupEnv(envVar)
	if !set || strings.TrimSpace(raw) == "" {
		return nil, false
	}
	var names []string
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			names = append(names, token)
		}
	}
	return names, true
}
