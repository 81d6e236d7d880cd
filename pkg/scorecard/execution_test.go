package scorecard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelkit/model-scorecard/pkg/inference"
	"github.com/modelkit/model-scorecard/pkg/precision"
	"github.com/modelkit/model-scorecard/pkg/scorecard/envvars"
)

// clearOverrides pins every scorecard environment override to its unset
// default for the duration of the test.
func clearOverrides(t *testing.T) {
	t.Helper()
	t.Setenv(envvars.PrecisionsEnvVar, "")
	t.Setenv(envvars.PathsEnvVar, "")
	t.Setenv(envvars.DevicesEnvVar, "")
	t.Setenv(envvars.IgnoreKnownFailuresEnvVar, "")
}

func TestSupportMatrixPrecisionsOrder(t *testing.T) {
	m := SupportMatrix{
		precision.W8A16: {inference.RuntimeQNNDLC},
		precision.Float: {inference.RuntimeTFLite},
		precision.W8A8:  {inference.RuntimeTFLite},
	}
	want := []precision.Precision{precision.Float, precision.W8A8, precision.W8A16}
	for i := 0; i < 50; i++ {
		assert.Equal(t, want, m.Precisions())
	}
}

func TestGetModelTestPrecisionsDefault(t *testing.T) {
	clearOverrides(t)
	supported := []precision.Precision{precision.Float, precision.W8A8}
	got, err := GetModelTestPrecisions("mobilenet_v2", supported, false)
	require.NoError(t, err)
	assert.Equal(t, supported, got)
}

func TestGetModelTestPrecisionsDefaultMinusFloat(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.PrecisionsEnvVar, "DEFAULT_MINUS_FLOAT")
	got, err := GetModelTestPrecisions("mobilenet_v2",
		[]precision.Precision{precision.Float, precision.W8A8, precision.W8A16}, false)
	require.NoError(t, err)
	assert.Equal(t, []precision.Precision{precision.W8A8, precision.W8A16}, got)
}

func TestGetModelTestPrecisionsDefaultQuantized(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.PrecisionsEnvVar, "DEFAULT_QUANTIZED")

	got, err := GetModelTestPrecisions("mobilenet_v2",
		[]precision.Precision{precision.Float, precision.W8A16}, false)
	require.NoError(t, err)
	assert.Equal(t, []precision.Precision{precision.W8A16}, got)

	// w8a8 is the fallback when the model does not declare w8a16.
	got, err = GetModelTestPrecisions("mobilenet_v2",
		[]precision.Precision{precision.Float}, false)
	require.NoError(t, err)
	assert.Equal(t, []precision.Precision{precision.W8A8}, got)
}

func TestGetModelTestPrecisionsBench(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.PrecisionsEnvVar, "BENCH")

	// mobilenet_v2 is on the w8a8 bench allow-list.
	got, err := GetModelTestPrecisions("mobilenet_v2",
		[]precision.Precision{precision.Float, precision.W8A8}, false)
	require.NoError(t, err)
	assert.Equal(t, []precision.Precision{precision.Float, precision.W8A8}, got)

	// whisper_base is allow-listed for w8a16 only.
	got, err = GetModelTestPrecisions("whisper_base",
		[]precision.Precision{precision.Float, precision.W8A8, precision.W8A16}, false)
	require.NoError(t, err)
	assert.Equal(t, []precision.Precision{precision.Float, precision.W8A16}, got)

	// A model on no allow-list benches float only, silently.
	got, err = GetModelTestPrecisions("not_a_bench_model",
		[]precision.Precision{precision.Float, precision.W8A8}, false)
	require.NoError(t, err)
	assert.Equal(t, []precision.Precision{precision.Float}, got)
}

func TestGetModelTestPrecisionsLiterals(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.PrecisionsEnvVar, "w8a8,w8a16")

	// Without quantize job support, literals intersect the model's
	// declarations.
	got, err := GetModelTestPrecisions("mobilenet_v2",
		[]precision.Precision{precision.Float, precision.W8A8}, false)
	require.NoError(t, err)
	assert.Equal(t, []precision.Precision{precision.W8A8}, got)

	// With quantize job support, every literal is testable.
	got, err = GetModelTestPrecisions("mobilenet_v2",
		[]precision.Precision{precision.Float, precision.W8A8}, true)
	require.NoError(t, err)
	assert.Equal(t, []precision.Precision{precision.W8A8, precision.W8A16}, got)
}

func TestGetModelTestPrecisionsSpecialConflict(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.PrecisionsEnvVar, "DEFAULT,BENCH")
	_, err := GetModelTestPrecisions("mobilenet_v2",
		[]precision.Precision{precision.Float}, false)
	var confErr *envvars.ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestParameterizationsSingleTriple(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.DevicesEnvVar, "8_gen_3")

	got, err := CompileParameterizations("mobilenet_v2",
		SupportMatrix{precision.W8A8: {inference.RuntimeTFLite}},
		nil, false, false, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, precision.W8A8, got[0].Precision)
	assert.Equal(t, "tflite", got[0].Path.Name())
	assert.Same(t, Device8Gen3, got[0].Device)
}

func TestParameterizationsTimeoutBeatsIncludeUnsupported(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.PathsEnvVar, "tflite")
	t.Setenv(envvars.DevicesEnvVar, "8_gen_3")

	includeUnsupported := true
	got, err := GetModelTestParameterizations(ParameterizationRequest{
		ModelID:                 "mobilenet_v2",
		SupportedPaths:          SupportMatrix{precision.W8A8: {inference.RuntimeTFLite}},
		TimeoutPaths:            SupportMatrix{precision.W8A8: {inference.RuntimeTFLite}},
		PathKind:                CompilePath,
		IncludeUnsupportedPaths: &includeUnsupported,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParameterizationsIgnoreKnownFailures(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.PathsEnvVar, "tflite,qnn_dlc")
	t.Setenv(envvars.DevicesEnvVar, "8_gen_3")
	t.Setenv(envvars.IgnoreKnownFailuresEnvVar, "1")

	// qnn_dlc is not declared supported, but the environment flag admits it.
	got, err := CompileParameterizations("mobilenet_v2",
		SupportMatrix{precision.W8A8: {inference.RuntimeTFLite}},
		nil, false, false, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "tflite", got[0].Path.Name())
	assert.Equal(t, "qnn_dlc", got[1].Path.Name())
}

func TestParameterizationsExcludeDisabledAndMirrors(t *testing.T) {
	clearOverrides(t)

	supported := SupportMatrix{}
	for _, p := range precision.All() {
		supported[p] = inference.Runtimes()
	}
	got, err := CompileParameterizations("mobilenet_v2", supported, nil, false, false, false)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, param := range got {
		assert.NotSame(t, Device8Gen1, param.Device, "catalog-disabled device enumerated")
		assert.NotSame(t, Device8Gen3Automotive, param.Device, "mirror device enumerated")
	}
}

func TestParameterizationsAOTFilter(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.DevicesEnvVar, "8_gen_3")

	supported := SupportMatrix{
		precision.Float: {inference.RuntimeTFLite, inference.RuntimeQNNContextBinary, inference.RuntimePrecompiledQNNONNX},
	}

	// Default mode keeps only JIT paths.
	got, err := CompileParameterizations("mobilenet_v2", supported, nil, false, false, false)
	require.NoError(t, err)
	for _, param := range got {
		assert.False(t, param.Path.Runtime().IsAOTCompiled(), "JIT mode emitted AOT path %s", param.Path)
	}

	// AOT-prepare mode keeps only AOT paths.
	got, err = CompileParameterizations("mobilenet_v2", supported, nil, false, true, false)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, param := range got {
		assert.True(t, param.Path.Runtime().IsAOTCompiled(), "AOT mode emitted JIT path %s", param.Path)
	}
}

func TestParameterizationsGenAIFilter(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.DevicesEnvVar, "8_gen_3")

	supported := SupportMatrix{
		precision.Float: {inference.RuntimeGenie, inference.RuntimeTFLite},
	}
	got, err := CompileParameterizations("mobilenet_v2", supported, nil, false, false, true)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, param := range got {
		assert.True(t, param.Path.Runtime().IsExclusivelyForGenAI(), "GenAI mode emitted path %s", param.Path)
	}
}

func TestEvaluationParameterizations(t *testing.T) {
	clearOverrides(t)

	supported := SupportMatrix{precision.W8A8: {inference.RuntimeTFLite}}

	// An explicitly pinned enabled device is honored.
	got, err := EvaluationParameterizations("mobilenet_v2", supported, nil, false, Device8Gen3, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Same(t, Device8Gen3, got[0].Device)

	// With several devices enabled, defaulting to the universal device is
	// ambiguous.
	_, err = EvaluationParameterizations("mobilenet_v2", supported, nil, false, nil, false)
	require.Error(t, err)

	// Scoped to a single enabled device, the default substitutes it.
	t.Setenv(envvars.DevicesEnvVar, "8_gen_3")
	got, err = EvaluationParameterizations("mobilenet_v2", supported, nil, false, nil, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Same(t, Device8Gen3, got[0].Device)
}

func TestQuantizePrecisions(t *testing.T) {
	clearOverrides(t)

	supported := SupportMatrix{
		precision.Float:         {inference.RuntimeTFLite},
		precision.W8A8:          {inference.RuntimeTFLite},
		precision.W8A8MixedFP16: {inference.RuntimeQNNDLC},
	}
	got, err := QuantizePrecisions("mobilenet_v2", supported, false)
	require.NoError(t, err)
	assert.Equal(t, []precision.Precision{precision.W8A8, precision.W8A8MixedFP16}, got)
}

func TestIsBenchModel(t *testing.T) {
	ResetBenchModels()
	assert.True(t, IsBenchModel("mobilenet_v2", precision.W8A8))
	assert.False(t, IsBenchModel("mobilenet_v2", precision.W8A16))
	assert.True(t, IsBenchModel("whisper_base", precision.W8A16))
	assert.False(t, IsBenchModel("not_a_bench_model", precision.W8A8))
	assert.False(t, IsBenchModel("mobilenet_v2", precision.Float))
}

func TestJobCacheName(t *testing.T) {
	tests := []struct {
		name      string
		precision precision.Precision
		pathName  string
		device    *Device
		component string
		want      string
	}{
		{"float universal", precision.Float, "", nil, "", "mobilenet_v2"},
		{"float with path", precision.Float, "tflite", DeviceUniversal, "", "mobilenet_v2_tflite"},
		{"quantized", precision.W8A8, "qnn_dlc", Device8Gen3, "", "mobilenet_v2_w8a8_qnn_dlc-8_gen_3"},
		{"component", precision.W8A16, "onnx", Device8Elite, "decoder", "mobilenet_v2_w8a16_onnx-8_elite_decoder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JobCacheName("mobilenet_v2", tt.precision, tt.pathName, tt.device, tt.component)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForEachPathAndDevice(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.DevicesEnvVar, "8_gen_3")

	// Nil precisions means float only.
	var seen []Parameterization
	ForEachPathAndDevice(ProfilePath, nil, IterationOptions{}, func(p precision.Precision, path Path, d *Device) {
		seen = append(seen, Parameterization{Precision: p, Path: path, Device: d})
	})
	require.NotEmpty(t, seen)
	for _, param := range seen {
		assert.Equal(t, precision.Float, param.Precision)
		assert.Same(t, Device8Gen3, param.Device)
		assert.False(t, param.Path.Runtime().IsExclusivelyForGenAI())
	}

	// Path and device exclusions apply on top of structural filters.
	tflite, err := ParsePath(ProfilePath, "tflite")
	require.NoError(t, err)
	seen = nil
	ForEachPathAndDevice(ProfilePath, []precision.Precision{precision.W8A8}, IterationOptions{
		ExcludePaths:   []Path{tflite},
		ExcludeDevices: []*Device{Device8Gen3},
	}, func(p precision.Precision, path Path, d *Device) {
		seen = append(seen, Parameterization{Precision: p, Path: path, Device: d})
	})
	assert.Empty(t, seen)
}

func TestGetModelTestPrecisionsBadLiteral(t *testing.T) {
	clearOverrides(t)
	t.Setenv(envvars.PrecisionsEnvVar, "w8a9")
	_, err := GetModelTestPrecisions("mobilenet_v2", []precision.Precision{precision.Float}, false)
	var parseErr *precision.ParseError
	require.True(t, errors.As(err, &parseErr))
}
