package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modelkit/model-scorecard/pkg/inference"
	"github.com/modelkit/model-scorecard/pkg/precision"
	"github.com/modelkit/model-scorecard/pkg/scorecard"
)

// parseSupportMatrix parses repeated "precision:runtime[+runtime...]" specs.
func parseSupportMatrix(specs []string) (scorecard.SupportMatrix, error) {
	matrix := make(scorecard.SupportMatrix, len(specs))
	for _, spec := range specs {
		precPart, runtimePart, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("invalid support spec %q, expected precision:runtime[+runtime...]", spec)
		}
		p, err := precision.Parse(precPart)
		if err != nil {
			return nil, err
		}
		var runtimes []inference.TargetRuntime
		for _, name := range strings.Split(runtimePart, "+") {
			r, err := inference.ParseRuntime(strings.TrimSpace(name))
			if err != nil {
				return nil, err
			}
			runtimes = append(runtimes, r)
		}
		matrix[p] = append(matrix[p], runtimes...)
	}
	return matrix, nil
}

func parsePathKind(kind string) (scorecard.PathKind, error) {
	switch kind {
	case "compile":
		return scorecard.CompilePath, nil
	case "profile":
		return scorecard.ProfilePath, nil
	default:
		return 0, fmt.Errorf("invalid path kind %q, expected compile or profile", kind)
	}
}

func newMatrixCmd() *cobra.Command {
	var (
		model              string
		supported          []string
		timeout            []string
		kind               string
		deviceNames        []string
		quantizeJob        bool
		aot                bool
		genai              bool
		includeUnsupported bool
		jsonFormat         bool
	)
	c := &cobra.Command{
		Use:   "matrix",
		Short: "Enumerate the (precision, path, device) test matrix for a model",
		RunE: func(cmd *cobra.Command, args []string) error {
			supportedMatrix, err := parseSupportMatrix(supported)
			if err != nil {
				return err
			}
			timeoutMatrix, err := parseSupportMatrix(timeout)
			if err != nil {
				return err
			}
			pathKind, err := parsePathKind(kind)
			if err != nil {
				return err
			}

			var devices []*scorecard.Device
			for _, name := range deviceNames {
				d, err := scorecard.ParseDevice(name)
				if err != nil {
					return err
				}
				devices = append(devices, d)
			}

			req := scorecard.ParameterizationRequest{
				ModelID:               model,
				SupportedPaths:        supportedMatrix,
				TimeoutPaths:          timeoutMatrix,
				PathKind:              pathKind,
				CanUseQuantizeJob:     quantizeJob,
				Devices:               devices,
				RequiresAOTPrepare:    aot,
				OnlyIncludeGenAIPaths: genai,
			}
			if cmd.Flags().Changed("include-unsupported") {
				req.IncludeUnsupportedPaths = &includeUnsupported
			}

			params, err := scorecard.GetModelTestParameterizations(req)
			if err != nil {
				return err
			}

			if jsonFormat {
				type row struct {
					Precision string `json:"precision"`
					Path      string `json:"path"`
					Runtime   string `json:"runtime"`
					Device    string `json:"device"`
				}
				rows := make([]row, 0, len(params))
				for _, p := range params {
					rows = append(rows, row{
						Precision: p.Precision.String(),
						Path:      p.Path.Name(),
						Runtime:   p.Path.Runtime().String(),
						Device:    p.Device.Name(),
					})
				}
				out, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(out))
				return nil
			}

			for _, p := range params {
				cmd.Printf("%s\t%s\t%s\n", p.Precision, p.Path, p.Device)
			}
			return nil
		},
	}
	c.Flags().StringVar(&model, "model", "", "Model ID to resolve the matrix for")
	c.Flags().StringArrayVar(&supported, "supported", nil, "Supported paths as precision:runtime[+runtime...] (repeatable)")
	c.Flags().StringArrayVar(&timeout, "timeout", nil, "Timeout paths as precision:runtime[+runtime...] (repeatable)")
	c.Flags().StringVar(&kind, "kind", "compile", "Path kind to enumerate (compile or profile)")
	c.Flags().StringArrayVar(&deviceNames, "device", nil, "Restrict enumeration to the named devices (repeatable)")
	c.Flags().BoolVar(&quantizeJob, "quantize-job", true, "Whether the model can be quantized with a quantize job")
	c.Flags().BoolVar(&aot, "aot", false, "Only include AOT-compiled paths (default: JIT paths only)")
	c.Flags().BoolVar(&genai, "genai", false, "Only include GenAI-exclusive paths")
	c.Flags().BoolVar(&includeUnsupported, "include-unsupported", false, "Include paths the model declares unsupported")
	c.Flags().BoolVar(&jsonFormat, "json", false, "Print the matrix as JSON")
	_ = c.MarkFlagRequired("model")
	_ = c.MarkFlagRequired("supported")
	c.MarkFlagsMutuallyExclusive("aot", "genai")
	return c
}
