package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/modelkit/model-scorecard/pkg/precision"
	"github.com/modelkit/model-scorecard/pkg/scorecard"
)

func newPrecisionsCmd() *cobra.Command {
	var (
		model       string
		supported   []string
		quantizeJob bool
	)
	c := &cobra.Command{
		Use:   "precisions",
		Short: "Resolve the precisions to test for a model in this environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			var modelSupported []precision.Precision
			for _, spec := range supported {
				for _, token := range strings.Split(spec, ",") {
					p, err := precision.Parse(strings.TrimSpace(token))
					if err != nil {
						return err
					}
					modelSupported = append(modelSupported, p)
				}
			}
			precisions, err := scorecard.GetModelTestPrecisions(model, modelSupported, quantizeJob)
			if err != nil {
				return err
			}
			for _, p := range precisions {
				cmd.Println(p)
			}
			return nil
		},
	}
	c.Flags().StringVar(&model, "model", "", "Model ID to resolve precisions for")
	c.Flags().StringArrayVar(&supported, "supported", nil, "Precisions the model declares support for (comma separated, repeatable)")
	c.Flags().BoolVar(&quantizeJob, "quantize-job", true, "Whether the model can be quantized with a quantize job")
	_ = c.MarkFlagRequired("model")
	return c
}
