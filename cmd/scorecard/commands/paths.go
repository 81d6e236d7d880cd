package commands

import (
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modelkit/model-scorecard/pkg/scorecard"
)

func newPathsCmd() *cobra.Command {
	var kind string
	c := &cobra.Command{
		Use:   "paths",
		Short: "List the scorecard path catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			pathKind, err := parsePathKind(kind)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()
			_, _ = w.Write([]byte("NAME\tRUNTIME\tENGINE\tAOT\tGENAI\tENABLED\tDEFAULT TOOLCHAIN\n"))
			for _, p := range scorecard.AllPaths(pathKind, scorecard.PathFilter{IncludeGenAI: true}) {
				r := p.Runtime()
				_, _ = w.Write([]byte(strings.Join([]string{
					p.Name(), r.String(), r.Engine().String(),
					yesNo(r.IsAOTCompiled()), yesNo(r.IsExclusivelyForGenAI()), yesNo(p.Enabled()),
					r.DefaultToolchainVersion().String(),
				}, "\t") + "\n"))
			}
			return nil
		},
	}
	c.Flags().StringVar(&kind, "kind", "compile", "Path kind to list (compile or profile)")
	return c
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
