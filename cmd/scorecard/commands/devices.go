package commands

import (
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modelkit/model-scorecard/pkg/scorecard"
)

func newDevicesCmd() *cobra.Command {
	var all, mirrors bool
	c := &cobra.Command{
		Use:   "devices",
		Short: "List the device catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := scorecard.DeviceFilter{EnabledOnly: !all, Mirror: scorecard.MirrorExclude}
			if mirrors {
				filter.Mirror = scorecard.MirrorAny
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()
			_, _ = w.Write([]byte("NAME\tCHIPSET\tENABLED\tMIRROR OF\tCOMPILE PATHS\tPROFILE PATHS\n"))
			for _, d := range scorecard.AllDevices(filter) {
				mirrorOf := "-"
				if m := d.MirrorOf(); m != nil {
					mirrorOf = m.Name()
				}
				enabled := "no"
				if d.Enabled() {
					enabled = "yes"
				}
				_, _ = w.Write([]byte(strings.Join([]string{
					d.Name(), d.Chipset(), enabled, mirrorOf,
					pathNames(d.CompilePaths()), pathNames(d.ProfilePaths()),
				}, "\t") + "\n"))
			}
			return nil
		},
	}
	c.Flags().BoolVar(&all, "all", false, "Include disabled devices")
	c.Flags().BoolVar(&mirrors, "mirrors", false, "Include mirror devices")
	return c
}

func pathNames(paths []scorecard.Path) string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = p.Name()
	}
	return strings.Join(names, ",")
}
