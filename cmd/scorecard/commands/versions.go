package commands

import (
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modelkit/model-scorecard/pkg/toolchain"
)

// shippedCatalog lists the toolchain versions this toolkit release was
// built against, for running fully offline.
func shippedCatalog() toolchain.Catalog {
	v237 := toolchain.MustParse("2.37.0.250627152033_119506")
	v239 := toolchain.MustParse("2.39.0.250829112350_124859")
	v239.Tags = []string{toolchain.DefaultTag}
	v241 := toolchain.MustParse("2.41.0.251016083054_128331")
	v241.Tags = []string{toolchain.LatestTag}
	return toolchain.NewStaticCatalog([]toolchain.Version{v237, v239, v241})
}

func newVersionsCmd() *cobra.Command {
	var resolve string
	var defaultIfMissing bool
	c := &cobra.Command{
		Use:   "versions",
		Short: "List or resolve toolchain versions against the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := toolchain.NewResolver(shippedCatalog(), toolchain.APIEndpoint())

			if resolve != "" {
				resolved, err := resolver.Resolve(resolve, toolchain.ResolveOptions{DefaultIfMissing: defaultIfMissing})
				if err != nil {
					return err
				}
				verified := ""
				if !resolved.Verified {
					verified = " (unverified: no catalog access)"
				}
				cmd.Printf("%s%s\n", resolved.FullVersionWithFlavor(), verified)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()
			_, _ = w.Write([]byte("VERSION\tAPI VERSION\tTAGS\n"))
			for _, v := range resolver.AllVersions() {
				_, _ = w.Write([]byte(v.FullVersion() + "\t" + v.APIVersion() + "\t" + strings.Join(v.Tags, ",") + "\n"))
			}
			return nil
		},
	}
	c.Flags().StringVar(&resolve, "resolve", "", "Resolve a version or tag instead of listing")
	c.Flags().BoolVar(&defaultIfMissing, "default-if-missing", false, "Fall back to the catalog default when the version has no match")
	return c
}
