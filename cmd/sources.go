package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rfpwatch/harvester/internal/config"
)

// newSourcesCmd creates the 'sources' subcommand, which prints the portals
// a harvest pass would visit.
func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the configured portals and their landing pages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			tags := make([]string, 0, len(cfg.Sources))
			for tag := range cfg.Sources {
				tags = append(tags, tag)
			}
			sort.Strings(tags)

			out := cmd.OutOrStdout()
			for _, tag := range tags {
				fmt.Fprintf(out, "%-22s %s\n", tag, cfg.Sources[tag])
			}
			return nil
		},
	}
}
