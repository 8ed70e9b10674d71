package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCitiesCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "cities [query]",
		Short: "List the gazetteer, or search it by name or alias",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cities := a.gaz.Cities()
			if len(args) == 1 {
				cities = a.gaz.Search(args[0], limit)
			} else if limit > 0 && len(cities) > limit {
				cities = cities[:limit]
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCOUNTRY\tPOPULATION\tALIASES")
			for _, c := range cities {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.Name, c.Country, c.Population, strings.Join(c.Aliases, ", "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of cities to print (0 for all)")
	return cmd
}
