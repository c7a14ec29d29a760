package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"omtnames/internal/domain"
	"omtnames/pkg/poststyle"
)

var regionList bool

var regionCmd = &cobra.Command{
	Use:   "region <name>",
	Short: "Print the press-style abbreviation of a US state or territory",
	Long:  "Exact-match lookup, e.g. \"California\" -> \"Calif.\". Exits 1 for unknown names.",
	Args: func(cmd *cobra.Command, args []string) error {
		if regionList {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runRegion,
}

func init() {
	regionCmd.Flags().BoolVar(&regionList, "list", false, "list every known region with its abbreviation")
}

func runRegion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if regionList {
		for _, name := range poststyle.Names() {
			abbr, _ := poststyle.Lookup(name)
			fmt.Fprintf(out, "%s\t%s\n", name, abbr)
		}
		return nil
	}

	name := strings.Join(args, " ")
	abbr, ok := poststyle.Lookup(name)
	if !ok {
		return fmt.Errorf("region %q: %w", name, domain.ErrUnknownRegion)
	}
	fmt.Fprintln(out, abbr)
	return nil
}
