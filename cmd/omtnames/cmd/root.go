package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"omtnames/internal/domain"
)

var rootCmd = &cobra.Command{
	Use:           "omtnames",
	Short:         "Multilingual name attributes for map features",
	Long:          "Resolves name, name_en, name_de, name:latin, name:nonlatin, name_int and per-language names from OSM tags.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errNotFound is returned by lookups that found nothing; it exits 1 without
// printing an error.
var errNotFound = errors.New("not found")

// Execute runs the root command. Domain errors are printed with their code.
func Execute() error {
	err := rootCmd.Execute()
	switch {
	case err == nil, errors.Is(err, errNotFound):
	case domain.Code(err) != "":
		fmt.Fprintf(os.Stderr, "error [%s]: %v\n", domain.Code(err), err)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(regionCmd)
	rootCmd.AddCommand(wikidataCmd)
}
