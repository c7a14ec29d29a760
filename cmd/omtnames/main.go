// omtnames derives the OpenMapTiles display name attributes (name, name_en,
// name_de, name:latin, name:nonlatin, name_int and translations) from the tags
// of map features.
package main

import (
	"os"

	"omtnames/cmd/omtnames/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
