package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"omtnames/internal/config"
	"omtnames/internal/domain/entities"
	"omtnames/internal/infrastructure/i18n"
)

var wikidataCmd = &cobra.Command{
	Use:   "wikidata",
	Short: "Manage stored Wikidata translations",
}

var wikidataImportCmd = &cobra.Command{
	Use:   "import <file.jsonl>",
	Short: "Import translations into the configured store",
	Long:  `Each line is {"id":"Q1490","names":{"de":"Tokio","fr":"Tokyo"}}.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runWikidataImport,
}

var wikidataGetCmd = &cobra.Command{
	Use:   "get <qid>",
	Short: "Print the stored translations for a Wikidata id",
	Args:  cobra.ExactArgs(1),
	RunE:  runWikidataGet,
}

func init() {
	wikidataCmd.AddCommand(wikidataImportCmd)
	wikidataCmd.AddCommand(wikidataGetCmd)
}

type wikidataRecord struct {
	ID    string            `json:"id"`
	Names map[string]string `json:"names"`
}

func runWikidataImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()
	ctx := cmd.Context()

	store, err := openWikidataStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	imported, skipped := 0, 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4<<20)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec wikidataRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			logger.Warn("skipping malformed line", "line", lineNo, "error", err)
			skipped++
			continue
		}
		qid := i18n.WikidataID(entities.NewTags(entities.TagWikidata, rec.ID))
		if qid == "" || len(rec.Names) == 0 {
			logger.Warn("skipping entry without id or names", "line", lineNo, "id", rec.ID)
			skipped++
			continue
		}
		names, err := canonicalNames(rec.Names)
		if err != nil {
			logger.Warn("skipping entry", "line", lineNo, "id", qid, "error", err)
			skipped++
			continue
		}
		if err := store.Put(ctx, qid, names); err != nil {
			return fmt.Errorf("store %s: %w", qid, err)
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries, skipped %d\n", imported, skipped)
	return nil
}

// canonicalNames keys names by canonical language code and drops blank values.
func canonicalNames(in map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for lang, name := range in {
		if strings.TrimSpace(name) == "" {
			continue
		}
		canon, err := i18n.CanonicalLanguage(lang)
		if err != nil {
			return nil, err
		}
		out[canon] = name
	}
	return out, nil
}

func runWikidataGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := openWikidataStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if names == nil {
		return errNotFound
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	return enc.Encode(names)
}
