package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hakarun/kifuku/internal/common"
	"github.com/hakarun/kifuku/internal/model"
	"github.com/hakarun/kifuku/internal/render"
	"github.com/hakarun/kifuku/internal/storage"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a lexicon or override list into the local dictionary",
		Long: `Import accent data into the local SQLite dictionary.

Lexicon files are CSV with columns:
  surface,reading,pos,accent,con_type,mod_type,lemma

Override files (--overrides) are CSV with columns:
  surface,reading,accent
and record lexicalized compounds whose memorized accent wins over the
sandhi rules.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("overrides", false, "Treat the file as compound overrides")
	cmd.Flags().Bool("dry-run", false, "Parse and validate without saving")

	_ = viper.BindPFlag("import.overrides", cmd.Flags().Lookup("overrides"))
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	dryRun := viper.GetBool("import.dry_run")
	out := cmd.OutOrStdout()

	if viper.GetBool("import.overrides") {
		count, err := importOverrides(cmd, store, f, dryRun)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, render.FormatSuccess(fmt.Sprintf("Imported %d overrides", count)))
		return nil
	}

	entries, err := parseLexiconCSV(f)
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Fprintln(out, render.FormatWarning(fmt.Sprintf("Dry run: %d entries parsed, nothing saved", len(entries))))
		return nil
	}

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetDescription("Importing lexicon..."),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
	)

	// Batches keep each transaction small enough to interrupt.
	const batchSize = 1000
	saved := 0
	for start := 0; start < len(entries); start += batchSize {
		end := start + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		n, err := store.SaveWords(ctx, entries[start:end])
		if err != nil {
			return err
		}
		saved += n
		_ = bar.Add(end - start)
	}
	_ = bar.Finish()
	fmt.Fprintln(out)

	if err := store.RecordImport(ctx, filepath.Base(path), saved); err != nil {
		return err
	}

	fmt.Fprintln(out, render.FormatSuccess(fmt.Sprintf("Imported %d words", saved)))
	return nil
}

func parseLexiconCSV(r io.Reader) ([]storage.WordEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var entries []storage.WordEntry
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse lexicon CSV: %w", err)
		}
		line++
		if len(record) < 4 {
			return nil, fmt.Errorf("%w: line %d has %d fields, want at least 4",
				common.ErrInvalidRuleTable, line, len(record))
		}

		accent, err := strconv.Atoi(record[3])
		if err != nil || accent < 0 {
			return nil, fmt.Errorf("%w: line %d has bad accent %q",
				common.ErrInvalidRuleTable, line, record[3])
		}

		e := storage.WordEntry{
			Surface: record[0],
			Reading: model.KataToHira(record[1]),
			POS:     record[2],
			Accent:  accent,
		}
		if len(record) > 4 {
			e.ConType = record[4]
		}
		if len(record) > 5 {
			e.ModType = record[5]
		}
		if len(record) > 6 {
			e.Lemma = record[6]
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func importOverrides(cmd *cobra.Command, store *storage.SQLiteStorage, r io.Reader, dryRun bool) (int, error) {
	ctx := cmd.Context()
	reader := csv.NewReader(r)

	count := 0
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to parse overrides CSV: %w", err)
		}
		line++
		if len(record) < 3 {
			return count, fmt.Errorf("%w: line %d has %d fields, want 3",
				common.ErrInvalidRuleTable, line, len(record))
		}

		reading := model.KataToHira(record[1])
		accent, err := strconv.Atoi(record[2])
		if err != nil {
			return count, fmt.Errorf("%w: line %d has bad accent %q",
				common.ErrInvalidRuleTable, line, record[2])
		}

		mora := model.CountMora(reading)
		pattern, err := model.NewAccentPattern(mora, accent)
		if err != nil {
			return count, fmt.Errorf("%w: line %d: %v", common.ErrInvalidRuleTable, line, err)
		}

		if !dryRun {
			if err := store.SaveOverride(ctx, record[0], reading, pattern, "import"); err != nil {
				return count, err
			}
		}
		count++
	}
	return count, nil
}
