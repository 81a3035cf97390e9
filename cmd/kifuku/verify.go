package main

import (
	"fmt"

	"github.com/hakarun/kifuku/internal/corpus"
	"github.com/hakarun/kifuku/internal/jpdb"
	"github.com/hakarun/kifuku/internal/render"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [text]",
		Short: "Cross-check computed accents against jpdb.io",
		Long: `Analyze text locally and compare each word's computed accent with the
annotation jpdb.io returns for the same word. Requires a jpdb API key in
the config (jpdb.api_key) or KIFUKU_JPDB_API_KEY.`,
		Args: cobra.ArbitraryArgs,
		RunE: runVerify,
	}

	cmd.Flags().StringP("file", "f", "", "Read sentences from a file")
	_ = viper.BindPFlag("verify.file", cmd.Flags().Lookup("file"))

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var texts []string
	if file := viper.GetString("verify.file"); file != "" {
		lines, err := corpus.LoadTextFile(file)
		if err != nil {
			return err
		}
		texts = lines
	} else if len(args) > 0 {
		texts = args
	} else {
		return fmt.Errorf("provide text as arguments or via --file")
	}

	client, err := jpdb.NewClient(viper.GetString("jpdb.api_key"))
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	pipeline, err := initPipeline(ctx, store)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	matched, mismatched, missing := 0, 0, 0

	for _, text := range texts {
		sentences, err := pipeline.AnalyzeText(ctx, text)
		if err != nil {
			return err
		}
		reference, err := client.Parse(ctx, text)
		if err != nil {
			return err
		}

		refByReading := make(map[string]jpdb.Token, len(reference))
		for _, t := range reference {
			refByReading[t.Reading] = t
		}

		for _, s := range sentences {
			for _, w := range s.ContentWords() {
				ref, ok := refByReading[w.Reading]
				if !ok {
					missing++
					continue
				}
				if ref.Pattern.Downstep == w.Pattern.Downstep {
					matched++
					continue
				}
				mismatched++
				fmt.Fprintf(out, "%s %s: computed [%d], jpdb [%d]\n",
					render.WarningStyle.Render("≠"),
					w.Surface, w.Pattern.Downstep, ref.Pattern.Downstep)
			}
		}
	}

	total := matched + mismatched
	fmt.Fprintln(out)
	if total == 0 {
		fmt.Fprintln(out, render.FormatWarning("No comparable words found"))
		return nil
	}
	fmt.Fprintln(out, render.FormatSuccess(fmt.Sprintf(
		"%d/%d matched (%.1f%%), %d words without jpdb annotation",
		matched, total, 100*float64(matched)/float64(total), missing)))
	return nil
}
