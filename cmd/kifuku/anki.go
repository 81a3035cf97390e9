package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hakarun/kifuku/internal/anki"
	"github.com/hakarun/kifuku/internal/config"
	"github.com/hakarun/kifuku/internal/corpus"
	"github.com/hakarun/kifuku/internal/model"
	"github.com/hakarun/kifuku/internal/render"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func ankiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anki",
		Short: "Generate Anki flashcards with pitch annotations",
		Long: `Analyze a text file and write a tab-separated deck that Anki imports
directly. Each card front shows the bare word; the back carries the
reading with per-mora pitch markup.

With --conjugations, each ichidan verb and i-adjective also gets drill
cards for its basic inflections.`,
		RunE: runAnki,
	}

	cmd.Flags().StringP("input", "i", "", "Source text file")
	cmd.Flags().StringP("output", "o", "deck.tsv", "Output deck path")
	cmd.Flags().Bool("conjugations", false, "Add conjugation drill cards")
	cmd.Flags().Bool("tatoeba", false, "Use the Tatoeba example-sentence corpus as the source")
	cmd.Flags().Int("limit", 100, "Maximum sentences to take from the corpus")

	_ = viper.BindPFlag("anki.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("anki.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("anki.conjugations", cmd.Flags().Lookup("conjugations"))
	_ = viper.BindPFlag("anki.tatoeba", cmd.Flags().Lookup("tatoeba"))
	_ = viper.BindPFlag("anki.limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runAnki(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

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
	engine, err := initSuffixEngine()
	if err != nil {
		return err
	}

	var lines []string
	switch {
	case viper.GetBool("anki.tatoeba"):
		dataDir, err := config.DataDir()
		if err != nil {
			return err
		}
		loader := corpus.NewLoader(filepath.Join(dataDir, "corpus"))
		lines, err = loader.LoadTatoeba(ctx, viper.GetString("anki.tatoeba_url"), viper.GetInt("anki.limit"))
		if err != nil {
			return err
		}
	case viper.GetString("anki.input") != "":
		var err error
		lines, err = corpus.LoadTextFile(viper.GetString("anki.input"))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("provide a source with --input or --tatoeba")
	}

	generator := anki.NewGenerator(pipeline, engine)

	var cards []anki.Card
	drilled := make(map[string]struct{})
	for _, line := range lines {
		lineCards, err := generator.GenerateFromText(ctx, line)
		if err != nil {
			return err
		}
		cards = append(cards, lineCards...)

		if !viper.GetBool("anki.conjugations") {
			continue
		}
		sentences, err := pipeline.AnalyzeText(ctx, line)
		if err != nil {
			return err
		}
		for _, s := range sentences {
			for _, w := range s.ContentWords() {
				cards = append(cards, conjugationCardsFor(generator, w, drilled)...)
			}
		}
	}

	output := viper.GetString("anki.output")
	if err := anki.WriteTSV(output, cards, true); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(),
		render.FormatSuccess(fmt.Sprintf("Wrote %d cards to %s", len(cards), output)))
	return nil
}

// conjugationCardsFor drills the dictionary form behind a word once per
// lemma, using the first morpheme of the chain.
func conjugationCardsFor(g *anki.Generator, w model.Word, drilled map[string]struct{}) []anki.Card {
	if len(w.Morphemes) == 0 {
		return nil
	}
	m := w.Morphemes[0]
	if !strings.HasPrefix(m.POS1, "動詞") && !strings.HasPrefix(m.POS1, "形容詞") {
		return nil
	}

	key := m.Lemma
	if key == "" {
		key = m.Surface
	}
	if _, done := drilled[key]; done {
		return nil
	}
	drilled[key] = struct{}{}

	return g.ConjugationCards(m)
}
