package main

import (
	"fmt"
	"strings"

	"github.com/hakarun/kifuku/internal/corpus"
	"github.com/hakarun/kifuku/internal/render"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Annotate Japanese text with pitch accent",
		Long: `Segment Japanese text, compute the pitch accent of every content word,
and print the annotated sentences.

Conjugated verbs and adjectives go through the suffix combination rules,
compound nouns through the sandhi rules, and numeral phrases through the
counter rules.`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("file", "f", "", "Read text from a file instead of arguments")
	cmd.Flags().Bool("plain", false, "Tab-separated output without colors")
	cmd.Flags().Bool("trace", false, "Show the rule applications behind each accent")

	_ = viper.BindPFlag("analyze.file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("analyze.plain", cmd.Flags().Lookup("plain"))
	_ = viper.BindPFlag("analyze.trace", cmd.Flags().Lookup("trace"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	plain := viper.GetBool("analyze.plain")
	trace := viper.GetBool("analyze.trace")

	var texts []string
	if file := viper.GetString("analyze.file"); file != "" {
		lines, err := corpus.LoadTextFile(file)
		if err != nil {
			return err
		}
		texts = lines
	} else if len(args) > 0 {
		texts = []string{strings.Join(args, "")}
	} else {
		return fmt.Errorf("provide text as arguments or via --file")
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
	for _, text := range texts {
		sentences, err := pipeline.AnalyzeText(ctx, text)
		if err != nil {
			return err
		}
		for _, s := range sentences {
			words := s.Words
			if !trace {
				for i := range words {
					words[i].Trace = nil
				}
			}
			fmt.Fprint(out, render.FormatSentence(s.Original, words, plain))
		}
	}

	if !plain {
		fmt.Fprintln(out, render.Legend())
	}
	return nil
}
