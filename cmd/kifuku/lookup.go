package main

import (
	"errors"
	"fmt"

	"github.com/hakarun/kifuku/internal/common"
	"github.com/hakarun/kifuku/internal/model"
	"github.com/hakarun/kifuku/internal/render"

	"github.com/spf13/cobra"
)

func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up a word's base accent in the local dictionary",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookup,
	}
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	surface := args[0]

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	entries, err := store.LookupWord(ctx, surface)
	if err != nil {
		if errors.Is(err, common.ErrUnknownWord) {
			return common.NewUserError(
				fmt.Sprintf("%q is not in the dictionary. Import a lexicon with 'kifuku import' first.", surface), err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.FormatTitle(surface))
	for _, e := range entries {
		mora := model.CountMora(e.Reading)
		accent := e.Accent
		if accent > mora {
			accent = mora
		}
		pattern := model.AccentPattern{MoraCount: mora, Downstep: accent}
		fmt.Fprintf(out, "  %s  %s [%d] %s (%s)\n",
			e.POS,
			render.ColoredReading(e.Reading, pattern),
			pattern.Downstep,
			pattern.Pattern(true),
			pattern.Shape())
	}
	return nil
}
