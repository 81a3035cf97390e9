package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hakarun/kifuku/internal/common"
	"github.com/hakarun/kifuku/internal/render"
	"github.com/hakarun/kifuku/internal/rules"

	"github.com/spf13/cobra"
)

func numeralCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "numeral <number> <counter>",
		Short: "Compute the accent of a numeral+counter phrase",
		Long: `Compute the pitch accent of a number combined with a counter word,
applying the counter's accent class, exceptional reading changes such as
いっぽん, and the per-numeral override table.

Examples:
  kifuku numeral 1 本
  kifuku numeral 3 匹
  kifuku numeral 10 階`,
		Args: cobra.ExactArgs(2),
		RunE: runNumeral,
	}
	cmd.Flags().Bool("range", false, "Show the phrase for every numeral 1-10")
	return cmd
}

func runNumeral(cmd *cobra.Command, args []string) error {
	counter := args[1]
	out := cmd.OutOrStdout()

	showRange, _ := cmd.Flags().GetBool("range")
	if showRange {
		fmt.Fprintln(out, render.FormatTitle("1-10 "+counter))
		for n := 1; n <= 10; n++ {
			if err := printNumeral(cmd, n, counter); err != nil {
				return err
			}
		}
		return nil
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return common.NewUserError(fmt.Sprintf("%q is not a number", args[0]), err)
	}
	return printNumeral(cmd, n, counter)
}

func printNumeral(cmd *cobra.Command, n int, counter string) error {
	phrase, err := rules.NumeralCounterAccent(n, counter)
	if err != nil {
		if errors.Is(err, common.ErrUnknownCounter) {
			return common.NewUserError(
				fmt.Sprintf("counter %q has no accent class; only common counters are supported", counter), err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d%s  %s [%d] %s (%s)  %s\n",
		n, counter,
		render.ColoredReading(phrase.Reading, phrase.Pattern),
		phrase.Pattern.Downstep,
		phrase.Pattern.Pattern(true),
		phrase.Pattern.Shape(),
		render.SubtleStyle.Render(phrase.Rule))
	return nil
}
