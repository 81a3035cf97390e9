package main

import (
	"github.com/hakarun/kifuku/internal/tui"

	"github.com/spf13/cobra"
)

func interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Interactive accent explorer",
		Long:    `Open a terminal session: type a sentence, see its pitch annotation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			return tui.Run(pipeline)
		},
	}
}
