package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCoresCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cores",
		Short: "Print the number of physical cores, or the fallback pool size",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, source := resolvePoolSize(cmd.Context(), withoutConfiguredWorkers(a.cfg))

			out := cmd.OutOrStdout()
			if source == sizeFromFallback {
				color.New(color.FgYellow).Fprintf(out, "physical cores unknown, fallback pool size: %d\n", n)
				return nil
			}
			fmt.Fprint(out, "physical cores: ")
			color.New(color.FgGreen, color.Bold).Fprintf(out, "%d\n", n)
			return nil
		},
	}
}
