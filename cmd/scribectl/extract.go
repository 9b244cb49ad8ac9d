package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"scribe/internal/core/learn"
)

func newExtractCmd() *cobra.Command {
	var raw, edited string
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the corrections an edit would teach",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := learn.Extract(raw, edited)
			if out == nil {
				out = []learn.Emitted{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&raw, "raw", "", "text as transcribed")
	cmd.Flags().StringVar(&edited, "edited", "", "text after the user's edit")
	_ = cmd.MarkFlagRequired("raw")
	_ = cmd.MarkFlagRequired("edited")
	return cmd
}
