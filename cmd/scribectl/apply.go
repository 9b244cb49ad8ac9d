package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"scribe/internal/core/learn"
)

const pairSep = "=>"

func newApplyCmd() *cobra.Command {
	var text string
	var pairs []string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply corrections to text offline",
		Example: `  scribectl apply --text "meet at the pub" --correction "pub=>office"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, err := parsePairs(pairs)
			if err != nil {
				return err
			}
			res := learn.Apply(text, rules, 1)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text to personalise")
	cmd.Flags().StringArrayVar(&pairs, "correction", nil, "original=>corrected, repeatable")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

// parsePairs turns "orig=>corr" flags into rules that are always eligible
func parsePairs(pairs []string) ([]learn.Rule, error) {
	bad, found := lo.Find(pairs, func(p string) bool {
		o, c, ok := strings.Cut(p, pairSep)
		return !ok || strings.TrimSpace(o) == "" || strings.TrimSpace(c) == ""
	})
	if found {
		return nil, fmt.Errorf("correction %q: want original%scorrected", bad, pairSep)
	}
	return lo.Map(pairs, func(p string, _ int) learn.Rule {
		o, c, _ := strings.Cut(p, pairSep)
		return learn.Rule{Original: strings.TrimSpace(o), Corrected: strings.TrimSpace(c), Count: 1}
	}), nil
}
