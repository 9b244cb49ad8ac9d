package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/platform/store"
	corrdomain "scribe/internal/services/corrections/domain"
)

func newCorrectionsCmd(e env) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "corrections",
		Short: "Inspect and toggle a user's learned corrections",
	}
	cmd.PersistentFlags().StringVar(&user, "user", "", "user id (uuid)")
	_ = cmd.MarkPersistentFlagRequired("user")

	var in corrdomain.ListInput
	list := &cobra.Command{
		Use:   "list",
		Short: "List corrections, most frequent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), e, func(st *store.Store) error {
				cs, err := e.corrections(st).Browse(cmd.Context(), user, in)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tORIGINAL\tCORRECTED\tCOUNT\tDISABLED\tLAST SEEN")
				for _, c := range cs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%t\t%s\n",
						c.ID, c.Original, c.Corrected, c.Count, c.Disabled, c.LastSeenAt.UTC().Format(time.RFC3339))
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().IntVar(&in.MinCount, "min-count", 0, "only corrections seen at least this often")
	list.Flags().BoolVar(&in.IncludeDisabled, "include-disabled", false, "show disabled corrections too")
	list.Flags().IntVar(&in.Limit, "limit", 0, "maximum rows")

	toggle := func(use, short string, disabled bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd.Context(), e, func(st *store.Store) error {
					svc := e.corrections(st)
					op := svc.Enable
					if disabled {
						op = svc.Disable
					}
					c, err := op(cmd.Context(), user, args[0])
					if err != nil {
						return err
					}
					cmd.Printf("%s %q -> %q disabled=%t count=%d\n", c.ID, c.Original, c.Corrected, c.Disabled, c.Count)
					return nil
				})
			},
		}
	}

	cmd.AddCommand(
		list,
		toggle("disable", "Stop applying a correction", true),
		toggle("enable", "Resume applying a correction", false),
	)
	return cmd
}
