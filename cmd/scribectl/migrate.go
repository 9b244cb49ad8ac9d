package main

import (
	"github.com/spf13/cobra"

	"scribe/internal/platform/store"
	"scribe/internal/services/schema"
)

func newMigrateCmd(e env) *cobra.Command {
	var skipCH bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending postgres and clickhouse migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), e, func(st *store.Store) error {
				applied, err := schema.ApplyPG(cmd.Context(), st.PG)
				if err != nil {
					return err
				}
				cmd.Printf("pg: %d migration(s) applied %v\n", len(applied), applied)

				if st.CH == nil || skipCH {
					cmd.Println("ch: skipped")
					return nil
				}
				if err := schema.ApplyCH(cmd.Context(), st.CH); err != nil {
					return err
				}
				cmd.Println("ch: up to date")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&skipCH, "skip-ch", false, "do not touch clickhouse")
	return cmd
}
