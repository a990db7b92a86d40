package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/veioenza/seqr/internal/metrics"
	"github.com/veioenza/seqr/internal/migrations"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}
	cmd.AddCommand(newMigrateUpCmd(a))
	cmd.AddCommand(newMigrateStatusCmd(a))
	return cmd
}

func newMigrateUpCmd(a *app) *cobra.Command {
	var to int64

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			migrator, err := migrations.New(db, a.cfg.DB.Driver, a.log, metrics.NewNop())
			if err != nil {
				return err
			}
			if to > 0 {
				return migrator.UpTo(cmd.Context(), to)
			}
			return migrator.Up(cmd.Context())
		},
	}

	cmd.Flags().Int64Var(&to, "to", 0, "Migrate up to this version (default: latest)")
	return cmd
}

func newMigrateStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			migrator, err := migrations.New(db, a.cfg.DB.Driver, a.log, metrics.NewNop())
			if err != nil {
				return err
			}

			statuses, err := migrator.Status(cmd.Context())
			if err != nil {
				return err
			}
			version, err := migrator.Version(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tAPPLIED\tAPPLIED AT")
			for _, s := range statuses {
				appliedAt := "-"
				if s.Applied {
					appliedAt = s.AppliedAt.Format(time.RFC3339)
				}
				fmt.Fprintf(w, "%d\t%t\t%s\n", s.Version, s.Applied, appliedAt)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "current version: %d\n", version)
			return nil
		},
	}
}
