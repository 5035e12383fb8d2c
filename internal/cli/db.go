package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/opsconsole/internal/store"
)

var errNoDatabase = errors.New("no database configured: set DATABASE_URL")

func (a *App) pgStore() (*store.PgStore, error) {
	pg, ok := a.store.(*store.PgStore)
	if !ok {
		return nil, errNoDatabase
	}
	return pg, nil
}

func (a *App) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the console tables in the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pg, err := a.pgStore()
			if err != nil {
				return err
			}
			if err := pg.Migrate(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "schema is up to date")
			return nil
		},
	}
}

func (a *App) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the database records with the sample dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pg, err := a.pgStore()
			if err != nil {
				return err
			}

			users, merchants, accounts := store.SampleUsers(), store.SampleMerchants(), store.SampleAccounts()
			if err := pg.Seed(context.Background(), users, merchants, accounts); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "seeded %d users, %d merchants, %d accounts\n", len(users), len(merchants), len(accounts))
			return nil
		},
	}
}
