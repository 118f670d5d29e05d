package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qcharged/product-service/config"
	"github.com/qcharged/product-service/database/seeders"
	"github.com/qcharged/product-service/pkg/database"
	"github.com/qcharged/product-service/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.Connect()
}

func printNames(cmd *cobra.Command, verb string, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do.")
		return
	}
	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, name)
	}
}

// productsvc migrate
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run all pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootDB(); err != nil {
				return err
			}
			ran, err := migration.New(database.DB).Run()
			printNames(cmd, "Migrated", ran)
			return err
		},
	}
}

// productsvc migrate:rollback
func migrateRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Roll back the last batch of migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootDB(); err != nil {
				return err
			}
			undone, err := migration.New(database.DB).Rollback()
			printNames(cmd, "Rolled back", undone)
			return err
		},
	}
}

// productsvc migrate:status
func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show the status of each migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootDB(); err != nil {
				return err
			}
			statuses, err := migration.New(database.DB).Status()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "RAN?\tBATCH\tMIGRATION")
			for _, s := range statuses {
				ran, batch := "No", "-"
				if s.Ran {
					ran, batch = "Yes", fmt.Sprint(s.Batch)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", ran, batch, s.Name)
			}
			return w.Flush()
		},
	}
}

// productsvc seed
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Run all database seeders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootDB(); err != nil {
				return err
			}
			ran, err := seeders.RunAll(cmd.Context(), database.DB)
			printNames(cmd, "Seeded", ran)
			return err
		},
	}
}
