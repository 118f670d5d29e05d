package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers migrations and seeders through their init funcs.
	_ "github.com/qcharged/product-service/database/migrations"
	_ "github.com/qcharged/product-service/database/seeders"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "productsvc",
		Short:         "Product catalogue microservice",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		serveCmd(),
		routeListCmd(),
		migrateCmd(),
		migrateRollbackCmd(),
		migrateStatusCmd(),
		seedCmd(),
	)
	return root
}
