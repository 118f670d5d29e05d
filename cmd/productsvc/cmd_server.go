package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qcharged/product-service/app/services"
	"github.com/qcharged/product-service/internal/kernel"
	"github.com/qcharged/product-service/internal/server"
)

// productsvc serve
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"run"},
		Short:   "Start the HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Start()
		},
	}
}

// productsvc route:list
func routeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List all registered HTTP routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kernel.NewHTTPKernel(kernel.Deps{
				Products: services.NewProductService(nil, nil),
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tNAME")
			fmt.Fprintln(w, "------\t----\t----")
			for _, ri := range k.Router().Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
			}
			return w.Flush()
		},
	}
}
