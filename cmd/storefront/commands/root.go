package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DRSN-tech/go-storefront/internal/app"
)

var endpoint string

func Execute() error {
	root := &cobra.Command{
		Use:          "storefront",
		Short:        "Terminal storefront client: catalog, search and cart",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint != "" {
				os.Setenv("STOREFRONT_ENDPOINT", endpoint)
			}
			if err := app.RunClient(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&endpoint, "endpoint", "", "API base URL (default http://localhost:8082/api/v1)")

	return root.Execute()
}
