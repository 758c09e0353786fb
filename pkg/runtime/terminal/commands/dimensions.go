package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/sales-pulse/pkg/models/domain"
)

func NewDimensionsCmd(engine Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "dimensions [dimension]",
		Short: "List the known values of a dimension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			dim, err := domain.ParseDimension(args[0])
			if err != nil {
				return err
			}

			values, err := engine.DimensionValues(ctx, dim)
			if err != nil {
				return err
			}

			for _, v := range values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}
