package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/stylegen/internal/styles"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the style document",
	Long: `Print the JSON Schema describing the style export read by generate.
Design tool plugins can validate their output against it.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		schema, err := styles.DocumentSchema()
		if err != nil {
			return fmt.Errorf("building schema: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return err
	},
}
