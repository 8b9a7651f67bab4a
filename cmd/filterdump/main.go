// Package main is the entry point for filterdump, a diagnostic tool that
// parses an OData $filter expression against a YAML schema and prints the
// typed expression tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	odatafilter "github.com/nlstn/go-odata-filter"
	"github.com/nlstn/go-odata-filter/schema"
)

// Set via -ldflags at build time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "filterdump [flags] <expression>",
	Short: "Parse an OData $filter expression and dump its typed tree",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Version = version
	rootCmd.Flags().String("schema", "", "Path to the YAML schema document (required)")
	rootCmd.Flags().String("entity-set", "", "Entity set the filter applies to (required)")
	rootCmd.Flags().String("it", "$it", "Range variable name bound to the current item")
	_ = rootCmd.MarkFlagRequired("schema")
	_ = rootCmd.MarkFlagRequired("entity-set")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	schemaPath, _ := cmd.Flags().GetString("schema")
	entitySet, _ := cmd.Flags().GetString("entity-set")
	rangeVar, _ := cmd.Flags().GetString("it")

	model, err := schema.LoadYAMLFile(schemaPath)
	if err != nil {
		return err
	}
	if err := model.Bind(rangeVar, entitySet); err != nil {
		return err
	}

	fq, err := odatafilter.ParseFilter(args[0], rangeVar, model)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), odatafilter.Render(fq))
	return nil
}
