package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-xcmgen/pkg/schema"
)

func (a *app) schemaCommand() *cobra.Command {
	var document string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the parameter form model as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []schema.Option{schema.WithDefaults(a.cfg.Defaults)}
			if document != "" {
				opts = append(opts, schema.WithDocumentFile(document))
			}
			form, err := schema.Load(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(form)
		},
	}
	cmd.Flags().StringVar(&document, "document", "", "OpenAPI document to read instead of the embedded one")
	return cmd
}
