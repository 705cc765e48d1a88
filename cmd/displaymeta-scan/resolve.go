package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	displaymeta "github.com/goliatone/go-displaymeta"
	"github.com/goliatone/go-displaymeta/pkg/metadata"
	pkgopenapi "github.com/goliatone/go-displaymeta/pkg/openapi"
)

type resolvedProperty struct {
	Name          string `yaml:"name"`
	Container     string `yaml:"container"`
	Type          string `yaml:"type"`
	Label         string `yaml:"label,omitempty"`
	Hint          string `yaml:"hint,omitempty"`
	DisplayFormat string `yaml:"displayFormat,omitempty"`
	EditFormat    string `yaml:"editFormat,omitempty"`
}

type resolvedSchema struct {
	Schema     string             `yaml:"schema"`
	Bases      []string           `yaml:"bases,omitempty"`
	Properties []resolvedProperty `yaml:"properties"`
}

func newResolveCmd() *cobra.Command {
	var (
		targets        []string
		includeDerived bool
	)
	cmd := &cobra.Command{
		Use:   "resolve <openapi> <schema>",
		Short: "Print the display decisions for an OpenAPI component schema",
		Long: `Loads an OpenAPI document from a file or URL and prints, as YAML, the
label, template hint and formats resolved for every property of <schema>,
including properties inherited through allOf.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src := pkgopenapi.SourceFor(args[0])
			if src == nil {
				return fmt.Errorf("invalid source %q", args[0])
			}
			doc, err := displaymeta.NewLoader().Load(ctx, src)
			if err != nil {
				return err
			}
			catalog, err := displaymeta.NewParser().Schemas(ctx, doc)
			if err != nil {
				return err
			}
			descriptors, err := catalog.Descriptors(args[1])
			if err != nil {
				return err
			}

			var opts []metadata.Option
			if cmd.Flags().Changed("scope") {
				opts = append(opts, metadata.WithScopeRule(metadata.ScopeRule{Targets: targets, IncludeDerived: includeDerived}))
			}
			resolver, err := metadata.NewResolver(opts...)
			if err != nil {
				return err
			}

			report := resolvedSchema{Schema: args[1], Bases: catalog.Container(args[1]).Bases}
			for _, desc := range descriptors {
				decision := resolver.Resolve(desc)
				prop := resolvedProperty{
					Name:          desc.Name,
					Container:     desc.Container.Name,
					Type:          string(desc.DeclaredType),
					DisplayFormat: decision.DisplayFormat,
					EditFormat:    decision.EditFormat,
				}
				switch {
				case desc.HasExplicitLabel():
					prop.Label = desc.ExplicitLabel
				case decision.HasLabel:
					prop.Label = decision.Label
				}
				if decision.Hint != metadata.HintNone {
					prop.Hint = decision.Hint.String()
				}
				report.Properties = append(report.Properties, prop)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("encode decisions: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringSliceVar(&targets, "scope", nil, "limit generated labels to these schema names")
	cmd.Flags().BoolVar(&includeDerived, "include-derived", false, "apply the scope to schemas deriving from a target")
	return cmd
}
