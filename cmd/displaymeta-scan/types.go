package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-displaymeta/internal/scanner"
	"github.com/goliatone/go-displaymeta/pkg/metadata"
)

type overlayScope struct {
	Scope metadata.ScopeRule `yaml:"scope"`
}

func newTypesCmd() *cobra.Command {
	var (
		asYAML         bool
		includeDerived bool
		start          string
	)
	cmd := &cobra.Command{
		Use:   "types <dir>",
		Short: "List the struct types declared under a module directory",
		Long: `Lists the struct types declared in the .go files under <dir>, relative to
the module root, including subdirectories. With --yaml the fully qualified
names are printed as an overlay scope block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				start = wd
			}
			root, err := scanner.FindModuleRoot(start)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !asYAML {
				names, err := scanner.TypeNames(root, args[0])
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			types, err := scanner.Scan(root, args[0])
			if err != nil {
				return err
			}
			block := overlayScope{Scope: metadata.ScopeRule{Targets: []string{}, IncludeDerived: includeDerived}}
			for _, t := range types {
				block.Scope.Targets = append(block.Scope.Targets, t.Qualified())
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(block); err != nil {
				return fmt.Errorf("encode scope: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print an overlay scope block")
	cmd.Flags().BoolVar(&includeDerived, "include-derived", false, "set includeDerived in the scope block")
	cmd.Flags().StringVar(&start, "from", "", "directory to search upwards from for go.mod (default: working directory)")
	return cmd
}
