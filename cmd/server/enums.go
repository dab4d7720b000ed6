package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sakura/internal/reference"
	"sakura/internal/schema"
)

var enumsOutput string

// enums печатает то, что отдадут /api/dropdown/*. Ошибка чтения схемы здесь не глушится.
var enumsCmd = &cobra.Command{
	Use:   "enums",
	Short: "Print dropdown attributes, options and enums parsed from the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := schema.LoadFile(cfg.SchemaPath)
		if err != nil {
			return err
		}
		return writeCatalog(cmd.OutOrStdout(), cat, enumsOutput)
	},
}

func init() {
	enumsCmd.Flags().StringVarP(&enumsOutput, "output", "o", "json", "Output format (json|yaml)")
}

type catalogDump struct {
	Attributes []reference.AttributeItem `json:"attributes" yaml:"attributes"`
	Options    []reference.OptionItem    `json:"options" yaml:"options"`
	Enums      map[string][]string       `json:"enums" yaml:"enums"`
	Issues     []reference.Issue         `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func writeCatalog(w io.Writer, cat *schema.Catalog, format string) error {
	dump := catalogDump{
		Attributes: reference.Attributes(cat, reference.Mapping),
		Options:    reference.Options(cat, reference.Mapping),
		Enums:      reference.Enums(cat, reference.Mapping),
		Issues:     reference.Lint(cat, reference.Mapping),
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (json|yaml)", format)
	}
}
