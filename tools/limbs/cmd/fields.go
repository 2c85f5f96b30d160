package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/zostay/go-limbs/header"
	"github.com/zostay/go-limbs/name"
)

var (
	fieldsCmd = &cobra.Command{
		Use:   "fields <file>",
		Short: "List the header fields of a file",
		Args:  cobra.ExactArgs(1),
		RunE:  Fields,
	}

	outputFormat string
)

func init() {
	fieldsCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
}

func Fields(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	rec, _, err := load(args[0])
	if err != nil {
		return err
	}

	rw, err := reservedWords()
	if err != nil {
		return err
	}
	m := name.New(rw)

	rows := make([]fieldRow, 0, len(rec.Fields))
	for n, v := range rec.Fields {
		rows = append(rows, fieldRow{
			Wire:  m.ToWire(n),
			Name:  n,
			Value: header.Render(v),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Wire != rows[j].Wire {
			return rows[i].Wire < rows[j].Wire
		}
		return rows[i].Name < rows[j].Name
	})

	return printFields(cmd.OutOrStdout(), format, rows)
}
