package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zostay/go-limbs/header"
	"github.com/zostay/go-limbs/name"
)

var getCmd = &cobra.Command{
	Use:   "get <file> <field>",
	Short: "Print the value of a single header field",
	Long: `Print the value of a single header field. The field may be given by its
wire name (Field-One) or its internal name (field_one).`,
	Args: cobra.ExactArgs(2),
	RunE: Get,
}

func Get(cmd *cobra.Command, args []string) error {
	rec, _, err := load(args[0])
	if err != nil {
		return err
	}

	rw, err := reservedWords()
	if err != nil {
		return err
	}

	n, err := name.New(rw).ToInternal(args[1])
	if err != nil {
		return err
	}

	v, found := rec.Get(n)
	if !found {
		return fmt.Errorf("no field named %q in %s", args[1], args[0])
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), header.Render(v))
	return err
}
