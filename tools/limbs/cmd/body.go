package cmd

import (
	"github.com/spf13/cobra"
)

var bodyCmd = &cobra.Command{
	Use:   "body <file>",
	Short: "Print the body of a file without its header",
	Args:  cobra.ExactArgs(1),
	RunE:  Body,
}

func Body(cmd *cobra.Command, args []string) error {
	rec, _, err := load(args[0])
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(rec.Body)
	return err
}
