package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zostay/go-limbs"
)

var (
	fmtCmd = &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a file with its header in canonical form",
		Long: `Rewrite a file with its header in canonical form: field names in wire
form, sorted, with multi-line values folded. The result is printed unless
--write is given.`,
		Args: cobra.ExactArgs(1),
		RunE: Fmt,
	}

	writeBack bool
)

func init() {
	fmtCmd.Flags().BoolVarP(&writeBack, "write", "w", false, "write the result back to the file")
}

func Fmt(cmd *cobra.Command, args []string) error {
	path := args[0]
	if writeBack && path == "-" {
		return errors.New("cannot write back to stdin")
	}

	rec, opts, err := load(path)
	if err != nil {
		return err
	}

	out, err := limbs.Dumps(rec, opts...)
	if err != nil {
		return err
	}

	if !writeBack {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	orig, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if bytes.Equal(orig, out) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
