package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-limbs"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <file>",
	Short: "Shows the diff of a single file round-trip",
	Long: `Load a file and dump it again, then show how the output differs from the
input. Exits with an error when they differ.`,
	Args: cobra.ExactArgs(1),
	RunE: Roundtrip,
}

// ErrRoundtrip is returned when a file does not survive loading and dumping
// unchanged.
var ErrRoundtrip = errors.New("round-trip changed the file")

func Roundtrip(cmd *cobra.Command, args []string) error {
	path := args[0]

	opts, err := options()
	if err != nil {
		return err
	}

	f, err := open(path)
	if err != nil {
		return err
	}
	orig, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	rec, err := limbs.Loads(orig, opts...)
	if err != nil {
		return fmt.Errorf("unable to load %s: %w", path, err)
	}

	out, err := limbs.Dumps(rec, opts...)
	if err != nil {
		return err
	}

	if bytes.Equal(orig, out) {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: unchanged\n", path)
		return err
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(orig), string(out), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "path = %s\n", path)
	_, _ = fmt.Fprintln(w, dmp.DiffPrettyText(diffs))

	return ErrRoundtrip
}
