package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zostay/go-limbs"
	"github.com/zostay/go-limbs/convert"
	"github.com/zostay/go-limbs/name"
)

var (
	rootCmd = &cobra.Command{
		Use:               "limbs",
		Short:             "Inspect and rewrite limbs files",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	verbose     bool
	reserved    string
	conversions []string
	maxHeader   int
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log decoding details to stderr")
	flags.StringVar(&reserved, "reserved", "go", "reserved word set for field names (go, python or none)")
	flags.StringArrayVarP(&conversions, "convert", "c", nil, "apply a conversion to a field, as name=tag")
	flags.IntVar(&maxHeader, "max-header", 0, "limit the size of the header in bytes (0 for no limit)")

	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(bodyCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(roundtripCmd)
}

func Execute() {
	err := rootCmd.Execute()
	cobra.CheckErr(err)
}

func setup(_ *cobra.Command, _ []string) error {
	if !verbose {
		return nil
	}

	l, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("unable to start logger: %w", err)
	}
	limbs.SetLogger(l)
	return nil
}

// reservedWords returns the reserved set selected on the command line.
func reservedWords() (name.Reserved, error) {
	switch strings.ToLower(reserved) {
	case "go", "":
		return name.GoKeywords, nil
	case "python":
		return name.PythonKeywords, nil
	case "none":
		return name.Reserved{}, nil
	default:
		return nil, fmt.Errorf("unknown reserved word set %q (valid: go, python, none)", reserved)
	}
}

// options builds the load and dump options from the global flags.
func options() ([]limbs.Option, error) {
	rw, err := reservedWords()
	if err != nil {
		return nil, err
	}

	opts := []limbs.Option{limbs.WithReserved(rw)}
	if maxHeader > 0 {
		opts = append(opts, limbs.WithMaxHeaderLength(maxHeader))
	}

	if len(conversions) > 0 {
		conv := make(map[string]convert.Spec, len(conversions))
		for _, c := range conversions {
			field, tag, found := strings.Cut(c, "=")
			if !found {
				return nil, fmt.Errorf("conversion %q is not in the form name=tag", c)
			}
			if _, known := convert.Lookup(tag); !known {
				return nil, fmt.Errorf("%w: %q (valid: %s)",
					convert.ErrUnknownConversion, tag, strings.Join(convert.Tags(), ", "))
			}

			internal, err := name.New(rw).ToInternal(field)
			if err != nil {
				return nil, err
			}
			conv[internal] = convert.Named(tag)
		}
		opts = append(opts, limbs.WithConversions(conv))
	}

	return opts, nil
}

// open returns the named file or stdin when the path is "-".
func open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// load reads the record stored in the named file.
func load(path string) (*limbs.Record, []limbs.Option, error) {
	opts, err := options()
	if err != nil {
		return nil, nil, err
	}

	f, err := open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	rec, err := limbs.Load(f, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to load %s: %w", path, err)
	}
	return rec, opts, nil
}
