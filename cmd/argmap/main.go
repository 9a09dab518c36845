// Command argmap parses key=value command-line arguments into a nested
// configuration, prints the result, and optionally saves it to a file.
//
// Program flags must come before the first argument token; everything after
// it passes through untouched, so bare -key negative flags work:
//
//	argmap model.layers=12 train.lr=1e-4 save -verbose
//	argmap --defaults base.yaml --out run.json batch_size=64
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"argmap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		defaultsPaths []string
		strict        bool
		allowOverwr   bool
		noEnv         bool
		freeze        bool
		sortKeys      bool
		outPath       string
		overwriteOut  bool
	)

	cmd := &cobra.Command{
		Use:   "argmap [flags] [key=value | flag | -flag]...",
		Short: "Parse dotted key=value arguments into a nested configuration",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := argmap.NewBuilder().
				WithArgs(args).
				WithStrict(strict).
				WithAllowOverwrites(allowOverwr).
				WithParseEnv(!noEnv).
				WithFreeze(freeze)
			if len(defaultsPaths) > 0 {
				b = b.WithDefaults(defaultsPaths)
			}
			d, err := b.Build()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), d.Pretty(sortKeys))

			if outPath != "" {
				written, err := d.Save(outPath, overwriteOut)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "saved to", written)
			}
			return nil
		},
	}

	// Stop flag parsing at the first argument token so -key negative
	// flags reach the argument parser instead of pflag.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().StringSliceVar(&defaultsPaths, "defaults", nil, "defaults file(s), later files override earlier ones")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject argument keys absent from the defaults")
	cmd.Flags().BoolVar(&allowOverwr, "allow-overwrites", false, "let repeated keys overwrite earlier values")
	cmd.Flags().BoolVar(&noEnv, "no-env", false, "disable $VAR substitution in values")
	cmd.Flags().BoolVar(&freeze, "freeze", false, "freeze the parsed configuration")
	cmd.Flags().BoolVar(&sortKeys, "sort", false, "print keys alphabetically")
	cmd.Flags().StringVar(&outPath, "out", "", "save the parsed configuration to this file")
	cmd.Flags().BoolVar(&overwriteOut, "force", false, "overwrite the output file if it exists")

	return cmd
}
