package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/javapoet/declfile"
)

func newImportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imports <decl.yaml>",
		Short: "Print the imports a declaration file needs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			f, err := declfile.Load(args[0])
			if err != nil {
				return err
			}
			cfg.apply(f)

			imports, err := f.Imports()
			if err != nil {
				return errors.Wrapf(err, "collect imports of %s", args[0])
			}
			out := cmd.OutOrStdout()
			for _, signature := range f.StaticImports {
				fmt.Fprintf(out, "import static %s;\n", signature)
			}
			for _, name := range imports {
				fmt.Fprintf(out, "import %s;\n", name)
			}
			return nil
		},
	}
	return cmd
}
