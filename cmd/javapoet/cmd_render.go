package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/javapoet/declfile"
	"github.com/dhamidi/javapoet/format"
)

func newRenderCmd() *cobra.Command {
	var outputDir string
	var formatName string

	cmd := &cobra.Command{
		Use:   "render <decl.yaml>...",
		Short: "Render declaration files as Java source",
		Long: `Render each declaration file as a Java source file.

By default the source is written to stdout. With -o, each file is written
below the given source root, in the directory of its package.

--format selects the output: java (source), json (source plus imports and
a summary of the type) or line (a tab-separated outline).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if outputDir != "" && formatName != "java" {
				return errors.Newf("-o writes Java source, not %s", formatName)
			}
			enc, err := format.NewEncoder(formatName, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			for _, path := range args {
				f, err := declfile.Load(path)
				if err != nil {
					return err
				}
				cfg.apply(f)

				if outputDir != "" {
					written, err := f.WriteToDir(outputDir)
					if err != nil {
						return errors.Wrapf(err, "render %s", path)
					}
					fmt.Fprintln(cmd.ErrOrStderr(), written)
					continue
				}
				if err := enc.Encode(f); err != nil {
					return errors.Wrapf(err, "render %s", path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "source root to write files into")
	cmd.Flags().StringVarP(&formatName, "format", "f", "java",
		"output format ("+strings.Join(format.Names, "|")+")")

	return cmd
}
