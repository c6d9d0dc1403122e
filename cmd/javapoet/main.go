package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("javapoet.cmd")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose int

	rootCmd := &cobra.Command{
		Use:          "javapoet",
		Short:        "Generate Java source files from declaration files",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// 2 is warnings; each -v adds a level up to debug.
			commonlog.Configure(2+verbose, nil)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log more (repeat for more detail)")
	addConfigFlags(rootCmd)

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newImportsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
