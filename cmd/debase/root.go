package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	permissive bool
	configPath string
	patterns   []string
	ctorOnly   bool
	dtorOnly   bool

	output io.Writer
)

var rootCmd = &cobra.Command{
	Use:   "debase",
	Short: "Strip base-class ctor/dtor calls from marked C++ constructors and destructors",
	Long: `debase locates constructors and destructors whose C++ qualified
name matches a set of symbol patterns, and reports (or, with a real IR
reader wired in, rewrites) them.

This build exposes the pattern language, demangler adapters, and
matcher — the core the original tool applies to LLVM-IR modules — via
a small standalone driver. It reads no bitcode and writes no modules.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		output = cmd.OutOrStdout()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&permissive, "permissive", false, "downgrade fatal pattern/config errors to warnings")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a JSON pattern configuration file")
	rootCmd.PersistentFlags().StringArrayVar(&patterns, "pattern", nil, "add a raw symbol pattern (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&ctorOnly, "ctor", false, "bind --pattern values to the constructor set only")
	rootCmd.PersistentFlags().BoolVar(&dtorOnly, "dtor", false, "bind --pattern values to the destructor set only")

	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
