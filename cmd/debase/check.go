package main

import (
	"fmt"
	"strings"

	"github.com/ninefold/debase/internal/demangle"
	"github.com/spf13/cobra"
)

var checkFile string

var checkCmd = &cobra.Command{
	Use:   "check <mangled-symbol>...",
	Short: "Demangle each symbol and report its ctor/dtor admissibility against the configured patterns",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFile, "file", "", "input filename used to resolve {file.*} / {this.*} pattern properties")
}

func runCheck(cmd *cobra.Command, args []string) error {
	m, _, err := buildMatcher()
	if err != nil {
		return err
	}
	if warnings := m.SetFilename(checkFile); len(warnings) > 0 && !permissive {
		return warnings[0]
	}

	var features demangle.Features
	for _, sym := range args {
		kind := classify(sym, &features)
		if kind == demangle.Invalid {
			fmt.Fprintf(output, "%s: invalid\n", sym)
			continue
		}

		verdict := "skip"
		if m.Match(&features) {
			verdict = "debase"
		}
		fmt.Fprintf(output, "%s: kind=%s scope=%s variant=%d -> %s\n",
			sym, kind, strings.Join(features.ScopeNames(), "::"), features.Variant, verdict)
	}
	return nil
}

// classify autodetects the ABI by mangling prefix and runs the
// matching Classifier. Itanium symbols begin with "_Z"; everything
// else is tried against the Microsoft scheme.
func classify(sym string, out *demangle.Features) demangle.Kind {
	if strings.HasPrefix(sym, "_Z") {
		return demangle.Itanium{}.Classify(sym, out)
	}
	return demangle.MSVC{}.Classify(sym, out)
}
