// Command rxlex matches anchored regular expressions and tokenizes input
// with YAML rule files, reading streams incrementally.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/sys/cpu"
)

var log = commonlog.GetLogger("rxlex")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "rxlex",
		Short: "Anchored regex matching and tokenizing on streams",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
			// coregex picks its SIMD prefilters from the same feature bits.
			log.Debugf("cpu: avx2=%t sse42=%t", cpu.X86.HasAVX2, cpu.X86.HasSSE42)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newLexCmd())
	rootCmd.AddCommand(newCheckCmd())

	return rootCmd
}
