// Command spvadce reads a SPIR-V binary module, runs aggressive
// dead-code elimination over it, and writes the transformed module
// back out.
//
// Usage:
//
//	spvadce [flags] <input.spv>
//
// Examples:
//
//	spvadce shader.spv                       # optimize, write the result to stdout
//	spvadce -o out.spv shader.spv             # optimize to a file
//	spvadce -c spvadce.toml shader.spv        # load target env / options from file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/spirvtools/adce"
	"github.com/gogpu/spirvtools/binary"
	"github.com/gogpu/spirvtools/config"
	"github.com/gogpu/spirvtools/diag"
	"github.com/gogpu/spirvtools/pass"
	"github.com/gogpu/spirvtools/validate"
)

// Exit codes, per the driver contract.
const (
	exitSuccess          = 0
	exitValidationError  = 1
	exitOptimizationFail = 2
	exitIOError          = 3
)

var rootCmd = &cobra.Command{
	Use:   "spvadce [flags] <input.spv>",
	Short: "Run aggressive dead-code elimination over a SPIR-V module",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	rootCmd.Flags().StringP("config", "c", "", "path to a TOML configuration file")
	rootCmd.Flags().Bool("skip-validate", false, "skip the structural validation pass before running ADCE")
	rootCmd.Flags().Bool("no-cache", false, "bypass the run summary cache")
	rootCmd.Flags().String("color", "auto", "colorize diagnostics (auto|on|off)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitIOError)
	}
}

func run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	inputPath := args[0]
	outputPath, _ := flags.GetString("output")
	configPath, _ := flags.GetString("config")
	skipValidate, _ := flags.GetBool("skip-validate")
	noCache, _ := flags.GetBool("no-cache")
	colorMode, _ := flags.GetString("color")

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitIOError)
		}
		cfg = loaded
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spvadce: reading %s: %v\n", inputPath, err)
		os.Exit(exitIOError)
	}

	printer := newDiagPrinter(os.Stderr, colorMode)

	cache, cacheErr := openRunCache()
	if cacheErr != nil {
		cache = nil // a broken cache directory degrades to "no cache", not a hard failure
	}
	key := digestKey(input, string(cfg.TargetEnv))
	if !noCache {
		if summary, hit, _ := cache.Get(key); hit {
			fmt.Fprintf(os.Stderr, "spvadce: cache hit (changed=%v, diagnostics=%d)\n", summary.Changed, summary.DiagnosticCount)
		}
	}

	collector := diag.NewCollector()
	reportAndCollect := diag.ConsumerFunc(func(d diag.Diagnostic) {
		collector.Report(d)
		printer.print(d)
	})

	m, err := binary.Read(input, cfg.TargetEnv.MaxVersion(), reportAndCollect)
	if err != nil {
		os.Exit(exitValidationError)
	}

	if !skipValidate {
		validate.Validate(m, reportAndCollect, validate.Options{
			RelaxLogicalPointer: cfg.Validator.RelaxLogicalPointer,
			SkipBlockLayout:     cfg.Validator.SkipBlockLayout,
		})
		if collector.HasErrors() {
			os.Exit(exitValidationError)
		}
	}

	mgr := pass.NewManager()
	mgr.AddPass(adce.New(adce.Options{ExtensionsAllowList: cfg.ADCE.ExtensionsAllowList}))
	status, err := mgr.Run(m)
	if err != nil || status == pass.Failure {
		fmt.Fprintf(os.Stderr, "spvadce: ADCE failed: %v\n", err)
		os.Exit(exitOptimizationFail)
	}

	output := binary.Write(m)
	if outputPath != "" {
		if err := os.WriteFile(outputPath, output, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "spvadce: writing %s: %v\n", outputPath, err)
			os.Exit(exitIOError)
		}
	} else {
		if _, err := os.Stdout.Write(output); err != nil {
			fmt.Fprintf(os.Stderr, "spvadce: writing stdout: %v\n", err)
			os.Exit(exitIOError)
		}
	}

	if !noCache {
		_ = cache.Put(key, Summary{
			Changed:         status.Changed(),
			DiagnosticCount: len(collector.All),
			OutputBytes:     len(output),
		})
	}

	return nil
}
