// Command zephyrc drives the compile/check/print-mir subcommands over the
// core passes in internal/pipeline. Rebuilt on cobra/pflag (SPEC_FULL §10)
// in place of the teacher's hand-rolled cmd/ailang/main.go flag.FlagSet
// parsing, since a `-v names,types,constraints,typed-types,mir` multi-value
// trace flag is a natural pflag.StringSlice and the three verbs read better
// as subcommands than as a single positional-arg switch.
//
// Scanning/tokenizing and syntactic parsing are explicit external
// collaborators (spec.md §1: "Explicitly OUT OF SCOPE ... the
// scanner/tokenizer, the pure syntactic parser ... only their interfaces
// are specified where the core touches them"). This binary's Loader hook is
// that interface boundary: it turns a file path into an *ast.File. No
// parser is implemented here — that would mean inventing surface grammar
// spec.md deliberately does not define.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/config"
	"github.com/zephyr-lang/zephyrc/internal/errors"
	"github.com/zephyr-lang/zephyrc/internal/module"
	"github.com/zephyr-lang/zephyrc/internal/pipeline"
	"github.com/zephyr-lang/zephyrc/internal/store"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// Loader turns a source path into a resolved-ready AST. Overridable by
// embedders that bring their own lexer/parser; the stock binary has none
// (spec.md §1 treats the parser as an external collaborator).
var Loader = func(path string) (*ast.File, error) {
	return nil, fmt.Errorf("zephyrc: no parser configured; %s was not loaded (spec.md §1: the scanner/parser are external collaborators, not implemented by this core)", path)
}

var (
	configPath string
	traceModes []string
)

func main() {
	root := &cobra.Command{
		Use:   "zephyrc",
		Short: "Zephyr compiler front-end/middle-end driver",
	}
	// cobra.Command.PersistentFlags returns the underlying *pflag.FlagSet;
	// StringSliceVarP (repeatable comma-separated -v values) is pflag's own
	// API, not one cobra re-exposes under a different name.
	var flags *pflag.FlagSet = root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to zephyr.yaml manifest")
	flags.StringSliceVarP(&traceModes, "verbose", "v", nil,
		"comma-separated trace modes: names,types,constraints,typed-types,mir")

	root.AddCommand(compileCmd(), checkCmd(), printMIRCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Manifest, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func pipelineConfig(moduleName string) (pipeline.Config, error) {
	manifest, err := loadConfig()
	if err != nil {
		return pipeline.Config{}, err
	}

	modes := traceModes
	if len(modes) == 0 {
		modes = manifest.Trace // fall back to the manifest's default -v value
	}

	cfg := pipeline.Config{ModuleName: moduleName, Module: store.ModuleID(1)}
	for _, mode := range modes {
		switch mode {
		case "names":
			cfg.DumpNames = true
		case "types":
			cfg.DumpTypeVars = true
		case "constraints":
			cfg.DumpConstraints = true
		case "typed-types":
			cfg.DumpTypedTypes = true
		case "mir":
			cfg.DumpMIR = true
		default:
			return pipeline.Config{}, fmt.Errorf("unrecognized trace mode %q", mode)
		}
	}
	return cfg, nil
}

func compileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <file>",
		Short: "Run the full pipeline (resolve, check, validate asm, lower) and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(args[0], true)
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Run the full pipeline (including lowering) and report diagnostics, without the export summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(args[0], false)
		},
	}
}

func printMIRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print-mir <file>",
		Short: "Compile and print the lowered MIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			traceModes = append(traceModes, "mir")
			return runPipeline(args[0], true)
		},
	}
}

func runPipeline(path string, wantMIR bool) error {
	file, err := Loader(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error"), err)
		os.Exit(1)
	}

	cfg, err := pipelineConfig(moduleNameFor(path))
	if err != nil {
		return err
	}

	sink := errors.NewMemorySink(map[string]string{})
	res := pipeline.Run(cfg, file, sink)

	if sink.HasErrors() {
		printReports(sink.Reports())
		os.Exit(1)
	}

	fmt.Printf("%s %s: no errors\n", green("✓"), path)
	for mode, dump := range res.Trace {
		fmt.Printf("\n%s %s\n%s\n", cyan("→"), mode, dump)
	}
	if wantMIR && res.Iface != nil {
		fmt.Printf("\n%s %d public declaration(s) exported\n", yellow("i"), len(res.Iface.Exports))
	}
	return nil
}

// moduleNameFor derives the module identity the namespace map and iface
// export key on (spec.md §6) from a source path, via the project/stdlib
// path-resolution rules module.Resolver already implements.
func moduleNameFor(path string) string {
	identity, err := module.NewResolver().GetModuleIdentity(path)
	if err != nil {
		return path
	}
	return identity
}

func printReports(reports []*errors.Report) {
	fmt.Fprintf(os.Stderr, "%s %d diagnostic(s):\n", red("Error"), len(reports))
	for _, r := range reports {
		fmt.Fprintf(os.Stderr, "  %s [%s/%s] %s\n", red("•"), r.Phase, r.Code, r.Message)
	}
}
