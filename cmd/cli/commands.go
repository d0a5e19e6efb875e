package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/scott-cotton/cli"

	"github.com/limaJavier/satmodeler/pkg/model"
	"github.com/limaJavier/satmodeler/pkg/modeler"
	"github.com/limaJavier/satmodeler/pkg/sat"
)

const usageText = `satmodeler compiles boolean models into DIMACS-CNF and solves them

Usage:
  satmodeler parse [file]                               Check a model
  satmodeler compile [-o out] [file]                    Print the DIMACS-CNF of a model
  satmodeler solve [-solver s] [-timeout t] [file]      Solve a model
  satmodeler dimacs [-solver s] [-timeout t] [file]     Solve a DIMACS-CNF file
  satmodeler examples [id]                              List the built-in models or print one
  satmodeler solvers                                    List the registered solvers

A missing file or "-" reads the standard input.
solve and dimacs exit with 10 when satisfiable, 20 when unsatisfiable and 124 on timeout.`

// Exit codes of solve and dimacs
var verdictExitCodes = map[sat.Verdict]int{
	sat.Sat:     10,
	sat.Unsat:   20,
	sat.Timeout: 124,
}

func Root() *cli.Command {
	return cli.NewCommand("satmodeler").
		WithSynopsis("satmodeler command [opts] [file]").
		WithDescription(usageText).
		WithSubs(
			ParseCommand(),
			CompileCommand(),
			SolveCommand(),
			DimacsCommand(),
			ExamplesCommand(),
			SolversCommand(),
		)
}

type parseConfig struct {
	*cli.Command
}

func ParseCommand() *cli.Command {
	cfg := &parseConfig{}
	return cli.NewCommandAt(&cfg.Command, "parse").
		WithSynopsis("parse [file] - Check a model without compiling it").
		WithRun(cfg.run)
}

func (cfg *parseConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	source, err := readInput(cc, args)
	if err != nil {
		return err
	}

	result := modeler.Parse(source)
	if !result.Valid {
		return fmt.Errorf("%v:%v: %v", result.Error.Line, result.Error.Col, result.Error.Message)
	}
	fmt.Fprintf(cc.Out, "Variables: %v\n", strings.Join(result.Variables, ", "))
	fmt.Fprintf(cc.Out, "Constraints: %v\n", result.Constraints)
	fmt.Fprintf(cc.Out, "Tokens: %v\n", result.Tokens)
	return nil
}

type compileConfig struct {
	*cli.Command
	Out string `cli:"name=o desc='file where the DIMACS-CNF is written (default stdout)'"`
}

func CompileCommand() *cli.Command {
	cfg := &compileConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "compile").
		WithSynopsis("compile [-o out] [file] - Print the DIMACS-CNF of a model").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *compileConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	source, err := readInput(cc, args)
	if err != nil {
		return err
	}

	result, err := modeler.Compile(source)
	if err != nil {
		return sourceError(err)
	}
	if cfg.Out == "" {
		_, err = io.WriteString(cc.Out, result.DIMACS)
		return err
	}
	if err := os.WriteFile(cfg.Out, []byte(result.DIMACS), 0666); err != nil {
		return fmt.Errorf("an error occurred while writing to the output file: %w", err)
	}
	fmt.Fprintln(cc.Out, result.Header)
	return nil
}

// solveOpts are shared by solve and dimacs
type solveOpts struct {
	Config  string `cli:"name=config desc='JSON or YAML config file (default config.json next to the executable)'"`
	Solver  string `cli:"name=solver desc='solver key or id (default from the config)'"`
	Timeout int    `cli:"name=timeout desc='timeout in seconds between 1 and 300 (default from the config)'"`
}

func (opts *solveOpts) registry() (*sat.Registry, error) {
	path := opts.Config
	if path == "" {
		path = sat.ConfigPath
	}
	config, err := sat.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return sat.NewRegistry(config), nil
}

type solveConfig struct {
	*cli.Command
	solveOpts
}

func SolveCommand() *cli.Command {
	cfg := &solveConfig{}
	opts, _ := cli.StructOpts(&cfg.solveOpts)
	return cli.NewCommandAt(&cfg.Command, "solve").
		WithSynopsis("solve [-solver s] [-timeout t] [-config c] [file] - Solve a model").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *solveConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	source, err := readInput(cc, args)
	if err != nil {
		return err
	}
	registry, err := cfg.registry()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	result, err := modeler.NewModeler(registry).Solve(ctx, modeler.SolveRequest{
		Source:         source,
		SolverID:       cfg.Solver,
		TimeoutSeconds: cfg.Timeout,
	})
	if err != nil {
		return sourceError(err)
	}

	printer := newPrinter(cc.Out)
	printer.verdict(result.Verdict, result.Solver, result.Duration)
	fmt.Fprintf(cc.Out, "Variables: %v\n", result.NumVariables)
	fmt.Fprintf(cc.Out, "Clauses: %v\n", result.NumClauses)
	if result.Verdict == sat.Sat {
		names := lo.Keys(result.Assignment)
		slices.Sort(names)
		for _, name := range names {
			printer.assignment(name, result.Assignment[name])
		}
	}
	stop()
	os.Exit(verdictExitCodes[result.Verdict])
	return nil
}

type dimacsConfig struct {
	*cli.Command
	solveOpts
}

func DimacsCommand() *cli.Command {
	cfg := &dimacsConfig{}
	opts, _ := cli.StructOpts(&cfg.solveOpts)
	return cli.NewCommandAt(&cfg.Command, "dimacs").
		WithSynopsis("dimacs [-solver s] [-timeout t] [-config c] [file] - Solve a DIMACS-CNF file").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *dimacsConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	source, err := readInput(cc, args)
	if err != nil {
		return err
	}
	instance, err := sat.ParseDIMACS(strings.NewReader(source))
	if err != nil {
		return err
	}
	registry, err := cfg.registry()
	if err != nil {
		return err
	}

	timeout := registry.Config().Timeout()
	if cfg.Timeout != 0 {
		if err := sat.ValidateTimeout(cfg.Timeout); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		timeout = sat.Config{TimeoutSeconds: cfg.Timeout}.Timeout()
	}
	solver, _, err := registry.Resolve(cfg.Solver)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	run, err := solver.Solve(ctx, instance)
	if err != nil {
		return err
	}

	printer := newPrinter(cc.Out)
	printer.verdict(run.Verdict, solver.Name(), run.Duration)
	if run.Verdict == sat.Sat {
		fmt.Fprintf(cc.Out, "v %v 0\n", strings.Join(lo.Map(run.Solution, func(literal int64, _ int) string { return fmt.Sprint(literal) }), " "))
	}
	cancel()
	stop()
	os.Exit(verdictExitCodes[run.Verdict])
	return nil
}

type examplesConfig struct {
	*cli.Command
}

func ExamplesCommand() *cli.Command {
	cfg := &examplesConfig{}
	return cli.NewCommandAt(&cfg.Command, "examples").
		WithSynopsis("examples [id] - List the built-in models or print the source of one").
		WithRun(cfg.run)
}

func (cfg *examplesConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}

	examples := modeler.NewModeler(sat.NewRegistry(sat.DefaultConfig())).Examples()
	if len(args) == 0 {
		for _, example := range examples {
			fmt.Fprintf(cc.Out, "%-20v %v\n", example.ID, example.Description)
		}
		return nil
	}

	example, ok := lo.Find(examples, func(example model.Example) bool { return example.ID == args[0] })
	if !ok {
		return fmt.Errorf("%w: unknown example %q", cli.ErrUsage, args[0])
	}
	_, err = io.WriteString(cc.Out, example.Source)
	return err
}

type solversConfig struct {
	*cli.Command
	Config string `cli:"name=config desc='JSON or YAML config file (default config.json next to the executable)'"`
}

func SolversCommand() *cli.Command {
	cfg := &solversConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "solvers").
		WithSynopsis("solvers [-config c] - List the registered solvers").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *solversConfig) run(cc *cli.Context, args []string) error {
	if _, err := cfg.Parse(cc, args); err != nil {
		return err
	}
	registry, err := (&solveOpts{Config: cfg.Config}).registry()
	if err != nil {
		return err
	}

	printer := newPrinter(cc.Out)
	for _, info := range registry.Solvers() {
		printer.solver(info, info.Key == registry.Config().DefaultSolver)
	}
	return nil
}

// readInput reads the file named by the first argument, or the standard input
func readInput(cc *cli.Context, args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected at most one file", cli.ErrUsage)
	}
	if len(args) == 0 || args[0] == "-" {
		bytes, err := io.ReadAll(cc.In)
		if err != nil {
			return "", fmt.Errorf("error reading: %w", err)
		}
		return string(bytes), nil
	}

	bytes, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("could not open %q: %w", args[0], err)
	}
	return string(bytes), nil
}

// sourceError prefixes errors located in the source with their line and column
func sourceError(err error) error {
	located := modeler.SourceErrorOf(err)
	if located.Line == 0 {
		return err
	}
	return fmt.Errorf("%v:%v: %w", located.Line, located.Col, err)
}
