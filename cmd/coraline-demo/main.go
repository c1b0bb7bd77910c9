package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/funvibe/coraline/internal/config"
	"github.com/mattn/go-isatty"
)

// colorer mirrors the teacher's own terminal-capability guard
// (isatty.IsTerminal / IsCygwinTerminal before emitting ANSI escapes):
// color is only applied when stdout is actually a terminal, never when
// piped to a file or another process.
type colorer struct{ enabled bool }

func newColorer() colorer {
	fd := os.Stdout.Fd()
	return colorer{enabled: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

func (c colorer) wrap(code, s string) string {
	if !c.enabled {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func (c colorer) ok(s string) string   { return c.wrap("32", s) }
func (c colorer) fail(s string) string { return c.wrap("31", s) }
func (c colorer) title(s string) string { return c.wrap("1", s) }

func main() {
	testMode := flag.Bool("test", false, "normalize fresh-variable names for deterministic output")
	configPath := flag.String("config", "", "path to a SolverOptions YAML file (default: built-in defaults)")
	flag.Parse()

	config.IsTestMode = *testMode

	if *configPath != "" {
		opts, err := config.LoadSolverOptions(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "coraline-demo: %v\n", err)
			os.Exit(1)
		}
		solverOpts = opts
	}

	col := newColorer()
	fmt.Println(col.title(fmt.Sprintf("coraline %s", config.Version)))

	report := func(title string, result fmt.Stringer, err error) {
		fmt.Println(col.title(title))
		if err != nil {
			fmt.Printf("  %s: %v\n\n", col.fail("error"), err)
			return
		}
		fmt.Printf("  %s: %v\n\n", col.ok("type"), result)
	}

	t, err := scenarioSelfAppliedIdentity()
	report("self-applied identity: let id = fun x -> x in id id", t, err)

	cyc, err := scenarioSelfApplicationCycle(false)
	report("self-application without rectypes: fun x -> x x", cyc, err)

	mu, err := scenarioSelfApplicationCycle(true)
	report("self-application with rectypes: fun x -> x x", mu, err)

	k, err := scenarioKCombinator()
	report("K-combinator double instantiation: (k id) id", k, err)

	_, err = scenarioUnbound()
	report("unbound identifier", nil, err)

	intTy, boolTy, err := scenarioPolyLet()
	if err != nil {
		report("polymorphic let: id used at Int and at Bool", nil, err)
	} else {
		fmt.Println(col.title("polymorphic let: id used at Int and at Bool"))
		fmt.Printf("  %s: %v, %v\n\n", col.ok("types"), intTy, boolTy)
	}

	aliasBool, aliasInt, err := scenarioLetAlias()
	if err != nil {
		report("let alias: g = f, used at Bool and at Int", nil, err)
	} else {
		fmt.Println(col.title("let alias: g = f, used at Bool and at Int"))
		fmt.Printf("  %s: %v, %v\n\n", col.ok("types"), aliasBool, aliasInt)
	}

	err = scenarioTypeMismatch()
	reportErrOnly(col, "type mismatch: Int vs Bool", err)
}

func reportErrOnly(col colorer, title string, err error) {
	fmt.Println(col.title(title))
	if err != nil {
		fmt.Printf("  %s: %v\n\n", col.fail("error"), err)
		return
	}
	fmt.Printf("  %s\n\n", col.ok("no error (unexpected)"))
}
