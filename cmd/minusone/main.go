// Command minusone deobfuscates a PowerShell script and prints the
// result to stdout. It is a thin collaborator over the minusone library:
// no rule logic lives here, only argument parsing, I/O, and exit codes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/airbus-cert/minusone"
	"github.com/airbus-cert/minusone/internal/engine"
	"github.com/airbus-cert/minusone/internal/lang"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("minusone", flag.ContinueOnError)
	path := fs.String("path", "", "path to the PowerShell script to deobfuscate")
	dump := fs.Bool("dump", false, "print the raw parse tree instead of deobfuscating")
	verbose := fs.Bool("v", false, "log engine diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	file := *path
	if file == "" && fs.NArg() > 0 {
		file = fs.Arg(0)
	}

	source, err := readSource(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minusone: %v\n", err)
		return 1
	}

	if *dump {
		if err := dumpAST(os.Stdout, source); err != nil {
			fmt.Fprintf(os.Stderr, "minusone: %v\n", err)
			return 1
		}
		return 0
	}

	out, err := minusone.Deobfuscate(source, lang.Powershell)
	var budgetErr *engine.BudgetExceeded
	if err != nil && !errors.As(err, &budgetErr) {
		fmt.Fprintf(os.Stderr, "minusone: %v\n", err)
		return 1
	}
	if errors.As(err, &budgetErr) {
		fmt.Fprintf(os.Stderr, "minusone: warning: %v\n", err)
	}

	fmt.Fprintln(os.Stdout, out)
	return 0
}

func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
