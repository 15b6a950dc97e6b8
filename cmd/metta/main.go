// SPDX-License-Identifier: Apache-2.0
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/eval"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/sexpr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func main() {
	strict := flag.Bool("strict", false, "warn on pattern mismatches and unbound body variables")
	intern := flag.Bool("intern", false, "wire-intern symbols across all spaces")
	logLevel := flag.String("log-level", "off", "hclog level for structured tracing (trace, debug, info, off)")
	inline := flag.String("e", "", "evaluate a single inline expression instead of a file")
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "metta",
		Level: hclog.LevelFromString(*logLevel),
	})
	env := environment.New(*strict, *intern, logger)

	switch {
	case *inline != "":
		runSource(env, "<-e>", *inline)
	case flag.NArg() == 1:
		path := flag.Arg(0)
		source, err := os.ReadFile(path)
		if err != nil {
			color.Red("metta: %s", err)
			os.Exit(1)
		}
		runSource(env, path, string(source))
	case flag.NArg() == 0:
		repl(env)
	default:
		fmt.Println("usage: metta [-strict] [-intern] [-log-level L] [-e expr | file.metta]")
		os.Exit(1)
	}
}

// runSource parses and runs a whole program, printing the result list of
// every top-level `!(e)` query in program order, per spec.md §6's
// Core-to-REPL contract.
func runSource(env *environment.Environment, path, source string) {
	forms, err := sexpr.Read(path, source)
	if err != nil {
		color.Red("metta: %s", err)
		os.Exit(1)
	}
	st := eval.NewState(env)
	eval.Run(forms, st)
	for _, results := range st.Output {
		printResults(results)
	}
}

func printResults(results []value.Value) {
	if len(results) == 0 {
		color.Yellow("Empty")
		return
	}
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.String()
	}
	line := strings.Join(parts, ", ")
	if results[0].IsError() {
		color.Red("%s", line)
		return
	}
	color.Green("%s", line)
}

const prompt = "metta> "

// repl implements spec.md §6's third entry point: a bufio.Scanner loop
// that reads one line at a time and runs every form on it against a persistent
// environment, following the teacher's repl.Start shape.
func repl(env *environment.Environment) {
	scanner := bufio.NewScanner(os.Stdin)
	st := eval.NewState(env)
	fmt.Print(prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print(prompt)
			continue
		}
		forms, err := sexpr.Read("<repl>", line)
		if err != nil {
			color.Red("metta: %s", err)
			fmt.Print(prompt)
			continue
		}
		before := len(st.Output)
		eval.Run(forms, st)
		for _, results := range st.Output[before:] {
			printResults(results)
		}
		fmt.Print(prompt)
	}
}
