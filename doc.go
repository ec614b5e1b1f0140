/*
Package calcgate is a small HTTP gateway in front of an external calculator.

It accepts an arithmetic expression, hands it to an Evaluator (by default a
"./calculator" process that reads one line from stdin), scrapes the first
"Result: <number>" line from the text it prints, and answers with JSON.

# Concept

The evaluator is opaque. calcgate never interprets arithmetic itself; it only
recognizes a result in the evaluator's output. Anything else, whether a syntax
error, a crash or truncated output, becomes the single "Invalid expression"
error. The exit status is logged and counted but does not affect the answer.

Evaluators are pluggable (see pkg/ports):

  - pkg/adapters/process: spawns one process per expression.
  - pkg/adapters/exprlang: evaluates in-process with expr-lang/expr.
  - pkg/adapters/static: canned output for tests.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/calcgate"
		"github.com/aretw0/calcgate/pkg/adapters/process"
	)

	func main() {
		calc := calcgate.New(process.NewRunner("./calculator"))

		outcome, err := calc.Calculate(context.Background(), "3 + 4")
		if err != nil {
			log.Fatal(err) // the calculator could not be started
		}
		if outcome.OK() {
			fmt.Println(*outcome.Result)
		} else {
			fmt.Println(outcome.Error)
		}
	}

The same Calculator backs the HTTP server (pkg/adapters/http), the MCP tool
(pkg/adapters/mcp) and the command line (cmd/calcgate).
*/
package calcgate
