// Command calculator reads one arithmetic expression from stdin and prints
// "Result: <n>" to stdout. Invalid input prints "Error: <reason>" and exits 1.
//
// It is the default program calcgate spawns for every request.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/calcgate/pkg/adapters/exprlang"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout))
}

func run(in io.Reader, out io.Writer) int {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		fmt.Fprintf(out, "Error: %s\n", err)
		return 2
	}

	v, err := exprlang.Compute(line)
	if err != nil {
		fmt.Fprintf(out, "Error: %s\n", err)
		return 1
	}
	fmt.Fprintf(out, "Result: %s\n", exprlang.Format(v))
	return 0
}
