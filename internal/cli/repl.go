package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/calcgate/internal/presentation/tui"
	"github.com/aretw0/calcgate/pkg/domain"
	"github.com/aretw0/calcgate/pkg/ports"
)

const helpMarkdown = `# calcgate

Type an arithmetic expression and press **Enter**.

| Command    | Meaning                                |
|------------|----------------------------------------|
| :help      | show this help                         |
| :history   | recent calculations (journal required) |
| :quit      | leave                                  |
`

// Calculator is what the command line needs from calcgate.
type Calculator interface {
	Calculate(ctx context.Context, expression string) (domain.Outcome, error)
}

// REPLOptions configures RunREPL.
type REPLOptions struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool // prompt, banner and colors when true; one JSON line per input otherwise
	Version     string
	Journal     ports.Journal
	Renderer    func(string) (string, error)
}

// RunREPL reads one expression per line until EOF, :quit or ctx is done.
func RunREPL(ctx context.Context, calc Calculator, opts REPLOptions) error {
	if opts.Renderer == nil {
		opts.Renderer = tui.NewRenderer()
	}
	if opts.Interactive {
		tui.PrintBanner(opts.Out, opts.Version)
		fmt.Fprintln(opts.Out, "Type :help for commands.")
	}

	scanner := bufio.NewScanner(opts.In)
	for {
		if ctx.Err() != nil {
			return nil
		}
		if opts.Interactive {
			fmt.Fprint(opts.Out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		// Piped lines reach the evaluator verbatim; only the prompt trims them.
		line := scanner.Text()
		if opts.Interactive {
			line = strings.TrimSpace(line)
		}

		switch {
		case isQuit(line, opts.Interactive):
			if opts.Interactive {
				fmt.Fprintln(opts.Out, "Bye!")
			}
			return nil
		case line == ":help":
			rendered, err := opts.Renderer(helpMarkdown)
			if err != nil {
				rendered = helpMarkdown
			}
			fmt.Fprint(opts.Out, rendered)
			continue
		case line == ":history":
			printHistory(ctx, opts)
			continue
		case line == "" && opts.Interactive:
			continue
		}

		outcome, err := calc.Calculate(ctx, line)
		if err != nil {
			if !opts.Interactive {
				return err
			}
			fmt.Fprintln(opts.Out, tui.Outcome("error: "+err.Error(), false))
			continue
		}

		if opts.Interactive {
			fmt.Fprintln(opts.Out, styleOutcome(outcome))
		} else if err := WriteOutcome(opts.Out, outcome); err != nil {
			return err
		}
	}
}

// isQuit reports whether line ends the session. The bare words exit and quit
// only count at the prompt; piped, they are expressions like any other.
func isQuit(line string, interactive bool) bool {
	switch line {
	case ":quit", ":q":
		return true
	case "exit", "quit":
		return interactive
	}
	return false
}

// WriteOutcome prints the outcome as one JSON line, the same body POST /calculate returns.
func WriteOutcome(w io.Writer, outcome domain.Outcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func styleOutcome(o domain.Outcome) string {
	if o.OK() {
		return tui.Outcome("= "+strconv.FormatFloat(*o.Result, 'f', -1, 64), true)
	}
	return tui.Outcome(o.Error, false)
}

func printHistory(ctx context.Context, opts REPLOptions) {
	if opts.Journal == nil {
		fmt.Fprintln(opts.Out, domain.ErrJournalDisabled.Error())
		return
	}
	recs, err := opts.Journal.Recent(ctx, 10)
	if err != nil {
		fmt.Fprintf(opts.Out, "history unavailable: %v\n", err)
		return
	}
	for _, rec := range recs {
		fmt.Fprintf(opts.Out, "%s  %-24s %s\n", rec.CreatedAt.Format("15:04:05"), rec.Expression, styleOutcome(rec.Outcome))
	}
}
