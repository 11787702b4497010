// qscript runs QScript programs: quantum-gate scripts with classical
// control flow, driven forward and backward one opcode at a time.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"qscript"
)

var (
	flagDebug = flag.Bool("debug", false, "log the position after each step batch to stderr")
	flagSteps = flag.Int("steps", 0, "forward-step budget (0 = unlimited)")
	flagQuiet = flag.Bool("quiet", false, "quiet mode (no banner)")
)

const (
	appName     = "qscript"
	historyFile = ".qscript_history"
	promptMain  = "qs> "
)

func main() {
	flag.Parse()

	logLevel := slog.LevelWarn
	if *flagDebug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	args := flag.Args()
	if len(args) > 0 {
		for _, filename := range args {
			if err := runFile(logger, filename); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		}
		return
	}

	runREPL(logger)
}

func runFile(logger *slog.Logger, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	return runSource(logger, string(data), filename)
}

func runSource(logger *slog.Logger, source, filename string) error {
	p := qscript.Compile(source)
	for _, d := range p.Errors {
		fmt.Fprintf(os.Stderr, "%s: %s\n", filename, d.String())
	}
	if p.Errors.HasFatal() {
		return fmt.Errorf("compile failed in %s", filename)
	}

	h := &cliHost{logger: logger}
	e := qscript.NewEngine(p, h)
	h.engine = e
	rl := qscript.NewRunLoop(e)
	h.runLoop = rl

	ctx := context.Background()
	steps := 0
	for !e.IsDone() {
		budget := rl.StepsPerTick
		if *flagSteps > 0 {
			if remaining := *flagSteps - steps; remaining < budget {
				budget = remaining
			}
			if budget <= 0 {
				return fmt.Errorf("step budget of %d exhausted", *flagSteps)
			}
		}
		rl.StepsPerTick = budget
		if err := rl.Tick(ctx); err != nil {
			return err
		}
		steps += budget
		logger.Debug("batch", "line", e.GetCurrentLine(), "func", e.CurrentFunc.Name)
		for _, d := range drainErrors(e) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", filename, d.String())
		}
	}
	return nil
}

// drainErrors returns diagnostics accumulated since the last call and
// clears them, so a long run doesn't re-report the same diagnostic.
func drainErrors(e *qscript.Engine) []qscript.Diagnostic {
	out := e.Errors
	e.Errors = nil
	return out
}

func runREPL(logger *slog.Logger) {
	if !*flagQuiet {
		printBanner()
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	var buf strings.Builder
	depth := 0
	for {
		prompt := promptMain
		if depth > 0 {
			prompt = "..> "
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}

		if depth == 0 {
			switch strings.TrimSpace(line) {
			case ":quit", ":q":
				return
			case ":help", ":h":
				printHelp()
				continue
			case "":
				continue
			}
		}

		depth += blockDelta(line)
		buf.WriteString(line)
		buf.WriteByte('\n')

		if depth > 0 {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(strings.TrimSpace(buf.String()), "\n", " "))
		if err := runSource(logger, buf.String(), "<repl>"); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		buf.Reset()
		depth = 0
	}
}

// blockDelta reports how a line shifts the open-block depth: +1 for a
// line opening a proc/for/if block, -1 for the matching endproc/endfor/
// endif, else 0. Mirrors the teacher's bracket-depth REPL tracking,
// generalized from "[" / "]" to this language's block keywords.
func blockDelta(line string) int {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0
	}
	switch fields[0] {
	case "proc", "for", "if":
		return 1
	case "endproc", "endfor", "endif":
		return -1
	default:
		return 0
	}
}

// cliHost implements qscript.HostCallbacks for a terminal session: Print
// goes to stdout, Delay adjusts a RunLoop if one is attached, and the
// visualization hints are logged rather than rendered, since this CLI has
// no viewer.
type cliHost struct {
	logger  *slog.Logger
	engine  *qscript.Engine
	runLoop *qscript.RunLoop
	out     *bufio.Writer
}

func (h *cliHost) writer() *bufio.Writer {
	if h.out == nil {
		h.out = bufio.NewWriter(os.Stdout)
	}
	return h.out
}

func (h *cliHost) Print(s string) {
	w := h.writer()
	fmt.Fprintln(w, s)
	w.Flush()
}

func (h *cliHost) Breakpoint() {
	h.logger.Info("breakpoint", "line", h.engine.GetCurrentLine(), "stack", h.engine.GetCurrentCallStack())
}

func (h *cliHost) Delay(ms int) error {
	if ms < 1 || ms > 10000 {
		return fmt.Errorf("delay %dms out of range [1,10000]", ms)
	}
	if h.runLoop != nil {
		h.runLoop.SetDelay(ms)
	}
	return nil
}

func (h *cliHost) Display(html string) {
	h.logger.Debug("display", "html", html)
}

func (h *cliHost) SetViewAngle(radians float64) {
	h.logger.Debug("set view angle", "radians", radians)
}

func (h *cliHost) SetViewMode(mode int) error {
	if mode < 0 || mode > 2 {
		return fmt.Errorf("view mode %d out of range [0,2]", mode)
	}
	h.logger.Debug("set view mode", "mode", mode)
	return nil
}

func printBanner() {
	fmt.Printf("%s REPL. Type :help for commands, :quit to exit.\n", appName)
}

func printHelp() {
	fmt.Print(`
Commands:
  :help, :h    Show this help
  :quit, :q    Exit

Each submission is compiled and run as its own program, so define a
proc and call it within the same block of input if it needs arguments
from that call.
`)
}
