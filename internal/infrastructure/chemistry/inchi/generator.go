// Package inchi generates InChI identifiers by piping molfiles through the
// IUPAC reference program (inchi-1).  No Go implementation of the InChI
// algorithm exists, so the program is treated as an external toolkit that
// must be installed alongside computefp.
package inchi

import (
	"bufio"
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/computefp/internal/domain/molecule"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
)

// Config selects the program and how it is invoked.
type Config struct {
	Binary  string
	Args    []string
	Timeout time.Duration
}

// Generator implements molecule.IdentifierGenerator for one resolved binary.
type Generator struct {
	path    string
	args    []string
	timeout time.Duration
	runner  Runner
	logger  logging.Logger
}

// NewGenerator returns a generator that runs the program at path.  Use
// Factory to resolve path from a configured binary name.
func NewGenerator(path string, cfg Config, runner Runner, logger logging.Logger) *Generator {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Generator{path: path, args: cfg.Args, timeout: cfg.Timeout, runner: runner, logger: logger}
}

// Generate implements molecule.IdentifierGenerator.  Problems with the
// molecule are reported in the result; only a failure to run the program at
// all (or cancellation of ctx) is returned as an error.
func (g *Generator) Generate(ctx context.Context, m *molecule.Molecule) (molecule.IdentifierResult, error) {
	mol, err := WriteMolfile(m)
	if err != nil {
		return molecule.IdentifierResult{Status: molecule.InChIError, Message: err.Error()}, nil
	}

	runCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := g.runner.Run(runCtx, g.path, g.args, []byte(mol))
	if err != nil {
		if ctx.Err() != nil {
			return molecule.IdentifierResult{}, ctx.Err()
		}
		if stderrors.Is(err, context.DeadlineExceeded) {
			return molecule.IdentifierResult{
				Status:  molecule.InChIError,
				Message: fmt.Sprintf("InChI generation timed out after %s", g.timeout),
			}, nil
		}
		return molecule.IdentifierResult{}, errors.Wrap(err, errors.ErrCodeToolkitUnavailable, "cannot run InChI program").
			WithDetail(g.path)
	}

	res := ParseOutput(out)
	if res.Status != molecule.InChIOK {
		g.logger.Debug("inchi program reported a problem",
			logging.String("smiles", m.SMILES),
			logging.String("status", res.Status.String()),
			logging.String("message", res.Message),
			logging.Int("exit_code", out.ExitCode))
	}
	return res, nil
}

// ParseOutput interprets the program's output.  The InChI and key are read
// from "InChI=" and "InChIKey=" lines.  A missing InChI or a non-zero exit
// code yields InChIError; any "Warning" log line yields InChIWarning with
// the warnings as message.
func ParseOutput(out Output) molecule.IdentifierResult {
	var res molecule.IdentifierResult
	var warnings, failures []string

	scan := func(data []byte) {
		sc := bufio.NewScanner(bytes.NewReader(data))
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			switch {
			case strings.HasPrefix(line, "InChIKey="):
				res.Key = strings.TrimPrefix(line, "InChIKey=")
			case strings.HasPrefix(line, "InChI="):
				if res.InChI == "" {
					res.InChI = line
				}
			case strings.HasPrefix(line, "Warning"):
				warnings = append(warnings, cleanLogLine(line))
			case strings.HasPrefix(line, "Error"):
				failures = append(failures, cleanLogLine(line))
			}
		}
	}
	scan(out.Stdout)
	scan(out.Stderr)

	switch {
	case out.ExitCode != 0 || res.InChI == "" || len(failures) > 0:
		res.Status = molecule.InChIError
		switch {
		case len(failures) > 0:
			res.Message = strings.Join(failures, "; ")
		case res.InChI == "":
			res.Message = "no InChI produced"
		default:
			res.Message = fmt.Sprintf("InChI program exited with status %d", out.ExitCode)
		}
	case len(warnings) > 0:
		res.Status = molecule.InChIWarning
		res.Message = strings.Join(warnings, "; ")
	default:
		res.Status = molecule.InChIOK
	}
	return res
}

// cleanLogLine drops the structure counter the program appends to log
// messages, e.g. "Warning (Charges were rearranged) structure #1.".
func cleanLogLine(line string) string {
	if i := strings.Index(line, " structure #"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

//Personal.AI order the ending
