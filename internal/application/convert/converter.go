// Package convert implements the batch converter: for each input file it
// reads SMILES lines and writes one record per convertible line to
// <file>.fp, reporting problems on the error stream and a per-file summary
// on the output stream.
package convert

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/turtacn/computefp/internal/domain/molecule"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	prominfra "github.com/turtacn/computefp/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/computefp/pkg/errors"
	record "github.com/turtacn/computefp/pkg/types/molecule"
)

// DefaultSuffix is appended to the input path to name the output file.
const DefaultSuffix = ".fp"

// ─────────────────────────────────────────────────────────────────────────────
// Construction
// ─────────────────────────────────────────────────────────────────────────────

// Dependencies are the collaborators of a Converter.  Parser, Fingerprinter
// and Generators are required.
type Dependencies struct {
	Parser        molecule.MoleculeParser
	Fingerprinter molecule.Fingerprinter
	Generators    molecule.GeneratorFactory

	Sinks     []RecordSink
	Exporters []FileExporter
	Metrics   *prominfra.ConversionMetrics
	Logger    logging.Logger

	// Stdout receives progress and summaries, Stderr the per-line and
	// per-file diagnostics.  They default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Options tune input and output handling.
type Options struct {
	// Suffix names the output file; DefaultSuffix when empty.
	Suffix string
	// DisableGzip reads compressed inputs as plain text.
	DisableGzip bool
	// MaxLineBytes makes longer lines count as missing; 0 means no limit.
	MaxLineBytes int
	// RunID tags records sent to sinks; a random UUID when empty.
	RunID string
}

// Converter runs the conversion loop.  It is not safe for concurrent use.
type Converter struct {
	parser        molecule.MoleculeParser
	fingerprinter molecule.Fingerprinter
	generators    molecule.GeneratorFactory
	sinks         []RecordSink
	exporters     []FileExporter
	metrics       *prominfra.ConversionMetrics
	logger        logging.Logger
	stdout        io.Writer
	stderr        io.Writer
	opts          Options
	runID         string
	now           func() time.Time
}

// NewConverter validates deps and fills in defaults.
func NewConverter(deps Dependencies, opts Options) (*Converter, error) {
	if deps.Parser == nil {
		return nil, errors.InvalidParam("converter requires a molecule parser")
	}
	if deps.Fingerprinter == nil {
		return nil, errors.InvalidParam("converter requires a fingerprinter")
	}
	if deps.Generators == nil {
		return nil, errors.InvalidParam("converter requires an identifier generator factory")
	}
	if opts.MaxLineBytes < 0 {
		return nil, errors.InvalidParam("max line bytes must not be negative")
	}
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	c := &Converter{
		parser:        deps.Parser,
		fingerprinter: deps.Fingerprinter,
		generators:    deps.Generators,
		sinks:         deps.Sinks,
		exporters:     deps.Exporters,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
		opts:          opts,
		runID:         opts.RunID,
		now:           time.Now,
	}
	if c.logger == nil {
		c.logger = logging.Default()
	}
	c.logger = c.logger.With(logging.String("run_id", c.runID))
	if c.stdout == nil {
		c.stdout = os.Stdout
	}
	if c.stderr == nil {
		c.stderr = os.Stderr
	}
	if c.metrics == nil {
		collector, err := prominfra.NewMetricsCollector(prominfra.CollectorConfig{Namespace: "computefp"}, c.logger)
		if err != nil {
			return nil, err
		}
		c.metrics = prominfra.NewConversionMetrics(collector)
	}
	return c, nil
}

// RunID identifies this converter's records in sinks.
func (c *Converter) RunID() string {
	return c.runID
}

// ─────────────────────────────────────────────────────────────────────────────
// Run
// ─────────────────────────────────────────────────────────────────────────────

// PrintInfo writes "index<TAB>description" for every fingerprint property.
func (c *Converter) PrintInfo() {
	w := bufio.NewWriter(c.stdout)
	for _, p := range c.fingerprinter.Schema().Properties() {
		fmt.Fprintf(w, "%d\t%s\n", p.Index, p.Description)
	}
	w.Flush()
}

// IsInfoArgument reports whether arg asks for the property list instead of
// naming an input file.
func IsInfoArgument(arg string) bool {
	return strings.HasPrefix(arg, "--info")
}

// Run handles every argument in order: an info argument prints the property
// list in place, anything else is converted as an input path.  A lone info
// argument prints the list and nothing else.  After the last argument it
// prints "Done." followed by the summaries of all processed files; skipped
// paths have no summary.  The only error returned is cancellation of ctx, in
// which case "Done." is not printed.
func (c *Converter) Run(ctx context.Context, args []string) ([]Summary, error) {
	summaries := make([]Summary, 0, len(args))
	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		if IsInfoArgument(arg) {
			c.PrintInfo()
			if len(args) == 1 {
				return summaries, nil
			}
			continue
		}
		s, err := c.ConvertFile(ctx, arg)
		if s.Outcome != OutcomeSkipped {
			summaries = append(summaries, s)
		}
		if err != nil {
			return summaries, err
		}
	}

	fmt.Fprintln(c.stdout, "Done.")
	for _, s := range summaries {
		fmt.Fprintln(c.stdout, s.String())
	}
	return summaries, nil
}

// Close releases every sink and exporter.
func (c *Converter) Close() error {
	var errs []error
	for _, s := range c.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	for _, e := range c.exporters {
		if err := e.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
		}
	}
	return stderrors.Join(errs...)
}

// ─────────────────────────────────────────────────────────────────────────────
// Per file
// ─────────────────────────────────────────────────────────────────────────────

// ConvertFile converts one input file and prints its summary.  Problems with
// the file are reported and reflected in the summary's Outcome; the error is
// non-nil only when ctx was cancelled.
func (c *Converter) ConvertFile(ctx context.Context, path string) (Summary, error) {
	s := Summary{Path: path, Outcome: OutcomeConverted}
	log := c.logger.With(logging.String("file", path))

	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		c.report("Cannot read file '%s'", path)
		log.Warn("Skipping input", logging.Err(err))
		s.Outcome = OutcomeSkipped
		c.metrics.FileFinished(string(s.Outcome))
		return s, nil
	}

	s.Output = path + c.opts.Suffix
	fmt.Fprintf(c.stdout, "Write %s\n", s.Output)
	started := c.now()

	runErr := c.convert(ctx, path, &s, log)
	if runErr != nil {
		s.Outcome = OutcomeAbandoned
	}

	c.flushSinks(context.WithoutCancel(ctx), path)
	if s.Outcome == OutcomeConverted {
		c.export(ctx, path, s.Output)
	}

	fmt.Fprintln(c.stdout, s.String())
	c.metrics.FileFinished(string(s.Outcome))
	log.Info("Finished input",
		logging.String("outcome", string(s.Outcome)),
		logging.Int("total", s.Total),
		logging.Int("computed", s.Computed),
		logging.Duration("elapsed", c.now().Sub(started)),
	)

	if ctxErr := ctx.Err(); ctxErr != nil && stderrors.Is(runErr, ctxErr) {
		return s, ctxErr
	}
	return s, nil
}

// convert does the I/O of one file.  A non-nil error means the file was
// abandoned; it has already been reported.
func (c *Converter) convert(ctx context.Context, path string, s *Summary, log logging.Logger) (err error) {
	out, err := os.Create(s.Output)
	if err != nil {
		c.report("Cannot write file '%s': %v", s.Output, err)
		return err
	}
	w := bufio.NewWriter(out)
	defer func() {
		if ferr := w.Flush(); ferr != nil && err == nil {
			c.report("Cannot write file '%s': %v", s.Output, ferr)
			err = ferr
		}
		if cerr := out.Close(); cerr != nil && err == nil {
			c.report("Cannot write file '%s': %v", s.Output, cerr)
			err = cerr
		}
	}()

	in, err := openInput(path, !c.opts.DisableGzip)
	if err != nil {
		c.report("Cannot read file '%s': %v", path, err)
		return err
	}
	defer in.Close()

	gen, err := c.generators.NewGenerator(ctx)
	if err != nil {
		c.reportToolkitFailure(err)
		log.Error("Identifier generator unavailable", logging.Err(err))
		return err
	}

	lines := newLineReader(in, c.opts.MaxLineBytes)
	for lineNo := 1; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, tooLong, rerr := lines.Next()
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			c.report("Cannot read file '%s': %v", path, rerr)
			log.Error("Input read failed", logging.Int("line", lineNo), logging.Err(rerr))
			return rerr
		}

		s.Total++
		c.metrics.LineRead()
		if tooLong {
			c.report("Line %d of '%s' is longer than %d bytes", lineNo, path, c.opts.MaxLineBytes)
			continue
		}

		rec, err := c.convertLine(ctx, gen, path, lineNo, line, log)
		if err != nil {
			if ctx.Err() == nil {
				c.reportToolkitFailure(err)
				code := errors.GetCode(err)
				log.Error("Identifier generator failed",
					logging.Int("line", lineNo),
					logging.String("code", code.String()),
					logging.String("category", errors.DefaultMessageForCode(code)),
					logging.Err(err),
				)
			}
			return err
		}
		if rec == nil {
			continue
		}

		if _, err := w.WriteString(rec.Line()); err != nil {
			c.report("Cannot write file '%s': %v", s.Output, err)
			return err
		}
		s.Computed++
		c.metrics.RecordWritten()
		c.writeSinks(ctx, rec)
	}
}

// convertLine turns one line into a record.  A nil record with a nil error
// means the line was reported and skipped.
func (c *Converter) convertLine(ctx context.Context, gen molecule.IdentifierGenerator, path string, lineNo int, line string, log logging.Logger) (*record.Record, error) {
	timer := c.metrics.StartLine()
	defer timer.ObserveDuration()

	prefix, smiles := SplitLine(line)

	mol, err := c.parser.Parse(smiles)
	if err != nil {
		c.reportInvalidSMILES(smiles, err)
		c.metrics.LineFailed(prominfra.ReasonInvalidSMILES)
		log.Debug("Invalid SMILES", logging.Int("line", lineNo), logging.Err(err))
		return nil, nil
	}

	fp := c.fingerprinter.Compute(mol)

	res, err := gen.Generate(ctx, mol)
	if err != nil {
		if !errors.IsRecordLevel(err) {
			return nil, err
		}
		res = molecule.IdentifierResult{Status: molecule.InChIError, Message: err.Error()}
	}
	switch {
	case !res.Usable():
		c.report("Cannot compute InChI for instance '%s'", smiles)
		c.metrics.LineFailed(prominfra.ReasonInChIError)
		log.Debug("InChI generation failed",
			logging.Int("line", lineNo),
			logging.String("message", res.Message),
		)
		return nil, nil
	case res.Status == molecule.InChIWarning:
		c.report("%s: %s", smiles, res.Message)
		c.metrics.InChIWarning()
	}

	return &record.Record{
		RunID:             c.runID,
		SourceFile:        path,
		LineNumber:        lineNo,
		Prefix:            prefix,
		InChIKey2D:        res.Key2D(),
		InChI2D:           res.InChI2D(),
		SMILES:            smiles,
		Fingerprint:       fp.Indices(),
		FingerprintBits:   fp.Len(),
		PackedFingerprint: fp.PackedBytes(),
		SchemaVersion:     c.fingerprinter.Schema().Version,
		CreatedAt:         c.now().UTC(),
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Diagnostics
// ─────────────────────────────────────────────────────────────────────────────

func (c *Converter) report(format string, args ...interface{}) {
	fmt.Fprintf(c.stderr, format+"\n", args...)
}

func (c *Converter) reportInvalidSMILES(smiles string, err error) {
	c.report("Invalid SMILES: '%s'", smiles)
	var syn *molecule.SyntaxError
	if stderrors.As(err, &syn) {
		c.report("%s", syn.Error())
		c.report("%s", syn.Caret())
		return
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Detail != "" {
		c.report("%s", appErr.Detail)
		return
	}
	c.report("%v", err)
}

func (c *Converter) reportToolkitFailure(err error) {
	c.report("Error while loading InChI library.")
	c.report("%v", err)
}

func (c *Converter) sinkFailed(name, path string, err error) {
	c.report("Generic I/O failure in %s sink: %v", name, err)
	c.metrics.SinkFailed(name)
	c.logger.Error("Record sink failed",
		logging.String("sink", name),
		logging.String("file", path),
		logging.Err(err),
	)
}

//Personal.AI order the ending
