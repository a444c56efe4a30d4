package convert

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/computefp/internal/domain/molecule"
	prominfra "github.com/turtacn/computefp/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/computefp/internal/testutil"
	"github.com/turtacn/computefp/pkg/errors"
	record "github.com/turtacn/computefp/pkg/types/molecule"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────────────────────

var ethanolID = molecule.IdentifierResult{
	Identifier: molecule.Identifier{
		InChI: "InChI=1S/C2H6O/c1-2-3/h3H,2H2,1H3",
		Key:   "LFQSCWFLJHTTHZ-UHFFFAOYSA-N",
	},
}

type fakeGenerator struct {
	results map[string]molecule.IdentifierResult
	failOn  string
	rejects string
	calls   int
}

func (g *fakeGenerator) Generate(ctx context.Context, m *molecule.Molecule) (molecule.IdentifierResult, error) {
	g.calls++
	if err := ctx.Err(); err != nil {
		return molecule.IdentifierResult{}, err
	}
	if g.failOn != "" && m.SMILES == g.failOn {
		return molecule.IdentifierResult{}, errors.New(errors.ErrCodeToolkitUnavailable, "cannot run InChI program")
	}
	if g.rejects != "" && m.SMILES == g.rejects {
		return molecule.IdentifierResult{}, errors.New(errors.ErrCodeMoleculeConversionFailed, "molecule rejected")
	}
	if r, ok := g.results[m.SMILES]; ok {
		return r, nil
	}
	return ethanolID, nil
}

type fakeSink struct {
	name     string
	mu       sync.Mutex
	records  []*record.Record
	flushes  int
	closed   bool
	writeErr error
	flushErr error
}

func (s *fakeSink) Name() string { return s.name }

func (s *fakeSink) Write(_ context.Context, rec *record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *fakeSink) Flush(context.Context) error {
	s.flushes++
	return s.flushErr
}

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}

type fakeExporter struct {
	exported []string
	runIDs   []string
	err      error
}

func (e *fakeExporter) Name() string { return "exporter" }

func (e *fakeExporter) Export(_ context.Context, runID, outputPath string) error {
	e.runIDs = append(e.runIDs, runID)
	e.exported = append(e.exported, outputPath)
	return e.err
}

func (e *fakeExporter) Close() error { return nil }

// ─────────────────────────────────────────────────────────────────────────────
// Harness
// ─────────────────────────────────────────────────────────────────────────────

type harness struct {
	conv      *Converter
	gen       *fakeGenerator
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	collector prominfra.MetricsCollector
	dir       string
}

func newHarness(t *testing.T, configure ...func(*Dependencies, *Options)) *harness {
	t.Helper()
	collector, err := prominfra.NewMetricsCollector(prominfra.CollectorConfig{Namespace: "computefp"}, nil)
	require.NoError(t, err)

	h := &harness{
		gen:       &fakeGenerator{results: map[string]molecule.IdentifierResult{}},
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		collector: collector,
		dir:       t.TempDir(),
	}
	deps := Dependencies{
		Parser:        molecule.NewSMILESParser(),
		Fingerprinter: molecule.NewKeyFingerprinter(molecule.DefaultSchema()),
		Generators: molecule.GeneratorFactoryFunc(func(context.Context) (molecule.IdentifierGenerator, error) {
			return h.gen, nil
		}),
		Metrics: prominfra.NewConversionMetrics(collector),
		Stdout:  h.stdout,
		Stderr:  h.stderr,
	}
	opts := Options{RunID: "run-1"}
	for _, fn := range configure {
		fn(&deps, &opts)
	}
	h.conv, err = NewConverter(deps, opts)
	require.NoError(t, err)
	return h
}

func (h *harness) write(t *testing.T, name, content string) string {
	t.Helper()
	return testutil.WriteFile(t, h.dir, name, content)
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func outputLines(t *testing.T, path string) []string {
	t.Helper()
	content := readOutput(t, path)
	if content == "" {
		return nil
	}
	require.True(t, strings.HasSuffix(content, "\n"))
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

func fingerprintOf(t *testing.T, smiles string) string {
	t.Helper()
	mol, err := molecule.NewSMILESParser().Parse(smiles)
	require.NoError(t, err)
	return molecule.NewKeyFingerprinter(molecule.DefaultSchema()).Compute(mol).String()
}

func (h *harness) counter(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := h.collector.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestNewConverter_RequiresCapabilities(t *testing.T) {
	_, err := NewConverter(Dependencies{}, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	_, err = NewConverter(Dependencies{
		Parser:        molecule.NewSMILESParser(),
		Fingerprinter: molecule.NewKeyFingerprinter(molecule.DefaultSchema()),
		Generators: molecule.GeneratorFactoryFunc(func(context.Context) (molecule.IdentifierGenerator, error) {
			return nil, nil
		}),
	}, Options{MaxLineBytes: -1})
	require.Error(t, err)
}

func TestNewConverter_Defaults(t *testing.T) {
	conv, err := NewConverter(Dependencies{
		Parser:        molecule.NewSMILESParser(),
		Fingerprinter: molecule.NewKeyFingerprinter(molecule.DefaultSchema()),
		Generators: molecule.GeneratorFactoryFunc(func(context.Context) (molecule.IdentifierGenerator, error) {
			return nil, nil
		}),
	}, Options{})
	require.NoError(t, err)
	assert.Len(t, conv.RunID(), 36)
	assert.Equal(t, DefaultSuffix, conv.opts.Suffix)
}

func TestConvertFile_OneRecordPerLine(t *testing.T) {
	h := newHarness(t)
	in := h.write(t, "in.smi", "CCO\nOCC\nC(O)C\n")

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, Summary{Path: in, Output: in + ".fp", Total: 3, Computed: 3, Outcome: OutcomeConverted}, s)
	assert.Equal(t, 0, s.Missing())

	fp := fingerprintOf(t, "CCO")
	lines := outputLines(t, in+".fp")
	require.Len(t, lines, 3)
	assert.Equal(t, "LFQSCWFLJHTTHZ\tInChI=1S/C2H6O/c1-2-3/h3H,2H2,1H3\tCCO\t"+fp, lines[0])
	assert.Equal(t, "LFQSCWFLJHTTHZ\tInChI=1S/C2H6O/c1-2-3/h3H,2H2,1H3\tOCC\t"+fp, lines[1])

	assert.Equal(t, "Write "+in+".fp\n"+
		"Computed fingerprints for 3 of 3 SMILES in file "+in+". 0 are missing.\n", h.stdout.String())
	assert.Empty(t, h.stderr.String())

	assert.Equal(t, 3.0, h.counter(t, "computefp_lines_total", nil))
	assert.Equal(t, 3.0, h.counter(t, "computefp_records_total", nil))
	assert.Equal(t, 1.0, h.counter(t, "computefp_files_total", map[string]string{"outcome": "converted"}))
}

func TestConvertFile_PrefixRoundTrip(t *testing.T) {
	h := newHarness(t)
	in := h.write(t, "in.smi", "myid\tCCO\nCCO\na\tb\tCCO\n")

	_, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)

	lines := outputLines(t, in+".fp")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "myid\tLFQSCWFLJHTTHZ\t"))
	assert.True(t, strings.HasPrefix(lines[1], "LFQSCWFLJHTTHZ\t"))
	assert.True(t, strings.HasPrefix(lines[2], "a\tb\tLFQSCWFLJHTTHZ\t"))
}

func TestConvertFile_StereoReducedTo2D(t *testing.T) {
	h := newHarness(t)
	h.gen.results["C[C@H](N)O"] = molecule.IdentifierResult{Identifier: molecule.Identifier{
		InChI: "InChI=1S/C2H7NO/c1-2(3)4/h2,4H,3H2,1H3/t2-/m0/s1",
		Key:   "UCSDIHJBGVLICC-REOHCLBHSA-N",
	}}
	in := h.write(t, "in.smi", "C[C@H](N)O\n")

	_, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)

	lines := outputLines(t, in+".fp")
	require.Len(t, lines, 1)
	fields := strings.Split(lines[0], "\t")
	require.Len(t, fields, 4)
	assert.Equal(t, "UCSDIHJBGVLICC", fields[0])
	assert.Equal(t, "InChI=1S/C2H7NO/c1-2(3)4/h2,4H,3H2,1H3", fields[1])
	assert.Equal(t, "C[C@H](N)O", fields[2])
}

func TestConvertFile_MalformedSMILESIsolated(t *testing.T) {
	h := newHarness(t)
	in := h.write(t, "in.smi", "CCO\nC1CC\nCCN\n")

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Computed)
	assert.Equal(t, 1, s.Missing())
	assert.Len(t, outputLines(t, in+".fp"), 2)
	assert.Equal(t, 2, h.gen.calls)

	assert.Equal(t, "Invalid SMILES: 'C1CC'\nunclosed ring bond 1 at position 1\nC1CC\n ^\n", h.stderr.String())
	assert.Equal(t, 1.0, h.counter(t, "computefp_line_failures_total", map[string]string{"reason": "invalid_smiles"}))
}

func TestConvertFile_EmptyLineIsMissing(t *testing.T) {
	h := newHarness(t)
	in := h.write(t, "in.smi", "CCO\n\nCCO\n")

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Computed)
	assert.Contains(t, h.stderr.String(), "Invalid SMILES: ''")
}

func TestConvertFile_InChIStatuses(t *testing.T) {
	h := newHarness(t)
	h.gen.results["[Fe]"] = molecule.IdentifierResult{Status: molecule.InChIError, Message: "Unknown element"}
	h.gen.results["C=C=C=C"] = molecule.IdentifierResult{
		Identifier: molecule.Identifier{InChI: "InChI=1S/C4H4/c1-3-4-2/h1-2H2", Key: "LGQJBMLBEXOKDQ-UHFFFAOYSA-N"},
		Status:     molecule.InChIWarning,
		Message:    "Accepted unusual valence(s)",
	}
	in := h.write(t, "in.smi", "[Fe]\nC=C=C=C\n")

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Computed)

	lines := outputLines(t, in+".fp")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "LGQJBMLBEXOKDQ\t"))

	assert.Equal(t, "Cannot compute InChI for instance '[Fe]'\n"+
		"C=C=C=C: Accepted unusual valence(s)\n", h.stderr.String())
	assert.Equal(t, 1.0, h.counter(t, "computefp_line_failures_total", map[string]string{"reason": "inchi_error"}))
	assert.Equal(t, 1.0, h.counter(t, "computefp_inchi_warnings_total", nil))
}

func TestConvertFile_ToolkitUnavailableAbandonsFile(t *testing.T) {
	h := newHarness(t, func(d *Dependencies, _ *Options) {
		d.Generators = molecule.GeneratorFactoryFunc(func(context.Context) (molecule.IdentifierGenerator, error) {
			return nil, errors.New(errors.ErrCodeToolkitUnavailable, "InChI program not found").WithDetail("inchi-1")
		})
	})
	in := h.write(t, "in.smi", "CCO\nCCO\n")

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAbandoned, s.Outcome)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, "", readOutput(t, in+".fp"))

	assert.Equal(t, "Error while loading InChI library.\n[MOL_016] InChI program not found: inchi-1\n", h.stderr.String())
	assert.Contains(t, h.stdout.String(), "Computed fingerprints for 0 of 0 SMILES in file "+in+". 0 are missing.")
	assert.Equal(t, 1.0, h.counter(t, "computefp_files_total", map[string]string{"outcome": "abandoned"}))
}

func TestConvertFile_GeneratorFailureKeepsPartialOutput(t *testing.T) {
	exporter := &fakeExporter{}
	h := newHarness(t, func(d *Dependencies, _ *Options) {
		d.Exporters = []FileExporter{exporter}
	})
	h.gen.failOn = "CCN"
	in := h.write(t, "in.smi", "CCO\nCCN\nCCO\n")

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAbandoned, s.Outcome)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Computed)
	assert.Len(t, outputLines(t, in+".fp"), 1)
	assert.Contains(t, h.stderr.String(), "Error while loading InChI library.")
	assert.Empty(t, exporter.exported)
}

func TestConvertFile_RecordLevelGeneratorErrorSkipsLine(t *testing.T) {
	h := newHarness(t)
	h.gen.rejects = "CCC"
	in := h.write(t, "in.smi", "CCO\nCCC\nCCN\n")

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, OutcomeConverted, s.Outcome)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Computed)
	assert.Len(t, outputLines(t, in+".fp"), 2)
	assert.Equal(t, "Cannot compute InChI for instance 'CCC'\n", h.stderr.String())
}

func TestRun_NonexistentPathSkipped(t *testing.T) {
	h := newHarness(t)
	good := h.write(t, "good.smi", "CCO\n")
	missing := filepath.Join(h.dir, "missing.smi")

	summaries, err := h.conv.Run(context.Background(), []string{missing, h.dir, good})
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	assert.Equal(t, good, summaries[0].Path)
	assert.NoFileExists(t, missing+".fp")
	assert.NoFileExists(t, h.dir+".fp")
	assert.FileExists(t, good+".fp")

	assert.Equal(t, "Cannot read file '"+missing+"'\nCannot read file '"+h.dir+"'\n", h.stderr.String())
	assert.Equal(t, 2.0, h.counter(t, "computefp_files_total", map[string]string{"outcome": "skipped"}))
}

func TestRun_PrintsDoneThenSummaries(t *testing.T) {
	h := newHarness(t)
	a := h.write(t, "a.smi", "CCO\nC1CC\n")
	b := h.write(t, "b.smi", "CCO\n")

	_, err := h.conv.Run(context.Background(), []string{a, b})
	require.NoError(t, err)

	reportA := "Computed fingerprints for 1 of 2 SMILES in file " + a + ". 1 are missing."
	reportB := "Computed fingerprints for 1 of 1 SMILES in file " + b + ". 0 are missing."
	assert.Equal(t, strings.Join([]string{
		"Write " + a + ".fp", reportA,
		"Write " + b + ".fp", reportB,
		"Done.", reportA, reportB,
	}, "\n")+"\n", h.stdout.String())
}

func TestRun_Idempotent(t *testing.T) {
	h := newHarness(t)
	in := h.write(t, "in.smi", "id1\tCCO\nbad(\nc1ccccc1O\n")

	_, err := h.conv.Run(context.Background(), []string{in})
	require.NoError(t, err)
	first := readOutput(t, in+".fp")

	_, err = h.conv.Run(context.Background(), []string{in})
	require.NoError(t, err)
	assert.Equal(t, first, readOutput(t, in+".fp"))
}

func TestRun_Cancelled(t *testing.T) {
	h := newHarness(t)
	in := h.write(t, "in.smi", "CCO\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.conv.Run(ctx, []string{in})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, h.stdout.String(), "Done.")
}

func TestConvertFile_LineEndings(t *testing.T) {
	h := newHarness(t)
	in := h.write(t, "in.smi", "CCO\r\nx\tCCN\rCCC")

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 3, s.Computed)

	lines := outputLines(t, in+".fp")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "\tCCO\t"+fingerprintOf(t, "CCO")))
	assert.True(t, strings.HasPrefix(lines[1], "x\t"))
	assert.NotContains(t, readOutput(t, in+".fp"), "\r")
}

func TestConvertFile_GzipInput(t *testing.T) {
	h := newHarness(t)
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("CCO\nCCN\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	in := h.write(t, "in.smi.gz", buf.String())

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Computed)
	assert.Equal(t, in+".fp", s.Output)
	assert.Len(t, outputLines(t, in+".fp"), 2)
}

func TestConvertFile_GzipDetectionDisabled(t *testing.T) {
	h := newHarness(t, func(_ *Dependencies, o *Options) { o.DisableGzip = true })
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte("CCO\n"))
	require.NoError(t, zw.Close())
	in := h.write(t, "in.smi.gz", buf.String())

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Computed)
	assert.Greater(t, s.Total, 0)
}

func TestConvertFile_MaxLineBytes(t *testing.T) {
	h := newHarness(t, func(_ *Dependencies, o *Options) { o.MaxLineBytes = 8 })
	in := h.write(t, "in.smi", "CCO\n"+strings.Repeat("C", 20)+"\nCCN\n")

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Computed)
	assert.Equal(t, "Line 2 of '"+in+"' is longer than 8 bytes\n", h.stderr.String())
}

func TestConvertFile_Suffix(t *testing.T) {
	h := newHarness(t, func(_ *Dependencies, o *Options) { o.Suffix = ".tsv" })
	in := h.write(t, "in.smi", "CCO\n")

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in+".tsv", s.Output)
	assert.FileExists(t, in+".tsv")
}

func TestConvertFile_SinksReceiveRecords(t *testing.T) {
	sink := &fakeSink{name: "kafka"}
	exporter := &fakeExporter{}
	h := newHarness(t, func(d *Dependencies, _ *Options) {
		d.Sinks = []RecordSink{sink}
		d.Exporters = []FileExporter{exporter}
	})
	h.conv.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }
	in := h.write(t, "in.smi", "id\tCCO\nC1CC\nCCO\n")

	_, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, sink.records, 2)
	rec := sink.records[0]
	assert.Equal(t, "run-1", rec.RunID)
	assert.Equal(t, in, rec.SourceFile)
	assert.Equal(t, 1, rec.LineNumber)
	assert.Equal(t, "id\t", rec.Prefix)
	assert.Equal(t, "CCO", rec.SMILES)
	assert.Equal(t, molecule.SchemaVersion, rec.SchemaVersion)
	assert.Equal(t, molecule.DefaultSchema().Size(), rec.FingerprintBits)
	assert.Equal(t, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), rec.CreatedAt)
	assert.Equal(t, 3, sink.records[1].LineNumber)

	// The record renders exactly the line written to the file.
	assert.Equal(t, readOutput(t, in+".fp"), rec.Line()+sink.records[1].Line())

	assert.Equal(t, 1, sink.flushes)
	assert.Equal(t, []string{in + ".fp"}, exporter.exported)
	assert.Equal(t, []string{"run-1"}, exporter.runIDs)

	require.NoError(t, h.conv.Close())
	assert.True(t, sink.closed)
}

func TestConvertFile_SinkFailuresDoNotChangeOutput(t *testing.T) {
	sink := &fakeSink{name: "postgres", writeErr: stderrors.New("connection reset"), flushErr: stderrors.New("broken pipe")}
	exporter := &fakeExporter{err: stderrors.New("bucket missing")}
	log := testutil.NewRecordingLogger()
	h := newHarness(t, func(d *Dependencies, _ *Options) {
		d.Sinks = []RecordSink{sink}
		d.Exporters = []FileExporter{exporter}
		d.Logger = log
	})
	in := h.write(t, "in.smi", "CCO\nCCN\n")

	s, err := h.conv.ConvertFile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, OutcomeConverted, s.Outcome)
	assert.Equal(t, 2, s.Computed)
	assert.Len(t, outputLines(t, in+".fp"), 2)

	assert.Equal(t, "Generic I/O failure in postgres sink: connection reset\n"+
		"Generic I/O failure in postgres sink: connection reset\n"+
		"Generic I/O failure in postgres sink: broken pipe\n"+
		"Generic I/O failure in exporter sink: bucket missing\n", h.stderr.String())
	assert.Equal(t, 3.0, h.counter(t, "computefp_sink_errors_total", map[string]string{"sink": "postgres"}))
	assert.Equal(t, 1.0, h.counter(t, "computefp_sink_errors_total", map[string]string{"sink": "exporter"}))

	e, ok := log.Find("error", "Record sink failed")
	require.True(t, ok)
	assert.Equal(t, "postgres", e.Fields["sink"])
	assert.Equal(t, in, e.Fields["file"])
	assert.Equal(t, "run-1", e.Fields["run_id"])
}

func TestPrintInfo(t *testing.T) {
	h := newHarness(t)
	h.conv.PrintInfo()

	schema := molecule.DefaultSchema()
	lines := strings.Split(strings.TrimSuffix(h.stdout.String(), "\n"), "\n")
	require.Len(t, lines, schema.Size())
	for i, p := range schema.Properties() {
		idx, desc, ok := strings.Cut(lines[i], "\t")
		require.True(t, ok)
		assert.Equal(t, strings.TrimSpace(idx), idx)
		assert.Equal(t, p.Description, desc)
	}
	assert.True(t, strings.HasPrefix(lines[0], "0\t"))
}

func TestRun_InfoPrintedInPlace(t *testing.T) {
	h := newHarness(t)
	in := h.write(t, "in.smi", "CCO\n")

	summaries, err := h.conv.Run(context.Background(), []string{in, "--information"})
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	out := h.stdout.String()
	report := "Computed fingerprints for 1 of 1 SMILES in file " + in + ". 0 are missing.\n"
	info := strings.Index(out, report+"0\t")
	require.GreaterOrEqual(t, info, 0, out)
	assert.Less(t, info, strings.Index(out, "Done.\n"))
	assert.True(t, strings.HasSuffix(out, "Done.\n"+report))
	assert.NoFileExists(t, filepath.Join(h.dir, "--information.fp"))
}

func TestRun_InfoAloneStops(t *testing.T) {
	h := newHarness(t)

	summaries, err := h.conv.Run(context.Background(), []string{"--info"})
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.Equal(t, molecule.DefaultSchema().Size(), strings.Count(h.stdout.String(), "\n"))
	assert.NotContains(t, h.stdout.String(), "Done.")
	assert.Empty(t, h.stderr.String())
}

func TestIsInfoArgument(t *testing.T) {
	assert.True(t, IsInfoArgument("--info"))
	assert.True(t, IsInfoArgument("--infos"))
	assert.False(t, IsInfoArgument("-info"))
	assert.False(t, IsInfoArgument("a.smi"))
}

//Personal.AI order the ending
