package prometheus

// Label values used by ConversionMetrics.
const (
	ReasonInvalidSMILES = "invalid_smiles"
	ReasonInChIError    = "inchi_error"

	OutcomeConverted = "converted"
	OutcomeSkipped   = "skipped"
	OutcomeAbandoned = "abandoned"
)

// DefaultLineDurationBuckets spans sub-millisecond parses up to multi-second
// InChI runs.
var DefaultLineDurationBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ConversionMetrics holds the counters of a conversion run.
type ConversionMetrics struct {
	LinesTotal         CounterVec
	RecordsTotal       CounterVec
	LineFailuresTotal  CounterVec
	InChIWarningsTotal CounterVec
	FilesTotal         CounterVec
	SinkErrorsTotal    CounterVec
	CacheLookupsTotal  CounterVec
	LineDuration       HistogramVec

	collector MetricsCollector
}

// NewConversionMetrics registers all metrics with collector.
func NewConversionMetrics(collector MetricsCollector) *ConversionMetrics {
	m := &ConversionMetrics{collector: collector}

	m.LinesTotal = collector.RegisterCounter("lines_total", "Input lines read")
	m.RecordsTotal = collector.RegisterCounter("records_total", "Records written to output files")
	m.LineFailuresTotal = collector.RegisterCounter("line_failures_total", "Lines skipped", "reason")
	m.InChIWarningsTotal = collector.RegisterCounter("inchi_warnings_total", "InChI warnings reported for written records")
	m.FilesTotal = collector.RegisterCounter("files_total", "Input files by outcome", "outcome")
	m.SinkErrorsTotal = collector.RegisterCounter("sink_errors_total", "Record sink and exporter failures", "sink")
	m.CacheLookupsTotal = collector.RegisterCounter("cache_lookups_total", "Identifier cache lookups", "tier", "result")
	m.LineDuration = collector.RegisterHistogram("line_duration_seconds", "Time spent converting one line", DefaultLineDurationBuckets)

	return m
}

func (m *ConversionMetrics) LineRead() {
	m.LinesTotal.WithLabelValues().Inc()
}

func (m *ConversionMetrics) RecordWritten() {
	m.RecordsTotal.WithLabelValues().Inc()
}

func (m *ConversionMetrics) LineFailed(reason string) {
	m.LineFailuresTotal.WithLabelValues(reason).Inc()
}

func (m *ConversionMetrics) InChIWarning() {
	m.InChIWarningsTotal.WithLabelValues().Inc()
}

func (m *ConversionMetrics) FileFinished(outcome string) {
	m.FilesTotal.WithLabelValues(outcome).Inc()
}

func (m *ConversionMetrics) SinkFailed(sink string) {
	m.SinkErrorsTotal.WithLabelValues(sink).Inc()
}

// ObserveCacheLookup lets ConversionMetrics serve as the identifier cache
// observer.
func (m *ConversionMetrics) ObserveCacheLookup(tier, result string) {
	m.CacheLookupsTotal.WithLabelValues(tier, result).Inc()
}

// StartLine returns a timer for one line; call ObserveDuration when done.
func (m *ConversionMetrics) StartLine() *Timer {
	return NewTimer(m.LineDuration.WithLabelValues())
}

// WriteToTextfile exports the current values; see MetricsCollector.
func (m *ConversionMetrics) WriteToTextfile(path string) error {
	return m.collector.WriteToTextfile(path)
}

//Personal.AI order the ending
