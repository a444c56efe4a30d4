package convert

import (
	"context"

	record "github.com/turtacn/computefp/pkg/types/molecule"
)

// RecordSink receives every record written to an output file.  Sinks may
// buffer; Flush is called at the end of each file and Close once at the end
// of the run.
type RecordSink interface {
	Name() string
	Write(ctx context.Context, rec *record.Record) error
	Flush(ctx context.Context) error
	Close() error
}

// FileExporter receives each output file once it is complete.
type FileExporter interface {
	Name() string
	Export(ctx context.Context, runID, outputPath string) error
	Close() error
}

// writeSinks hands rec to every sink.  Failures are reported and do not stop
// the remaining sinks.
func (c *Converter) writeSinks(ctx context.Context, rec *record.Record) {
	for _, s := range c.sinks {
		if err := s.Write(ctx, rec); err != nil {
			c.sinkFailed(s.Name(), rec.SourceFile, err)
		}
	}
}

func (c *Converter) flushSinks(ctx context.Context, path string) {
	for _, s := range c.sinks {
		if err := s.Flush(ctx); err != nil {
			c.sinkFailed(s.Name(), path, err)
		}
	}
}

func (c *Converter) export(ctx context.Context, path, output string) {
	for _, e := range c.exporters {
		if err := e.Export(ctx, c.runID, output); err != nil {
			c.sinkFailed(e.Name(), path, err)
		}
	}
}

//Personal.AI order the ending
