// Package molecule defines the record Data Transfer Object shared by the
// converter and every record sink.  No domain logic lives here, only plain
// data types that are safe to import from any layer.
package molecule

import (
	"strconv"
	"strings"
	"time"
)

// Record is one converted input line.  The tab-separated output line is
// derived from it by Line; sinks serialise it as they see fit.
type Record struct {
	// RunID identifies the converter invocation that produced the record.
	RunID string `json:"run_id"`

	// SourceFile is the input path as given on the command line.
	SourceFile string `json:"source_file"`

	// LineNumber is the 1-based line number in SourceFile.
	LineNumber int `json:"line_number"`

	// Prefix is everything up to and including the last tab of the input
	// line; empty when the line had no tab.
	Prefix string `json:"prefix,omitempty"`

	// InChIKey2D is the connectivity block of the InChIKey.
	InChIKey2D string `json:"inchikey_2d"`

	// InChI2D is the InChI without stereo and isotope layers.
	InChI2D string `json:"inchi_2d"`

	// SMILES is the input text exactly as read.
	SMILES string `json:"smiles"`

	// Fingerprint lists the indices of set schema properties in increasing
	// order.
	Fingerprint []int `json:"fingerprint"`

	// FingerprintBits is the schema size.
	FingerprintBits int `json:"fingerprint_bits"`

	// PackedFingerprint is the fingerprint packed MSB-first into bytes.
	PackedFingerprint []byte `json:"-"`

	// SchemaVersion names the fingerprint schema.
	SchemaVersion string `json:"schema_version"`

	// CreatedAt is when the record was produced.
	CreatedAt time.Time `json:"created_at"`
}

// FingerprintCSV renders the fingerprint indices comma-separated.
func (r *Record) FingerprintCSV() string {
	var sb strings.Builder
	for i, idx := range r.Fingerprint {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}

// Line renders the record as written to the .fp file, including the
// trailing newline:
//
//	prefix + InChIKey2D \t InChI2D \t SMILES \t fingerprint \n
func (r *Record) Line() string {
	var sb strings.Builder
	sb.Grow(len(r.Prefix) + len(r.InChIKey2D) + len(r.InChI2D) + len(r.SMILES) + 4*len(r.Fingerprint) + 4)
	sb.WriteString(r.Prefix)
	sb.WriteString(r.InChIKey2D)
	sb.WriteByte('\t')
	sb.WriteString(r.InChI2D)
	sb.WriteByte('\t')
	sb.WriteString(r.SMILES)
	sb.WriteByte('\t')
	sb.WriteString(r.FingerprintCSV())
	sb.WriteByte('\n')
	return sb.String()
}

// ID returns the identity sinks deduplicate on: the run, file and line that
// produced the record.  Converting the same file again yields new IDs.
func (r *Record) ID() string {
	return r.RunID + ":" + r.SourceFile + ":" + strconv.Itoa(r.LineNumber)
}

//Personal.AI order the ending
