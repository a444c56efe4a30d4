package convert

import "fmt"

// Outcome classifies how a file argument was handled.
type Outcome string

const (
	// OutcomeConverted means every line was read.
	OutcomeConverted Outcome = "converted"
	// OutcomeSkipped means the argument was not a readable regular file and
	// no output was created.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeAbandoned means processing stopped early; the counts cover the
	// lines handled before that.
	OutcomeAbandoned Outcome = "abandoned"
)

// Summary holds the counts of one processed file.
type Summary struct {
	Path     string
	Output   string
	Total    int
	Computed int
	Outcome  Outcome
}

// Missing is the number of lines that did not produce a record.
func (s Summary) Missing() int {
	return s.Total - s.Computed
}

// String renders the report line printed after the file and again at the end
// of the run.
func (s Summary) String() string {
	return fmt.Sprintf("Computed fingerprints for %d of %d SMILES in file %s. %d are missing.",
		s.Computed, s.Total, s.Path, s.Missing())
}

//Personal.AI order the ending
