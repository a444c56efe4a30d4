package molecule

import "context"

// MoleculeParser turns a line-level SMILES string into a molecule graph.
// Errors carry ErrCodeMoleculeInvalidSMILES and describe the problem.
type MoleculeParser interface {
	Parse(smiles string) (*Molecule, error)
}

// Fingerprinter computes the fixed-length fingerprint of a parsed molecule.
// Computation cannot fail once parsing has succeeded.
type Fingerprinter interface {
	Compute(m *Molecule) *Fingerprint
	Schema() *Schema
}

// IdentifierGenerator derives the InChI and InChIKey of a molecule.
// Molecule-level failures are reported through IdentifierResult.Status with
// a nil error; a non-nil error means the generator itself is unusable and
// the current file should be abandoned.
type IdentifierGenerator interface {
	Generate(ctx context.Context, m *Molecule) (IdentifierResult, error)
}

// GeneratorFactory creates the IdentifierGenerator used for one input file.
// Initialisation failures (missing toolkit) are returned as errors carrying
// ErrCodeToolkitUnavailable.
type GeneratorFactory interface {
	NewGenerator(ctx context.Context) (IdentifierGenerator, error)
}

// GeneratorFactoryFunc adapts a function to GeneratorFactory.
type GeneratorFactoryFunc func(ctx context.Context) (IdentifierGenerator, error)

// NewGenerator calls f.
func (f GeneratorFactoryFunc) NewGenerator(ctx context.Context) (IdentifierGenerator, error) {
	return f(ctx)
}

//Personal.AI order the ending
