// Package molecule holds the molecular graph model used by computefp: atoms
// and bonds parsed from SMILES, ring perception, the versioned structural-key
// fingerprint schema, and the InChI identifier value types.  Chemistry that
// cannot reasonably be done in-process (InChI generation) is reached through
// the capability interfaces in interfaces.go.
package molecule

import "fmt"

// ─────────────────────────────────────────────────────────────────────────────
// Bonds
// ─────────────────────────────────────────────────────────────────────────────

// BondOrder is the multiplicity of a bond.  Aromatic bonds carry a Kekulé
// order (single or double) once the molecule is kekulized; the aromatic flag
// is kept on the Bond itself.
type BondOrder uint8

const (
	BondSingle    BondOrder = 1
	BondDouble    BondOrder = 2
	BondTriple    BondOrder = 3
	BondQuadruple BondOrder = 4
)

// BondStereo records the directional single-bond markers of SMILES.
type BondStereo uint8

const (
	StereoNone BondStereo = iota
	StereoUp              // '/'
	StereoDown            // '\'
)

// Bond connects two atoms.  Begin and End are atom indices in SMILES order.
type Bond struct {
	Index    int
	Begin    int
	End      int
	Order    BondOrder
	Aromatic bool
	Stereo   BondStereo

	// InRing and SmallestRing are filled by ring perception.  SmallestRing is
	// zero for acyclic bonds.
	InRing       bool
	SmallestRing int
}

// Other returns the atom index at the far end of b from atom.
func (b *Bond) Other(atom int) int {
	if b.Begin == atom {
		return b.End
	}
	return b.Begin
}

// ─────────────────────────────────────────────────────────────────────────────
// Atoms
// ─────────────────────────────────────────────────────────────────────────────

// Atom is a vertex of the molecular graph.  Hydrogens written in brackets or
// implied by the organic subset are stored as HCount rather than as vertices;
// hydrogens written as separate atoms ([H]) remain vertices.
type Atom struct {
	Index     int
	Element   int // atomic number; 0 for the wildcard "*"
	Aromatic  bool
	Charge    int
	Isotope   int // mass number, 0 when unspecified
	HCount    int
	Bracket   bool
	Chirality string // "@", "@@", "@TH1", ... or empty
	Class     int
	InRing    bool
}

// Symbol returns the element symbol of the atom.
func (a *Atom) Symbol() string {
	return ElementSymbol(a.Element)
}

// ─────────────────────────────────────────────────────────────────────────────
// Molecule
// ─────────────────────────────────────────────────────────────────────────────

// Molecule is the graph produced by parsing one SMILES string.  It is owned by
// the processing of a single input line and is not safe for concurrent
// mutation.
type Molecule struct {
	SMILES string
	Atoms  []*Atom
	Bonds  []*Bond

	adjacency [][]int // atom index → bond indices
	rings     [][]int
	fragments int
}

// NewMolecule returns an empty molecule for the given source text.
func NewMolecule(smiles string) *Molecule {
	return &Molecule{SMILES: smiles}
}

// AddAtom appends a copy of a and returns its index.
func (m *Molecule) AddAtom(a Atom) int {
	a.Index = len(m.Atoms)
	m.Atoms = append(m.Atoms, &a)
	m.adjacency = append(m.adjacency, nil)
	return a.Index
}

// AddBond connects atoms i and j.  It fails when either index is out of range,
// when i == j, or when the atoms are already bonded.
func (m *Molecule) AddBond(i, j int, order BondOrder, aromatic bool, stereo BondStereo) (*Bond, error) {
	if i < 0 || j < 0 || i >= len(m.Atoms) || j >= len(m.Atoms) {
		return nil, fmt.Errorf("bond %d-%d references a missing atom", i, j)
	}
	if i == j {
		return nil, fmt.Errorf("atom %d cannot bond to itself", i)
	}
	if m.BondBetween(i, j) != nil {
		return nil, fmt.Errorf("atoms %d and %d are already bonded", i, j)
	}
	b := &Bond{Index: len(m.Bonds), Begin: i, End: j, Order: order, Aromatic: aromatic, Stereo: stereo}
	m.Bonds = append(m.Bonds, b)
	m.adjacency[i] = append(m.adjacency[i], b.Index)
	m.adjacency[j] = append(m.adjacency[j], b.Index)
	return b, nil
}

// BondsOf returns the bonds incident to atom i.
func (m *Molecule) BondsOf(i int) []*Bond {
	out := make([]*Bond, 0, len(m.adjacency[i]))
	for _, bi := range m.adjacency[i] {
		out = append(out, m.Bonds[bi])
	}
	return out
}

// Neighbors returns the atom indices bonded to atom i.
func (m *Molecule) Neighbors(i int) []int {
	out := make([]int, 0, len(m.adjacency[i]))
	for _, bi := range m.adjacency[i] {
		out = append(out, m.Bonds[bi].Other(i))
	}
	return out
}

// BondBetween returns the bond joining i and j, or nil.
func (m *Molecule) BondBetween(i, j int) *Bond {
	if i < 0 || i >= len(m.adjacency) {
		return nil
	}
	for _, bi := range m.adjacency[i] {
		if m.Bonds[bi].Other(i) == j {
			return m.Bonds[bi]
		}
	}
	return nil
}

// Degree is the number of explicit neighbours of atom i.
func (m *Molecule) Degree(i int) int {
	return len(m.adjacency[i])
}

// BondOrderSum is the sum of the (Kekulé) bond orders at atom i.
func (m *Molecule) BondOrderSum(i int) int {
	sum := 0
	for _, bi := range m.adjacency[i] {
		sum += int(m.Bonds[bi].Order)
	}
	return sum
}

// TotalHCount is the number of hydrogens on atom i, counting both the
// implicit count and explicit hydrogen neighbours.
func (m *Molecule) TotalHCount(i int) int {
	n := m.Atoms[i].HCount
	for _, j := range m.Neighbors(i) {
		if m.Atoms[j].Element == elemH {
			n++
		}
	}
	return n
}

// HeavyAtomCount counts atoms other than hydrogen.
func (m *Molecule) HeavyAtomCount() int {
	n := 0
	for _, a := range m.Atoms {
		if a.Element != elemH {
			n++
		}
	}
	return n
}

// CountElement counts atoms with atomic number z.
func (m *Molecule) CountElement(z int) int {
	n := 0
	for _, a := range m.Atoms {
		if a.Element == z {
			n++
		}
	}
	return n
}

// FragmentCount is the number of connected components.
func (m *Molecule) FragmentCount() int {
	return m.fragments
}

// Rings returns the perceived rings as atom index cycles.
func (m *Molecule) Rings() [][]int {
	return m.rings
}

// countFragments labels connected components with an iterative DFS.
func (m *Molecule) countFragments() int {
	seen := make([]bool, len(m.Atoms))
	n := 0
	for start := range m.Atoms {
		if seen[start] {
			continue
		}
		n++
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range m.Neighbors(cur) {
				if !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
	}
	return n
}

//Personal.AI order the ending
