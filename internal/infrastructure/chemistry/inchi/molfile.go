package inchi

import (
	"fmt"
	"strings"

	"github.com/turtacn/computefp/internal/domain/molecule"
)

// maxV2000Atoms is the atom count limit of the V2000 counts line.
const maxV2000Atoms = 999

// WriteMolfile renders m as a V2000 molfile with kekulized bonds and every
// hydrogen written as an explicit atom, so the InChI program does not have
// to guess hydrogen counts.  Coordinates are all zero.
func WriteMolfile(m *molecule.Molecule) (string, error) {
	type molAtom struct {
		symbol  string
		charge  int
		isotope int
	}
	type molBond struct {
		a, b  int // 1-based
		order int
	}

	atoms := make([]molAtom, 0, len(m.Atoms))
	for _, a := range m.Atoms {
		atoms = append(atoms, molAtom{symbol: a.Symbol(), charge: a.Charge, isotope: a.Isotope})
	}
	bonds := make([]molBond, 0, len(m.Bonds))
	for _, b := range m.Bonds {
		if b.Order > molecule.BondTriple {
			return "", fmt.Errorf("bond %d-%d: order %d cannot be written to a molfile", b.Begin+1, b.End+1, b.Order)
		}
		bonds = append(bonds, molBond{a: b.Begin + 1, b: b.End + 1, order: int(b.Order)})
	}
	for _, a := range m.Atoms {
		for h := 0; h < a.HCount; h++ {
			atoms = append(atoms, molAtom{symbol: "H"})
			bonds = append(bonds, molBond{a: a.Index + 1, b: len(atoms), order: 1})
		}
	}
	if len(atoms) > maxV2000Atoms || len(bonds) > maxV2000Atoms {
		return "", fmt.Errorf("%d atoms and %d bonds exceed the molfile limit of %d", len(atoms), len(bonds), maxV2000Atoms)
	}

	var sb strings.Builder
	sb.WriteString("\n  computefp\n\n")
	fmt.Fprintf(&sb, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", len(atoms), len(bonds))
	for _, a := range atoms {
		fmt.Fprintf(&sb, "%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0\n", 0.0, 0.0, 0.0, a.symbol)
	}
	for _, b := range bonds {
		fmt.Fprintf(&sb, "%3d%3d%3d  0\n", b.a, b.b, b.order)
	}

	var charged, labelled []int
	for i, a := range atoms {
		if a.charge != 0 {
			charged = append(charged, i)
		}
		if a.isotope != 0 {
			labelled = append(labelled, i)
		}
	}
	writePropertyBlock(&sb, "CHG", charged, func(i int) int { return atoms[i].charge })
	writePropertyBlock(&sb, "ISO", labelled, func(i int) int { return atoms[i].isotope })
	sb.WriteString("M  END\n")
	return sb.String(), nil
}

// writePropertyBlock emits "M  XXX" lines with at most eight entries each.
func writePropertyBlock(sb *strings.Builder, tag string, atoms []int, value func(int) int) {
	for start := 0; start < len(atoms); start += 8 {
		end := start + 8
		if end > len(atoms) {
			end = len(atoms)
		}
		fmt.Fprintf(sb, "M  %s%3d", tag, end-start)
		for _, i := range atoms[start:end] {
			fmt.Fprintf(sb, " %3d %3d", i+1, value(i))
		}
		sb.WriteByte('\n')
	}
}

//Personal.AI order the ending
