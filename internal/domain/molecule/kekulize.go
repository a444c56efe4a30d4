package molecule

import (
	"fmt"
	"sort"

	"github.com/turtacn/computefp/pkg/errors"
)

// maxKekuleSteps bounds the matching search on pathological inputs.
const maxKekuleSteps = 1 << 20

// kekulize assigns single and double orders to aromatic bonds so that every
// aromatic atom that needs a pi bond gets exactly one double bond.  Aromatic
// flags are preserved.  It fails when no such assignment exists, as for
// "c1cccc1".
func kekulize(m *Molecule) error {
	needs := make([]bool, len(m.Atoms))
	pending := false
	for i, a := range m.Atoms {
		if a.Aromatic && needsDoubleBond(m, i) {
			needs[i] = true
			pending = true
		}
	}
	// Aromatic bonds default to single; matched ones become double below.
	for _, b := range m.Bonds {
		if b.Aromatic {
			b.Order = BondSingle
		}
	}
	if !pending {
		return nil
	}

	// candidates[i] lists aromatic bonds from i to another atom needing a double bond.
	candidates := make([][]*Bond, len(m.Atoms))
	var atoms []int
	for i := range m.Atoms {
		if !needs[i] {
			continue
		}
		atoms = append(atoms, i)
		for _, b := range m.BondsOf(i) {
			if b.Aromatic && needs[b.Other(i)] {
				candidates[i] = append(candidates[i], b)
			}
		}
		if len(candidates[i]) == 0 {
			return kekuleError(m, i)
		}
	}
	// Most constrained atoms first keeps backtracking shallow.
	sort.SliceStable(atoms, func(x, y int) bool {
		return len(candidates[atoms[x]]) < len(candidates[atoms[y]])
	})

	matched := make([]bool, len(m.Atoms))
	steps := 0
	var solve func(k int) bool
	solve = func(k int) bool {
		for k < len(atoms) && matched[atoms[k]] {
			k++
		}
		if k == len(atoms) {
			return true
		}
		steps++
		if steps > maxKekuleSteps {
			return false
		}
		i := atoms[k]
		for _, b := range candidates[i] {
			j := b.Other(i)
			if matched[j] {
				continue
			}
			matched[i], matched[j] = true, true
			b.Order = BondDouble
			if solve(k + 1) {
				return true
			}
			b.Order = BondSingle
			matched[i], matched[j] = false, false
		}
		return false
	}

	if !solve(0) {
		for _, i := range atoms {
			if !matched[i] {
				return kekuleError(m, i)
			}
		}
		return kekuleError(m, atoms[0])
	}
	return nil
}

func kekuleError(m *Molecule, atom int) error {
	return errors.New(errors.ErrCodeKekulizationFailed, "cannot kekulize aromatic system").
		WithDetail(fmt.Sprintf("atom %d (%s) has no partner for a double bond", atom+1, m.Atoms[atom].Symbol()))
}

// needsDoubleBond decides whether an aromatic atom contributes its pi
// electron through a double bond.  The atom's explicit valence counts
// aromatic bonds as single; if one more bond still fits the smallest allowed
// valence, a double bond is needed.
func needsDoubleBond(m *Molecule, i int) bool {
	a := m.Atoms[i]
	used := a.HCount
	for _, b := range m.BondsOf(i) {
		if b.Aromatic {
			used++
			continue
		}
		if b.Order == BondDouble {
			// exocyclic double bond, as in c1ccc(=O)[nH]c1
			return false
		}
		used += int(b.Order)
	}
	valences := valencesFor(a.Element, a.Charge)
	for _, v := range valences {
		if v >= used {
			return used+1 <= v
		}
	}
	return false
}

// assignImplicitHydrogens fills HCount for organic-subset atoms from their
// default valences.  Bracket atoms keep the count they were written with.
func assignImplicitHydrogens(m *Molecule) {
	for i, a := range m.Atoms {
		if a.Bracket || a.Element == elemWildcard {
			continue
		}
		used := m.BondOrderSum(i)
		a.HCount = 0
		for _, v := range organicValences[a.Element] {
			if v >= used {
				a.HCount = v - used
				break
			}
		}
	}
}

//Personal.AI order the ending
