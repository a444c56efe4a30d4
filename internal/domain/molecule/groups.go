package molecule

// Substructure predicates used by the fingerprint schema.  They work on the
// kekulized graph: aromatic bonds have single or double orders and hydrogen
// counts are complete.

type neighbor struct {
	atom *Atom
	bond *Bond
}

func (m *Molecule) neighborsOf(i int) []neighbor {
	bonds := m.BondsOf(i)
	out := make([]neighbor, 0, len(bonds))
	for _, b := range bonds {
		out = append(out, neighbor{atom: m.Atoms[b.Other(i)], bond: b})
	}
	return out
}

// anyAtom reports whether pred holds for at least one atom.
func (m *Molecule) anyAtom(pred func(i int, a *Atom) bool) bool {
	for i, a := range m.Atoms {
		if pred(i, a) {
			return true
		}
	}
	return false
}

// anyBond reports whether pred holds for at least one bond.
func (m *Molecule) anyBond(pred func(b *Bond, x, y *Atom) bool) bool {
	for _, b := range m.Bonds {
		if pred(b, m.Atoms[b.Begin], m.Atoms[b.End]) {
			return true
		}
	}
	return false
}

// nonAromaticBond matches a non-aromatic bond of the given order between
// elements e1 and e2 in either direction.
func nonAromaticBond(order BondOrder, e1, e2 int) func(*Molecule) bool {
	return func(m *Molecule) bool {
		return m.anyBond(func(b *Bond, x, y *Atom) bool {
			if b.Aromatic || b.Order != order {
				return false
			}
			return x.Element == e1 && y.Element == e2 || x.Element == e2 && y.Element == e1
		})
	}
}

// doubleBondedTo counts non-aromatic double bonds from atom i to element z.
func (m *Molecule) doubleBondedTo(i, z int) int {
	n := 0
	for _, nb := range m.neighborsOf(i) {
		if nb.atom.Element == z && nb.bond.Order == BondDouble && !nb.bond.Aromatic {
			n++
		}
	}
	return n
}

// isCarbonylCarbon reports whether atom i is a carbon with a C=O double bond.
func (m *Molecule) isCarbonylCarbon(i int) bool {
	a := m.Atoms[i]
	return a.Element == elemC && !a.Aromatic && m.doubleBondedTo(i, elemO) > 0
}

// bondedToCarbonyl reports whether atom i has a single bond to a carbonyl
// carbon.
func (m *Molecule) bondedToCarbonyl(i int) bool {
	for _, nb := range m.neighborsOf(i) {
		if nb.bond.Order == BondSingle && m.isCarbonylCarbon(nb.atom.Index) {
			return true
		}
	}
	return false
}

func (m *Molecule) countNeighbors(i int, pred func(nb neighbor) bool) int {
	n := 0
	for _, nb := range m.neighborsOf(i) {
		if pred(nb) {
			n++
		}
	}
	return n
}

func isCarbonNeighbor(nb neighbor) bool { return nb.atom.Element == elemC }

func isOnlySingleBonds(m *Molecule, i int) bool {
	for _, b := range m.BondsOf(i) {
		if b.Order != BondSingle || b.Aromatic {
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Functional groups
// ─────────────────────────────────────────────────────────────────────────────

func hasHydroxyl(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return a.Element == elemO && a.Charge == 0 && m.TotalHCount(i) == 1 &&
			m.countNeighbors(i, func(nb neighbor) bool { return nb.atom.Element == elemC }) == 1 &&
			!m.bondedToCarbonyl(i)
	})
}

func hasPhenol(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return a.Element == elemO && m.TotalHCount(i) == 1 &&
			m.countNeighbors(i, func(nb neighbor) bool { return nb.atom.Element == elemC && nb.atom.Aromatic }) == 1
	})
}

func hasCarboxylicAcid(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		if !m.isCarbonylCarbon(i) {
			return false
		}
		return m.countNeighbors(i, func(nb neighbor) bool {
			return nb.atom.Element == elemO && nb.bond.Order == BondSingle && m.TotalHCount(nb.atom.Index) == 1
		}) > 0
	})
}

func hasCarboxylate(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		if !m.isCarbonylCarbon(i) {
			return false
		}
		return m.countNeighbors(i, func(nb neighbor) bool {
			return nb.atom.Element == elemO && nb.bond.Order == BondSingle && nb.atom.Charge == -1
		}) > 0
	})
}

func hasEster(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		if !m.isCarbonylCarbon(i) {
			return false
		}
		return m.countNeighbors(i, func(nb neighbor) bool {
			o := nb.atom.Index
			return nb.atom.Element == elemO && nb.bond.Order == BondSingle &&
				m.TotalHCount(o) == 0 && nb.atom.Charge == 0 &&
				m.countNeighbors(o, isCarbonNeighbor) == 2
		}) > 0
	})
}

func hasAmide(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		if !m.isCarbonylCarbon(i) {
			return false
		}
		return m.countNeighbors(i, func(nb neighbor) bool {
			return nb.atom.Element == elemN && nb.bond.Order == BondSingle && !nb.bond.Aromatic
		}) > 0
	})
}

func hasUrea(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		if !m.isCarbonylCarbon(i) {
			return false
		}
		return m.countNeighbors(i, func(nb neighbor) bool {
			return nb.atom.Element == elemN && nb.bond.Order == BondSingle
		}) == 2
	})
}

// amineN matches a neutral, non-aromatic, sp3 nitrogen with exactly hs
// hydrogens and heavy carbon neighbours, not bonded to a carbonyl.
func amineN(hs int) func(*Molecule) bool {
	return func(m *Molecule) bool {
		return m.anyAtom(func(i int, a *Atom) bool {
			if a.Element != elemN || a.Aromatic || a.Charge != 0 || !isOnlySingleBonds(m, i) {
				return false
			}
			if m.TotalHCount(i) != hs || m.bondedToCarbonyl(i) {
				return false
			}
			heavy := m.countNeighbors(i, func(nb neighbor) bool { return nb.atom.Element != elemH })
			carbons := m.countNeighbors(i, isCarbonNeighbor)
			return heavy == 3-hs && carbons == heavy
		})
	}
}

func hasQuaternaryAmmonium(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return a.Element == elemN && a.Charge == 1 && !a.Aromatic && isOnlySingleBonds(m, i) &&
			m.TotalHCount(i) == 0 && m.Degree(i) == 4
	})
}

func hasEther(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return a.Element == elemO && !a.Aromatic && a.Charge == 0 && isOnlySingleBonds(m, i) &&
			m.countNeighbors(i, isCarbonNeighbor) == 2 && !m.bondedToCarbonyl(i)
	})
}

func hasAldehyde(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		if !m.isCarbonylCarbon(i) || m.TotalHCount(i) < 1 {
			return false
		}
		hetero := m.countNeighbors(i, func(nb neighbor) bool {
			return nb.atom.Element != elemC && nb.atom.Element != elemH && nb.bond.Order == BondSingle
		})
		return hetero == 0
	})
}

func hasKetone(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return m.isCarbonylCarbon(i) && m.Degree(i) == 3 && m.countNeighbors(i, isCarbonNeighbor) == 2
	})
}

func hasThiol(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return a.Element == elemS && !a.Aromatic && m.TotalHCount(i) == 1 &&
			m.countNeighbors(i, isCarbonNeighbor) == 1
	})
}

func hasThioether(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return a.Element == elemS && !a.Aromatic && a.Charge == 0 && isOnlySingleBonds(m, i) &&
			m.Degree(i) == 2 && m.countNeighbors(i, isCarbonNeighbor) == 2
	})
}

func hasSulfonamide(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return a.Element == elemS && m.doubleBondedTo(i, elemO) == 2 &&
			m.countNeighbors(i, func(nb neighbor) bool { return nb.atom.Element == elemN && nb.bond.Order == BondSingle }) > 0
	})
}

func hasSulfone(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return a.Element == elemS && m.doubleBondedTo(i, elemO) == 2 && m.countNeighbors(i, isCarbonNeighbor) == 2
	})
}

func hasNitro(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		if a.Element != elemN {
			return false
		}
		oxygens := m.countNeighbors(i, func(nb neighbor) bool { return nb.atom.Element == elemO && m.Degree(nb.atom.Index) == 1 })
		// N(=O)=O or the charge-separated [N+](=O)[O-]
		return oxygens == 2 && m.doubleBondedTo(i, elemO) >= 1
	})
}

func hasAromaticHalide(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return IsHalogen(a.Element) && m.countNeighbors(i, func(nb neighbor) bool { return nb.atom.Aromatic }) > 0
	})
}

func hasAliphaticHalide(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return IsHalogen(a.Element) && m.countNeighbors(i, func(nb neighbor) bool {
			return nb.atom.Element == elemC && !nb.atom.Aromatic
		}) > 0
	})
}

func hasTrifluoromethyl(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return a.Element == elemC && m.countNeighbors(i, func(nb neighbor) bool { return nb.atom.Element == elemF }) == 3
	})
}

func hasPhosphate(m *Molecule) bool {
	return m.anyAtom(func(i int, a *Atom) bool {
		return a.Element == elemP && m.doubleBondedTo(i, elemO) >= 1 &&
			m.countNeighbors(i, func(nb neighbor) bool { return nb.atom.Element == elemO }) >= 4
	})
}

func hasImine(m *Molecule) bool {
	return m.anyBond(func(b *Bond, x, y *Atom) bool {
		if b.Aromatic || b.Order != BondDouble {
			return false
		}
		return x.Element == elemC && y.Element == elemN || x.Element == elemN && y.Element == elemC
	})
}

func hasHydrazine(m *Molecule) bool {
	return m.anyBond(func(b *Bond, x, y *Atom) bool {
		return !b.Aromatic && b.Order == BondSingle && x.Element == elemN && y.Element == elemN &&
			!x.Aromatic && !y.Aromatic
	})
}

func hasEpoxide(m *Molecule) bool {
	for _, r := range m.Rings() {
		if len(r) != 3 {
			continue
		}
		o, c := 0, 0
		for _, ai := range r {
			switch m.Atoms[ai].Element {
			case elemO:
				o++
			case elemC:
				c++
			}
		}
		if o == 1 && c == 2 {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Rings
// ─────────────────────────────────────────────────────────────────────────────

func hasRingOfSize(n int) func(*Molecule) bool {
	return func(m *Molecule) bool {
		for _, r := range m.Rings() {
			if len(r) == n {
				return true
			}
		}
		return false
	}
}

func hasRingAtLeast(n int) func(*Molecule) bool {
	return func(m *Molecule) bool {
		for _, r := range m.Rings() {
			if len(r) >= n {
				return true
			}
		}
		return false
	}
}

func (m *Molecule) aromaticRings() [][]int {
	var out [][]int
	for _, r := range m.Rings() {
		if m.IsAromaticRing(r) {
			out = append(out, r)
		}
	}
	return out
}

func hasBenzene(m *Molecule) bool {
	for _, r := range m.aromaticRings() {
		if len(r) != 6 {
			continue
		}
		allC := true
		for _, ai := range r {
			if m.Atoms[ai].Element != elemC {
				allC = false
				break
			}
		}
		if allC {
			return true
		}
	}
	return false
}

func hasHeteroaromaticRing(size int) func(*Molecule) bool {
	return func(m *Molecule) bool {
		for _, r := range m.aromaticRings() {
			if size > 0 && len(r) != size {
				continue
			}
			for _, ai := range r {
				if m.Atoms[ai].Element != elemC {
					return true
				}
			}
		}
		return false
	}
}

// hasFusedRings reports whether any bond lies on two distinct perceived rings.
func hasFusedRings(m *Molecule) bool {
	count := map[[2]int]int{}
	for _, r := range m.Rings() {
		for k := range r {
			a, b := r[k], r[(k+1)%len(r)]
			if a > b {
				a, b = b, a
			}
			count[[2]int{a, b}]++
			if count[[2]int{a, b}] > 1 {
				return true
			}
		}
	}
	return false
}

//Personal.AI order the ending
