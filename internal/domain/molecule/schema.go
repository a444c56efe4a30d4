package molecule

import "fmt"

// SchemaVersion identifies the property list below.  Any change to the order
// or meaning of properties must bump it, since stored fingerprints are only
// comparable within one version.
const SchemaVersion = "computefp-keys/1"

// Property is one bit of the fingerprint: a structural feature the molecule
// either has or lacks.
type Property struct {
	Index       int
	Description string
	match       func(*Molecule) bool
}

// Matches evaluates the property against m.
func (p Property) Matches(m *Molecule) bool {
	return p.match(m)
}

// Schema is an ordered, versioned list of properties.
type Schema struct {
	Version    string
	properties []Property
}

// Size is the number of properties and therefore the fingerprint length.
func (s *Schema) Size() int {
	return len(s.properties)
}

// Properties returns the properties in index order.
func (s *Schema) Properties() []Property {
	return s.properties
}

type schemaBuilder struct {
	props []Property
}

func (b *schemaBuilder) add(desc string, match func(*Molecule) bool) {
	b.props = append(b.props, Property{Index: len(b.props), Description: desc, match: match})
}

var defaultSchema = buildDefaultSchema()

// DefaultSchema returns the computefp-keys/1 schema.  The returned value is
// shared and must not be modified.
func DefaultSchema() *Schema {
	return defaultSchema
}

func buildDefaultSchema() *Schema {
	b := &schemaBuilder{}

	// ── Element presence ────────────────────────────────────────────────────
	for _, z := range []int{elemC, elemN, elemO, elemF, elemCl, elemBr, elemI, elemS, elemP, elemB, elemSi, elemSe} {
		z := z
		b.add(fmt.Sprintf("contains %s", ElementSymbol(z)), func(m *Molecule) bool { return m.CountElement(z) > 0 })
	}
	b.add("contains a metal atom", func(m *Molecule) bool {
		return m.anyAtom(func(_ int, a *Atom) bool { return IsMetal(a.Element) })
	})
	b.add("contains a wildcard atom", func(m *Molecule) bool { return m.CountElement(elemWildcard) > 0 })

	// ── Element counts ──────────────────────────────────────────────────────
	counts := []struct {
		z      int
		limits []int
	}{
		{elemC, []int{2, 4, 8, 16, 32}},
		{elemN, []int{2, 4}},
		{elemO, []int{2, 4, 8}},
		{elemS, []int{2}},
	}
	for _, c := range counts {
		for _, n := range c.limits {
			z, n := c.z, n
			b.add(fmt.Sprintf("at least %d %s atoms", n, ElementSymbol(z)), func(m *Molecule) bool { return m.CountElement(z) >= n })
		}
	}
	for _, n := range []int{2, 3} {
		n := n
		b.add(fmt.Sprintf("at least %d halogen atoms", n), func(m *Molecule) bool {
			return m.CountElement(elemF)+m.CountElement(elemCl)+m.CountElement(elemBr)+m.CountElement(elemI) >= n
		})
	}
	for _, n := range []int{8, 16, 32, 64} {
		n := n
		b.add(fmt.Sprintf("at least %d heavy atoms", n), func(m *Molecule) bool { return m.HeavyAtomCount() >= n })
	}

	// ── Rings ───────────────────────────────────────────────────────────────
	b.add("contains a ring", func(m *Molecule) bool { return m.RingCount() > 0 })
	for _, n := range []int{2, 3, 4, 6} {
		n := n
		b.add(fmt.Sprintf("at least %d rings", n), func(m *Molecule) bool { return m.RingCount() >= n })
	}
	for n := 3; n <= 8; n++ {
		b.add(fmt.Sprintf("%d-membered ring", n), hasRingOfSize(n))
	}
	b.add("ring with 9 or more atoms", hasRingAtLeast(9))
	b.add("fused ring system", hasFusedRings)

	// ── Aromaticity ─────────────────────────────────────────────────────────
	b.add("aromatic atom", func(m *Molecule) bool {
		return m.anyAtom(func(_ int, a *Atom) bool { return a.Aromatic })
	})
	for _, n := range []int{1, 2, 3} {
		n := n
		b.add(fmt.Sprintf("at least %d aromatic rings", n), func(m *Molecule) bool { return len(m.aromaticRings()) >= n })
	}
	b.add("benzene ring", hasBenzene)
	b.add("heteroaromatic ring", hasHeteroaromaticRing(0))
	b.add("5-membered heteroaromatic ring", hasHeteroaromaticRing(5))
	b.add("6-membered heteroaromatic ring", hasHeteroaromaticRing(6))
	for _, z := range []int{elemN, elemO, elemS} {
		z := z
		b.add(fmt.Sprintf("aromatic %s", ElementSymbol(z)), func(m *Molecule) bool {
			return m.anyAtom(func(_ int, a *Atom) bool { return a.Aromatic && a.Element == z })
		})
	}

	// ── Bond types ──────────────────────────────────────────────────────────
	b.add("C=C double bond", nonAromaticBond(BondDouble, elemC, elemC))
	b.add("C#C triple bond", nonAromaticBond(BondTriple, elemC, elemC))
	b.add("C#N nitrile", nonAromaticBond(BondTriple, elemC, elemN))
	b.add("C=O double bond", nonAromaticBond(BondDouble, elemC, elemO))
	b.add("C=N double bond", nonAromaticBond(BondDouble, elemC, elemN))
	b.add("C=S double bond", nonAromaticBond(BondDouble, elemC, elemS))
	b.add("N=N double bond", nonAromaticBond(BondDouble, elemN, elemN))
	b.add("N=O double bond", nonAromaticBond(BondDouble, elemN, elemO))
	b.add("S=O double bond", nonAromaticBond(BondDouble, elemS, elemO))
	b.add("P=O double bond", nonAromaticBond(BondDouble, elemP, elemO))
	b.add("quadruple bond", func(m *Molecule) bool {
		return m.anyBond(func(bd *Bond, _, _ *Atom) bool { return bd.Order == BondQuadruple })
	})

	// ── Functional groups ───────────────────────────────────────────────────
	b.add("hydroxyl group", hasHydroxyl)
	b.add("phenol", hasPhenol)
	b.add("carboxylic acid", hasCarboxylicAcid)
	b.add("carboxylate anion", hasCarboxylate)
	b.add("ester", hasEster)
	b.add("amide", hasAmide)
	b.add("urea", hasUrea)
	b.add("primary amine", amineN(2))
	b.add("secondary amine", amineN(1))
	b.add("tertiary amine", amineN(0))
	b.add("quaternary ammonium", hasQuaternaryAmmonium)
	b.add("ether", hasEther)
	b.add("aldehyde", hasAldehyde)
	b.add("ketone", hasKetone)
	b.add("imine", hasImine)
	b.add("hydrazine", hasHydrazine)
	b.add("nitro group", hasNitro)
	b.add("thiol", hasThiol)
	b.add("thioether", hasThioether)
	b.add("sulfone", hasSulfone)
	b.add("sulfonamide", hasSulfonamide)
	b.add("phosphate", hasPhosphate)
	b.add("aromatic halide", hasAromaticHalide)
	b.add("aliphatic halide", hasAliphaticHalide)
	b.add("trifluoromethyl group", hasTrifluoromethyl)
	b.add("epoxide", hasEpoxide)

	// ── Charges, isotopes, stereo, fragments ────────────────────────────────
	b.add("positively charged atom", func(m *Molecule) bool {
		return m.anyAtom(func(_ int, a *Atom) bool { return a.Charge > 0 })
	})
	b.add("negatively charged atom", func(m *Molecule) bool {
		return m.anyAtom(func(_ int, a *Atom) bool { return a.Charge < 0 })
	})
	b.add("isotope label", func(m *Molecule) bool {
		return m.anyAtom(func(_ int, a *Atom) bool { return a.Isotope > 0 })
	})
	b.add("tetrahedral stereo centre", func(m *Molecule) bool {
		return m.anyAtom(func(_ int, a *Atom) bool { return a.Chirality != "" })
	})
	b.add("double bond stereo marker", func(m *Molecule) bool {
		return m.anyBond(func(bd *Bond, _, _ *Atom) bool { return bd.Stereo != StereoNone })
	})
	b.add("explicit hydrogen atom", func(m *Molecule) bool { return m.CountElement(elemH) > 0 })
	b.add("multiple fragments", func(m *Molecule) bool { return m.FragmentCount() > 1 })

	return &Schema{Version: SchemaVersion, properties: b.props}
}

// ─────────────────────────────────────────────────────────────────────────────
// KeyFingerprinter
// ─────────────────────────────────────────────────────────────────────────────

// KeyFingerprinter implements Fingerprinter by evaluating every property of a
// schema.
type KeyFingerprinter struct {
	schema *Schema
}

// NewKeyFingerprinter returns a fingerprinter over schema, or over
// DefaultSchema when schema is nil.
func NewKeyFingerprinter(schema *Schema) *KeyFingerprinter {
	if schema == nil {
		schema = DefaultSchema()
	}
	return &KeyFingerprinter{schema: schema}
}

// Compute evaluates all properties against m.
func (f *KeyFingerprinter) Compute(m *Molecule) *Fingerprint {
	fp := NewFingerprint(f.schema.Size())
	for _, p := range f.schema.properties {
		if p.match(m) {
			fp.Set(p.Index)
		}
	}
	return fp
}

// Schema returns the schema this fingerprinter evaluates.
func (f *KeyFingerprinter) Schema() *Schema {
	return f.schema
}

//Personal.AI order the ending
