package molecule

// elementSymbols lists element symbols by atomic number; index 0 is the
// wildcard atom "*".
var elementSymbols = [...]string{
	"*",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba",
	"La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu",
	"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra",
	"Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm", "Md", "No", "Lr",
	"Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds", "Rg", "Cn",
	"Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var atomicNumbers = func() map[string]int {
	m := make(map[string]int, len(elementSymbols))
	for z, sym := range elementSymbols {
		m[sym] = z
	}
	return m
}()

// Atomic numbers referenced by the parser and the fingerprint schema.
const (
	elemWildcard = 0
	elemH        = 1
	elemB        = 5
	elemC        = 6
	elemN        = 7
	elemO        = 8
	elemF        = 9
	elemSi       = 14
	elemP        = 15
	elemS        = 16
	elemCl       = 17
	elemAs       = 33
	elemSe       = 34
	elemBr       = 35
	elemTe       = 52
	elemI        = 53
)

// organicValences holds the allowed valences of the SMILES organic subset in
// increasing order.
var organicValences = map[int][]int{
	elemB:  {3},
	elemC:  {4},
	elemN:  {3, 5},
	elemO:  {2},
	elemP:  {3, 5},
	elemS:  {2, 4, 6},
	elemF:  {1},
	elemCl: {1},
	elemBr: {1},
	elemI:  {1},
}

// bracketValences covers the additional elements that may be written
// aromatic inside brackets.
var bracketValences = map[int][]int{
	elemSi: {4},
	elemAs: {3, 5},
	elemSe: {2, 4, 6},
	elemTe: {2, 4, 6},
}

// ElementSymbol returns the symbol for atomic number z, or "?" when z is out
// of range.
func ElementSymbol(z int) string {
	if z < 0 || z >= len(elementSymbols) {
		return "?"
	}
	return elementSymbols[z]
}

// AtomicNumber returns the atomic number of symbol and whether it is a known
// element.  The wildcard "*" maps to 0.
func AtomicNumber(symbol string) (int, bool) {
	z, ok := atomicNumbers[symbol]
	return z, ok
}

// IsMetal reports whether z is an alkali, alkaline earth, transition,
// lanthanide, actinide or post-transition metal.
func IsMetal(z int) bool {
	switch {
	case z == 3 || z == 4, // Li Be
		z >= 11 && z <= 13, // Na Mg Al
		z >= 19 && z <= 31, // K .. Ga
		z >= 37 && z <= 50, // Rb .. Sn
		z >= 55 && z <= 84, // Cs .. Po
		z >= 87 && z <= 116:
		return true
	}
	return false
}

// IsHalogen reports whether z is F, Cl, Br or I.
func IsHalogen(z int) bool {
	return z == elemF || z == elemCl || z == elemBr || z == elemI
}

// valencesFor returns the candidate valences of element z adjusted for a
// formal charge, or nil when the element has no default valence.
func valencesFor(z, charge int) []int {
	base, ok := organicValences[z]
	if !ok {
		base, ok = bracketValences[z]
	}
	if !ok {
		return nil
	}
	out := make([]int, 0, len(base))
	for _, v := range base {
		switch z {
		case elemN, elemP, elemAs, elemO, elemS, elemSe, elemTe:
			v += charge
		case elemC, elemSi:
			if charge < 0 {
				v += charge
			} else {
				v -= charge
			}
		case elemB:
			v -= charge
		default:
			v -= abs(charge)
		}
		if v >= 0 {
			out = append(out, v)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

//Personal.AI order the ending
