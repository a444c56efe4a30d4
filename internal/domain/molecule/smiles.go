package molecule

import (
	"fmt"
	"strings"

	"github.com/turtacn/computefp/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// SyntaxError
// ─────────────────────────────────────────────────────────────────────────────

// SyntaxError describes why a SMILES string was rejected.  Pos is the 0-based
// byte offset of the offending character, or the input length for problems
// detected at the end.
type SyntaxError struct {
	Input  string
	Pos    int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Reason, e.Pos)
}

// Caret renders the input with a marker under the offending position.
func (e *SyntaxError) Caret() string {
	pos := e.Pos
	if pos > len(e.Input) {
		pos = len(e.Input)
	}
	return e.Input + "\n" + strings.Repeat(" ", pos) + "^"
}

// ─────────────────────────────────────────────────────────────────────────────
// SMILESParser
// ─────────────────────────────────────────────────────────────────────────────

// SMILESParser implements MoleculeParser for the OpenSMILES grammar: organic
// subset and bracket atoms, bond symbols, branches, ring closures and
// disconnected fragments.  Text after the first whitespace is treated as a
// title and ignored.
type SMILESParser struct{}

// NewSMILESParser returns a stateless parser; a single instance may be shared.
func NewSMILESParser() *SMILESParser {
	return &SMILESParser{}
}

// Parse builds a kekulized molecule graph with hydrogen counts and ring
// information.  All failures carry ErrCodeMoleculeInvalidSMILES.
func (p *SMILESParser) Parse(text string) (*Molecule, error) {
	smiles := strings.TrimSpace(text)
	if i := strings.IndexAny(smiles, " \t"); i >= 0 {
		smiles = smiles[:i]
	}

	st := &smilesState{src: smiles, mol: NewMolecule(text), prev: -1, rings: map[int]ringOpening{}}
	if err := st.parse(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMoleculeInvalidSMILES, "invalid SMILES").WithDetail(err.Error())
	}

	mol := st.mol
	if err := kekulize(mol); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMoleculeInvalidSMILES, "invalid SMILES").WithDetail(err.Error())
	}
	assignImplicitHydrogens(mol)
	perceiveRings(mol)
	mol.fragments = mol.countFragments()
	return mol, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Grammar
// ─────────────────────────────────────────────────────────────────────────────

type pendingBond struct {
	set    bool
	order  BondOrder
	arom   bool
	stereo BondStereo
	pos    int
}

type ringOpening struct {
	atom int
	bond pendingBond
	pos  int
}

type smilesState struct {
	src      string
	pos      int
	mol      *Molecule
	prev     int
	bond     pendingBond
	branches []int
	rings    map[int]ringOpening
	// afterOpen is set right after '(' so that "()" can be rejected.
	afterOpen bool
}

func (s *smilesState) fail(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Input: s.src, Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

func (s *smilesState) parse() error {
	if s.src == "" {
		return s.fail(0, "empty SMILES")
	}

	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '(':
			if s.prev < 0 {
				return s.fail(s.pos, "branch without preceding atom")
			}
			if s.bond.set {
				return s.fail(s.pos, "bond symbol before branch")
			}
			s.branches = append(s.branches, s.prev)
			s.afterOpen = true
			s.pos++
			continue

		case c == ')':
			if len(s.branches) == 0 {
				return s.fail(s.pos, "unbalanced ')'")
			}
			if s.afterOpen {
				return s.fail(s.pos, "empty branch")
			}
			if s.bond.set {
				return s.fail(s.bond.pos, "bond symbol without following atom")
			}
			s.prev = s.branches[len(s.branches)-1]
			s.branches = s.branches[:len(s.branches)-1]
			s.pos++

		case c == '-' || c == '=' || c == '#' || c == '$' || c == ':' || c == '/' || c == '\\':
			if s.prev < 0 {
				return s.fail(s.pos, "bond symbol without preceding atom")
			}
			if s.bond.set {
				return s.fail(s.pos, "consecutive bond symbols")
			}
			s.bond = bondFromSymbol(c, s.pos)
			s.pos++
			continue // keeps afterOpen: "C(=O)" is a valid branch

		case c == '.':
			if s.prev < 0 {
				return s.fail(s.pos, "'.' without preceding atom")
			}
			if s.bond.set {
				return s.fail(s.bond.pos, "bond symbol before '.'")
			}
			if s.afterOpen {
				return s.fail(s.pos, "'.' at start of branch")
			}
			s.prev = -1
			s.pos++
			if s.pos == len(s.src) {
				return s.fail(s.pos, "'.' without following atom")
			}
			continue

		case c >= '0' && c <= '9':
			if err := s.ringBond(int(c-'0'), s.pos); err != nil {
				return err
			}
			s.pos++

		case c == '%':
			start := s.pos
			if s.pos+2 >= len(s.src) || !isDigit(s.src[s.pos+1]) || !isDigit(s.src[s.pos+2]) {
				return s.fail(start, "'%%' must be followed by two digits")
			}
			n := int(s.src[s.pos+1]-'0')*10 + int(s.src[s.pos+2]-'0')
			if err := s.ringBond(n, start); err != nil {
				return err
			}
			s.pos += 3

		case c == '[':
			a, err := s.bracketAtom()
			if err != nil {
				return err
			}
			if err := s.addAtom(a); err != nil {
				return err
			}

		default:
			a, n, ok := organicAtom(s.src[s.pos:])
			if !ok {
				return s.fail(s.pos, "unexpected character %q", c)
			}
			s.pos += n
			if err := s.addAtom(a); err != nil {
				return err
			}
		}
		s.afterOpen = false
	}

	end := len(s.src)
	if s.bond.set {
		return s.fail(s.bond.pos, "bond symbol without following atom")
	}
	if len(s.branches) > 0 {
		return s.fail(end, "unclosed branch")
	}
	if len(s.rings) > 0 {
		first := -1
		for n, r := range s.rings {
			if first < 0 || r.pos < s.rings[first].pos {
				first = n
			}
		}
		return s.fail(s.rings[first].pos, "unclosed ring bond %d", first)
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func bondFromSymbol(c byte, pos int) pendingBond {
	b := pendingBond{set: true, order: BondSingle, pos: pos}
	switch c {
	case '=':
		b.order = BondDouble
	case '#':
		b.order = BondTriple
	case '$':
		b.order = BondQuadruple
	case ':':
		b.arom = true
	case '/':
		b.stereo = StereoUp
	case '\\':
		b.stereo = StereoDown
	}
	return b
}

// addAtom appends a and bonds it to the previous atom, if any.
func (s *smilesState) addAtom(a Atom) error {
	idx := s.mol.AddAtom(a)
	if s.prev >= 0 {
		order, arom := s.resolveBond(s.bond, s.prev, idx)
		if _, err := s.mol.AddBond(s.prev, idx, order, arom, s.bond.stereo); err != nil {
			return s.fail(s.pos, "%v", err)
		}
	}
	s.bond = pendingBond{}
	s.prev = idx
	return nil
}

// resolveBond applies the implicit bond rule: an unspecified bond between two
// aromatic atoms is aromatic, otherwise single.  Explicit symbols win, so
// "c1ccccc1-c1ccccc1" keeps a non-aromatic single bond between the rings.
func (s *smilesState) resolveBond(b pendingBond, i, j int) (BondOrder, bool) {
	if b.set {
		return b.order, b.arom
	}
	if s.mol.Atoms[i].Aromatic && s.mol.Atoms[j].Aromatic {
		return BondSingle, true
	}
	return BondSingle, false
}

func (s *smilesState) ringBond(n, pos int) error {
	if s.prev < 0 {
		return s.fail(pos, "ring bond %d without preceding atom", n)
	}
	open, ok := s.rings[n]
	if !ok {
		s.rings[n] = ringOpening{atom: s.prev, bond: s.bond, pos: pos}
		s.bond = pendingBond{}
		return nil
	}
	delete(s.rings, n)

	a, b := open.bond, s.bond
	if a.set && b.set && (a.order != b.order || a.arom != b.arom) {
		return s.fail(pos, "conflicting bond orders for ring bond %d", n)
	}
	use := a
	if !use.set {
		use = b
	}
	if open.atom == s.prev {
		return s.fail(pos, "ring bond %d closes on its own atom", n)
	}
	order, arom := s.resolveBond(use, open.atom, s.prev)
	if _, err := s.mol.AddBond(open.atom, s.prev, order, arom, use.stereo); err != nil {
		return s.fail(pos, "ring bond %d duplicates an existing bond", n)
	}
	s.bond = pendingBond{}
	return nil
}

// organicAtom recognises an organic-subset atom at the start of text and
// returns the atom and the number of bytes consumed.
func organicAtom(text string) (Atom, int, bool) {
	if strings.HasPrefix(text, "Cl") {
		return Atom{Element: elemCl}, 2, true
	}
	if strings.HasPrefix(text, "Br") {
		return Atom{Element: elemBr}, 2, true
	}
	switch text[0] {
	case '*':
		return Atom{Element: elemWildcard}, 1, true
	case 'B':
		return Atom{Element: elemB}, 1, true
	case 'C':
		return Atom{Element: elemC}, 1, true
	case 'N':
		return Atom{Element: elemN}, 1, true
	case 'O':
		return Atom{Element: elemO}, 1, true
	case 'P':
		return Atom{Element: elemP}, 1, true
	case 'S':
		return Atom{Element: elemS}, 1, true
	case 'F':
		return Atom{Element: elemF}, 1, true
	case 'I':
		return Atom{Element: elemI}, 1, true
	case 'b':
		return Atom{Element: elemB, Aromatic: true}, 1, true
	case 'c':
		return Atom{Element: elemC, Aromatic: true}, 1, true
	case 'n':
		return Atom{Element: elemN, Aromatic: true}, 1, true
	case 'o':
		return Atom{Element: elemO, Aromatic: true}, 1, true
	case 'p':
		return Atom{Element: elemP, Aromatic: true}, 1, true
	case 's':
		return Atom{Element: elemS, Aromatic: true}, 1, true
	}
	return Atom{}, 0, false
}

// aromaticBracketSymbols are the lowercase symbols accepted inside brackets.
var aromaticBracketSymbols = map[string]int{
	"b": elemB, "c": elemC, "n": elemN, "o": elemO, "p": elemP, "s": elemS,
	"se": elemSe, "as": elemAs, "te": elemTe, "si": elemSi,
}

// bracketAtom parses "[" isotope? symbol chiral? hcount? charge? class? "]".
func (s *smilesState) bracketAtom() (Atom, error) {
	open := s.pos
	end := strings.IndexByte(s.src[open:], ']')
	if end < 0 {
		return Atom{}, s.fail(open, "unclosed '['")
	}
	body := s.src[open+1 : open+end]
	at := func(i int) int { return open + 1 + i }
	a := Atom{Bracket: true}
	i := 0

	// isotope
	for i < len(body) && isDigit(body[i]) {
		a.Isotope = a.Isotope*10 + int(body[i]-'0')
		i++
	}

	// symbol
	switch {
	case i < len(body) && body[i] == '*':
		a.Element = elemWildcard
		i++
	case i < len(body) && body[i] >= 'a' && body[i] <= 'z':
		matched := false
		if i+1 < len(body) {
			if z, ok := aromaticBracketSymbols[body[i:i+2]]; ok {
				a.Element, a.Aromatic, matched = z, true, true
				i += 2
			}
		}
		if !matched {
			z, ok := aromaticBracketSymbols[body[i:i+1]]
			if !ok {
				return Atom{}, s.fail(at(i), "unknown aromatic symbol %q", body[i])
			}
			a.Element, a.Aromatic = z, true
			i++
		}
	case i < len(body) && body[i] >= 'A' && body[i] <= 'Z':
		matched := false
		if i+1 < len(body) && body[i+1] >= 'a' && body[i+1] <= 'z' {
			if z, ok := AtomicNumber(body[i : i+2]); ok {
				a.Element, matched = z, true
				i += 2
			}
		}
		if !matched {
			z, ok := AtomicNumber(body[i : i+1])
			if !ok {
				return Atom{}, s.fail(at(i), "unknown element %q", body[i])
			}
			a.Element = z
			i++
		}
	default:
		return Atom{}, s.fail(at(i), "missing element symbol in bracket atom")
	}

	// chirality
	if i < len(body) && body[i] == '@' {
		start := i
		i++
		if i < len(body) && body[i] == '@' {
			i++
		} else {
			for _, tag := range []string{"TH", "AL", "SP", "TB", "OH"} {
				if strings.HasPrefix(body[i:], tag) {
					i += len(tag)
					digits := 0
					for i < len(body) && isDigit(body[i]) && digits < 2 {
						i++
						digits++
					}
					if digits == 0 {
						return Atom{}, s.fail(at(i), "chirality class %s needs a number", tag)
					}
					break
				}
			}
		}
		a.Chirality = body[start:i]
	}

	// hydrogen count
	if i < len(body) && body[i] == 'H' {
		i++
		a.HCount = 1
		if i < len(body) && isDigit(body[i]) {
			a.HCount = int(body[i] - '0')
			i++
		}
	}

	// charge
	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		sym := body[i]
		i++
		switch {
		case i < len(body) && isDigit(body[i]):
			n := 0
			for d := 0; d < 2 && i < len(body) && isDigit(body[i]); d++ {
				n = n*10 + int(body[i]-'0')
				i++
			}
			a.Charge = sign * n
		default:
			n := 1
			for i < len(body) && body[i] == sym {
				n++
				i++
			}
			a.Charge = sign * n
		}
	}

	// atom class
	if i < len(body) && body[i] == ':' {
		i++
		if i >= len(body) || !isDigit(body[i]) {
			return Atom{}, s.fail(at(i), "atom class needs a number")
		}
		for i < len(body) && isDigit(body[i]) {
			a.Class = a.Class*10 + int(body[i]-'0')
			i++
		}
	}

	if i != len(body) {
		return Atom{}, s.fail(at(i), "unexpected %q in bracket atom", body[i])
	}
	if a.Element == elemH && a.HCount > 0 {
		return Atom{}, s.fail(at(0), "hydrogen atom cannot carry a hydrogen count")
	}
	s.pos = open + end + 1
	return a, nil
}

//Personal.AI order the ending
