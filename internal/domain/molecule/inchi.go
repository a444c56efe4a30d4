package molecule

import "strings"

// InChIStatus classifies an identifier generation outcome.
type InChIStatus int

const (
	// InChIOK means the identifier was generated without remarks.
	InChIOK InChIStatus = iota
	// InChIWarning means the identifier was generated but the toolkit
	// reported a problem worth telling the user about.  The result is used.
	InChIWarning
	// InChIError means no identifier could be generated for the molecule.
	InChIError
)

func (s InChIStatus) String() string {
	switch s {
	case InChIOK:
		return "ok"
	case InChIWarning:
		return "warning"
	case InChIError:
		return "error"
	default:
		return "unknown"
	}
}

// stereoLayers are the InChI layers dropped by the 2D form: double bond and
// tetrahedral stereo, their inversion flag, stereo type and isotopes.
var stereoLayers = []string{"/b", "/t", "/m", "/s", "/i"}

// Identifier is an InChI string with its hashed key.
type Identifier struct {
	InChI string `json:"inchi"`
	Key   string `json:"inchikey"`
}

// InChI2D returns the InChI truncated before its first stereo or isotope
// layer.
func (id Identifier) InChI2D() string {
	return InChI2D(id.InChI)
}

// Key2D returns the first block of the InChIKey, which hashes only the
// connectivity layers.
func (id Identifier) Key2D() string {
	return InChIKey2D(id.Key)
}

// InChI2D truncates inchi before the first of the /b, /t, /m, /s or /i
// layers.  An InChI without such layers is returned unchanged.
func InChI2D(inchi string) string {
	cut := len(inchi)
	for _, layer := range stereoLayers {
		if i := strings.Index(inchi, layer); i >= 0 && i < cut {
			cut = i
		}
	}
	return inchi[:cut]
}

// InChIKey2D returns the first 14 characters of key, or key itself when it
// is shorter.
func InChIKey2D(key string) string {
	if len(key) < 14 {
		return key
	}
	return key[:14]
}

// IdentifierResult is what an IdentifierGenerator returns for one molecule.
// Message carries the toolkit's explanation for warnings and errors.
type IdentifierResult struct {
	Identifier
	Status  InChIStatus `json:"status"`
	Message string      `json:"message,omitempty"`
}

// Usable reports whether the identifier may be written to output.
func (r IdentifierResult) Usable() bool {
	return r.Status != InChIError && r.InChI != "" && r.Key != ""
}

//Personal.AI order the ending
