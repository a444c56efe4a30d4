package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeIO                 ErrorCode = "COMMON_017"
)

// Aliases for backward compatibility
const (
	CodeInvalidParam = ErrCodeBadRequest
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// Molecule Module Error Codes
const (
	ErrCodeMoleculeInvalidSMILES       ErrorCode = "MOL_001"
	ErrCodeMoleculeInvalidInChI        ErrorCode = "MOL_002"
	ErrCodeMoleculeInvalidFormat       ErrorCode = "MOL_003"
	ErrCodeMoleculeParsingFailed       ErrorCode = "MOL_006"
	ErrCodeFingerprintGenerationFailed ErrorCode = "MOL_007"
	ErrCodeMoleculeConversionFailed    ErrorCode = "MOL_011"
	ErrCodeKekulizationFailed          ErrorCode = "MOL_012"
	ErrCodeToolkitUnavailable          ErrorCode = "MOL_016"
)

// Sink Error Codes
const (
	ErrCodeSinkWriteFailed  ErrorCode = "SNK_001"
	ErrCodeSinkFlushFailed  ErrorCode = "SNK_002"
	ErrCodeExportFailed     ErrorCode = "SNK_003"
	ErrCodeSinkNotConnected ErrorCode = "SNK_004"
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "operation timed out",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeIO:                 "i/o error",

	ErrCodeMoleculeInvalidSMILES:       "invalid SMILES format",
	ErrCodeMoleculeInvalidInChI:        "invalid InChI format",
	ErrCodeMoleculeInvalidFormat:       "unsupported molecule format",
	ErrCodeMoleculeParsingFailed:       "failed to parse molecule",
	ErrCodeFingerprintGenerationFailed: "failed to generate fingerprint",
	ErrCodeMoleculeConversionFailed:    "molecule identifier generation failed",
	ErrCodeKekulizationFailed:          "could not assign a Kekulé structure",
	ErrCodeToolkitUnavailable:          "chemistry toolkit unavailable",

	ErrCodeSinkWriteFailed:  "record sink write failed",
	ErrCodeSinkFlushFailed:  "record sink flush failed",
	ErrCodeExportFailed:     "output export failed",
	ErrCodeSinkNotConnected: "record sink not connected",
}

// recordLevelCodes are failures that only invalidate the record being
// converted; the surrounding file keeps going.
var recordLevelCodes = map[ErrorCode]bool{
	ErrCodeMoleculeInvalidSMILES:       true,
	ErrCodeMoleculeParsingFailed:       true,
	ErrCodeKekulizationFailed:          true,
	ErrCodeFingerprintGenerationFailed: true,
	ErrCodeMoleculeConversionFailed:    true,
	ErrCodeMoleculeInvalidInChI:        true,
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsRecordLevel reports whether err, anywhere in its chain, carries a code
// for a failure confined to a single input record.
func IsRecordLevel(err error) bool {
	for code := range recordLevelCodes {
		if IsCode(err, code) {
			return true
		}
	}
	return false
}

//Personal.AI order the ending
