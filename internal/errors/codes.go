package errors

// Error codes for the calc toolchain.
// These codes are used in error messages and documentation
// to provide consistent error identification across the REPL, CLI and LSP.
//
// Error code ranges:
// E0100-E0199: Lexer and parser errors
// E0200-E0299: Evaluation errors
// E0900-E0999: Reserved for tooling errors

const (
	// Lexer and parser errors (E0100-E0199)

	// E0100: Unrecognized characters in the input
	ErrorUnrecognizedInput = "E0100"

	// E0101: Syntax error repaired by recovery
	ErrorSyntax = "E0101"

	// E0102: Syntax error with no repair within budget
	ErrorUnrecoverable = "E0102"

	// Evaluation errors (E0200-E0299)

	// E0200: Sum or literal does not fit in 64 bits
	ErrorOverflow = "E0200"

	// E0201: Literal text could not be converted
	ErrorInvalidLiteral = "E0201"

	// E0202: Value depends on a token inserted by recovery
	ErrorRepairedValue = "E0202"

	// E0203: Line evaluated but contained unrecognized input
	ErrorTaintedValue = "E0203"

	// Tooling errors (E0900-E0999)

	// E0900: Input file or configuration could not be read
	ErrorToolInput = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnrecognizedInput:
		return "Input contains characters that do not start any token"
	case ErrorSyntax:
		return "Expression is malformed; a repair was applied to continue parsing"
	case ErrorUnrecoverable:
		return "Expression is malformed and no repair was found"
	case ErrorOverflow:
		return "Result does not fit in an unsigned 64-bit integer"
	case ErrorInvalidLiteral:
		return "Integer literal could not be converted"
	case ErrorRepairedValue:
		return "Value depends on input inserted during error recovery"
	case ErrorTaintedValue:
		return "Value was computed from a line containing unrecognized input"
	case ErrorToolInput:
		return "Input could not be read"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0200" && code < "E0300":
		return "Evaluation"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
