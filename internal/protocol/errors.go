package protocol

const (
	// Input validation.
	ErrParse = "E_PARSE"

	// Construction/configuration.
	ErrConfig = "E_CONFIG"
)

var knownCodes = map[string]struct{}{
	ErrParse:  {},
	ErrConfig: {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// Coded is implemented by errors that carry one of the codes above.
type Coded interface {
	error
	Code() string
}

// ExitCode maps an error code to a process exit status.
func ExitCode(code string) int {
	switch code {
	case "":
		return 0
	case ErrConfig:
		return 2
	default:
		return 1
	}
}
