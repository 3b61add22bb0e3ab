package adminclient

import "fmt"

// ErrorKind classifies auth operation failures. The server's wire
// codes map one-to-one onto the auth kinds; KindNetwork covers
// transport faults and timeouts and is the only recoverable kind.
type ErrorKind string

const (
	KindTokenMissing    ErrorKind = "TOKEN_MISSING"
	KindTokenInvalid    ErrorKind = "TOKEN_INVALID"
	KindTokenExpired    ErrorKind = "TOKEN_EXPIRED"
	KindUserNotFound    ErrorKind = "USER_NOT_FOUND"
	KindUserDeactivated ErrorKind = "USER_DEACTIVATED"
	KindAdminRequired   ErrorKind = "ADMIN_REQUIRED"
	KindBadCredentials  ErrorKind = "BAD_CREDENTIALS"
	KindNetwork         ErrorKind = "NETWORK_ERROR"
)

// AuthError is the typed failure for every client auth operation.
type AuthError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Recoverable reports whether the failure is transient. Network
// faults never destroy a cached credential; every auth kind does.
func (e *AuthError) Recoverable() bool {
	return e.Kind == KindNetwork
}

func networkError(err error) *AuthError {
	return &AuthError{Kind: KindNetwork, Err: err}
}

// kindFromCode maps a wire code onto its kind. Codes outside the auth
// taxonomy are not rejections of the credential, so they classify as
// transient rather than terminal.
func kindFromCode(code string) ErrorKind {
	switch code {
	case "TOKEN_MISSING", "TOKEN_INVALID", "TOKEN_EXPIRED",
		"USER_NOT_FOUND", "USER_DEACTIVATED", "ADMIN_REQUIRED", "BAD_CREDENTIALS":
		return ErrorKind(code)
	default:
		return KindNetwork
	}
}

// UserMessage maps an error kind to the copy shown to the operator.
// Raw codes never reach the UI.
func UserMessage(kind ErrorKind) string {
	switch kind {
	case KindAdminRequired:
		return "Access denied."
	case KindBadCredentials:
		return "Invalid email or password."
	case KindNetwork:
		return "Connection problem. Please try again."
	default:
		return "Please log in again."
	}
}
