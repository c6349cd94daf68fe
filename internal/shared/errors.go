package shared

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique-constraint violation on creation.
	ErrDuplicate = errors.New("already exists")
	// ErrInvalidCredentials indicates login failure. The same error is
	// returned for an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers missing, malformed, tampered and expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrPermissionDenied indicates the caller lacks a required permission.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInsufficientBalance indicates a debit larger than the card balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrBranchUnknown indicates a transaction referenced an unregistered branch.
	ErrBranchUnknown = errors.New("unknown branch")
	// ErrValidation indicates missing or malformed request fields.
	ErrValidation = errors.New("validation failed")
)

// IsDomainError reports whether err is an expected business-rule violation,
// as opposed to an unexpected failure that should be logged and hidden.
func IsDomainError(err error) bool {
	for _, sentinel := range []error{
		ErrNotFound, ErrDuplicate, ErrInvalidCredentials, ErrInvalidToken,
		ErrPermissionDenied, ErrInsufficientBalance, ErrBranchUnknown, ErrValidation,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
