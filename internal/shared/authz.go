package shared

// Teller permissions.
const (
	PermProcessWithdrawal = "processWithdrawal"
	PermProcessDeposit    = "processDeposit"
)

// DefaultPermissions is the grant assigned at registration.
func DefaultPermissions() []string {
	return []string{PermProcessWithdrawal}
}

// HasPermission reports whether granted contains perm.
func HasPermission(granted []string, perm string) bool {
	for _, g := range granted {
		if g == perm {
			return true
		}
	}
	return false
}
