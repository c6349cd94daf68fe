package branches

// Branch represents a bank branch that tellers process transactions from.
type Branch struct {
	BranchID   string `json:"branchId"`
	BranchName string `json:"branchName"`
	Location   string `json:"location"`
}
