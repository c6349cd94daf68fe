package branches

import "context"

// RepositoryPort defines data access methods for branches.
type RepositoryPort interface {
	CreateBranch(ctx context.Context, b *Branch) error
	ListBranches(ctx context.Context) ([]Branch, error)
	Exists(ctx context.Context, branchID string) (bool, error)
}

// Service handles branch registry logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create registers a new branch.
func (s *Service) Create(ctx context.Context, b *Branch) error {
	return s.repo.CreateBranch(ctx, b)
}

// List returns all branches.
func (s *Service) List(ctx context.Context) ([]Branch, error) {
	return s.repo.ListBranches(ctx)
}

// Exists reports whether a branch is registered.
func (s *Service) Exists(ctx context.Context, branchID string) (bool, error) {
	return s.repo.Exists(ctx, branchID)
}
