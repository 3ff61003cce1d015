package invoice

import "context"

// Usecase defines the interface for invoice business logic.
type Usecase interface {
	Generate(ctx context.Context, in GenerateRequest) ([]byte, error)
	ListByCustomer(ctx context.Context, email string) (*ListResponse, error)
}
