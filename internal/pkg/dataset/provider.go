// Package dataset provides the dataset catalog lookup used by the
// Copy-activity transform: catalog providers (in-memory, local directory,
// factory export API) and a resolver that memoizes lookups within one
// pipeline transform.
package dataset

import (
	"context"

	"github.com/fabrictools/adf-migrate/internal/pkg/model"
)

// Provider looks up dataset definitions in a catalog.
type Provider interface {
	// DatasetByName returns the definition,
	// or nil when the catalog does not contain the dataset.
	DatasetByName(ctx context.Context, name string) (*model.Dataset, error)
}

type memoryProvider struct {
	datasets map[string]*model.Dataset
}

// NewMemoryProvider creates a catalog over already parsed definitions.
func NewMemoryProvider(datasets ...*model.Dataset) Provider {
	byName := make(map[string]*model.Dataset)
	for _, dataset := range datasets {
		byName[dataset.Name] = dataset
	}
	return &memoryProvider{datasets: byName}
}

func (p *memoryProvider) DatasetByName(_ context.Context, name string) (*model.Dataset, error) {
	return p.datasets[name], nil
}
