package dataset

import (
	"context"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/fabrictools/adf-migrate/internal/pkg/log"
	"github.com/fabrictools/adf-migrate/internal/pkg/model"
)

// Resolver looks up dataset definitions through a Provider and memoizes
// the results. Create one Resolver per pipeline transform invocation,
// the cache must not outlive it, see NewResolver.
type Resolver struct {
	provider Provider
	logger   log.Logger
	cache    map[string]*model.Dataset
}

// Side is one resolved half (source or sink) of a Copy activity mapping.
// Dataset is nil when the reference could not be resolved.
type Side struct {
	ReferenceName string
	Dataset       *model.Dataset
	Parameters    *orderedmap.OrderedMap
}

// CopyMappings is the structural mapping of a Copy activity:
// the source/sink dataset definitions and their call-site parameters.
// A side is nil when the activity carries no dataset reference for it.
type CopyMappings struct {
	Source *Side
	Sink   *Side
}

// NewResolver creates a resolver with an empty cache. The cache is scoped
// to one transform invocation on purpose, a shared cache could serve stale
// definitions between runs.
func NewResolver(provider Provider, logger log.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		logger:   logger,
		cache:    make(map[string]*model.Dataset),
	}
}

// DatasetByName resolves one dataset definition,
// nil result means the dataset is not present in the catalog.
func (r *Resolver) DatasetByName(ctx context.Context, name string) (*model.Dataset, error) {
	if cached, found := r.cache[name]; found {
		return cached, nil
	}

	dataset, err := r.provider.DatasetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	r.cache[name] = dataset
	return dataset, nil
}

// CopyMappings resolves the dataset mappings of a Copy activity:
// "inputs[0]" is the source reference, "outputs[0]" is the sink reference.
// Lookup failures degrade to an unresolved side, they never abort the
// transform of the whole pipeline.
func (r *Resolver) CopyMappings(ctx context.Context, activity *orderedmap.OrderedMap) *CopyMappings {
	return &CopyMappings{
		Source: r.resolveSide(ctx, activity, model.InputsKey),
		Sink:   r.resolveSide(ctx, activity, model.OutputsKey),
	}
}

func (r *Resolver) resolveSide(ctx context.Context, activity *orderedmap.OrderedMap, key string) *Side {
	references, ok := model.SliceValue(activity, key)
	if !ok || len(references) == 0 {
		return nil
	}

	reference, ok := model.ParseDatasetReference(references[0])
	if !ok {
		return nil
	}

	side := &Side{ReferenceName: reference.ReferenceName, Parameters: reference.Parameters}
	dataset, err := r.DatasetByName(ctx, reference.ReferenceName)
	if err != nil {
		r.logger.Warnf(`cannot resolve dataset "%s": %s`, reference.ReferenceName, err)
		return side
	}
	side.Dataset = dataset
	return side
}
