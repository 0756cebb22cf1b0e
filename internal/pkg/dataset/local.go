package dataset

import (
	"context"
	"path/filepath"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/afero"

	"github.com/fabrictools/adf-migrate/internal/pkg/encoding/json"
	"github.com/fabrictools/adf-migrate/internal/pkg/model"
	"github.com/fabrictools/adf-migrate/internal/pkg/utils/errors"
)

type localProvider struct {
	fs  afero.Fs
	dir string
}

// NewLocalProvider creates a catalog over a directory of exported dataset
// definitions, one "<name>.json" file per dataset.
func NewLocalProvider(fs afero.Fs, dir string) Provider {
	return &localProvider{fs: fs, dir: dir}
}

func (p *localProvider) DatasetByName(ctx context.Context, name string) (*model.Dataset, error) {
	path := filepath.Join(p.dir, name+".json")

	exists, err := afero.Exists(p.fs, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	content, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, `cannot read dataset file "%s"`, path)
	}

	doc := orderedmap.New()
	if err := json.Decode(content, doc); err != nil {
		return nil, errors.Wrapf(err, `dataset file "%s" is not valid JSON`, path)
	}

	dataset, err := model.ParseDataset(ctx, doc)
	if err != nil {
		return nil, errors.Wrapf(err, `dataset file "%s" is not valid`, path)
	}
	return dataset, nil
}
