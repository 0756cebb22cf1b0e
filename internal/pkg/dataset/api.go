package dataset

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/fabrictools/adf-migrate/internal/pkg/encoding/json"
	"github.com/fabrictools/adf-migrate/internal/pkg/model"
	"github.com/fabrictools/adf-migrate/internal/pkg/utils/errors"
)

const (
	apiRequestTimeout = 30 * time.Second
	apiRetryCount     = 3
	apiRetryWaitTime  = 100 * time.Millisecond
)

type apiProvider struct {
	client *resty.Client
}

// NewAPIProvider creates a catalog over a factory export endpoint,
// dataset definitions are fetched from "<baseURL>/datasets/<name>".
func NewAPIProvider(baseURL string) Provider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(apiRequestTimeout).
		SetRetryCount(apiRetryCount).
		SetRetryWaitTime(apiRetryWaitTime).
		AddRetryCondition(func(response *resty.Response, err error) bool {
			return err != nil || response.StatusCode() >= http.StatusInternalServerError
		})
	return &apiProvider{client: client}
}

func (p *apiProvider) DatasetByName(ctx context.Context, name string) (*model.Dataset, error) {
	response, err := p.client.R().
		SetContext(ctx).
		SetPathParam("name", name).
		Get("/datasets/{name}")
	if err != nil {
		return nil, errors.Wrapf(err, `cannot fetch dataset "%s"`, name)
	}

	switch {
	case response.StatusCode() == http.StatusNotFound:
		return nil, nil
	case response.IsError():
		return nil, errors.Errorf(`cannot fetch dataset "%s": status %d`, name, response.StatusCode())
	}

	doc := orderedmap.New()
	if err := json.Decode(response.Body(), doc); err != nil {
		return nil, errors.Wrapf(err, `dataset "%s" response is not valid JSON`, name)
	}

	dataset, err := model.ParseDataset(ctx, doc)
	if err != nil {
		return nil, errors.Wrapf(err, `dataset "%s" response is not valid`, name)
	}
	return dataset, nil
}
