package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/keboola/go-utils/pkg/wildcards"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrictools/adf-migrate/internal/pkg/cli/options"
	"github.com/fabrictools/adf-migrate/internal/pkg/encoding/json"
	"github.com/fabrictools/adf-migrate/internal/pkg/log"
)

const testPipelineJSON = `
{
  "name": "pipeline3",
  "properties": {
    "activities": [
      {
        "name": "Copy data1",
        "type": "Copy",
        "typeProperties": {"source": {"type": "JsonSource"}, "sink": {"type": "JsonSink"}},
        "inputs": [{"referenceName": "Json1", "type": "DatasetReference", "parameters": {"p_FileSystem": "fs1"}}],
        "outputs": [{"referenceName": "Json2", "type": "DatasetReference", "parameters": {"p_FileSystem": "landingzone"}}]
      }
    ]
  }
}
`

const testDatasetTemplate = `
{
  "name": "%s",
  "definition": {
    "properties": {
      "type": "Json",
      "typeProperties": {
        "location": {"type": "AzureBlobFSLocation", "fileSystem": {"value": "@dataset().p_FileSystem", "type": "Expression"}}
      }
    }
  }
}
`

func testFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "in/pipeline3.json", []byte(testPipelineJSON), 0o644))
	require.NoError(t, afero.WriteFile(fs, "datasets/Json1.json", fmtDataset("Json1"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "datasets/Json2.json", fmtDataset("Json2"), 0o644))
	return fs
}

func fmtDataset(name string) []byte {
	return []byte(fmt.Sprintf(testDatasetTemplate, name))
}

func TestRunTransform(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fs := testFs(t)
	logger := log.NewDebugLogger()
	o := &options.Options{Input: "in", Output: "out", DatasetsDir: "datasets"}

	require.NoError(t, runTransform(ctx, fs, o, logger))
	wildcards.Assert(t, `INFO  transformed pipeline "pipeline3", 0 warnings%A`, logger.AllMessages())

	content, err := afero.ReadFile(fs, "out/pipeline3.json")
	require.NoError(t, err)

	pipeline := orderedmap.New()
	json.MustDecode(content, pipeline)
	expected := `
{
  "name": "pipeline3",
  "properties": {
    "activities": [
      {
        "name": "Copy data1",
        "type": "Copy",
        "typeProperties": {
          "source": {
            "type": "JsonSource",
            "datasetSettings": {
              "type": "Json",
              "typeProperties": {"location": {"type": "AzureBlobFSLocation", "fileSystem": "fs1"}}
            }
          },
          "sink": {
            "type": "JsonSink",
            "datasetSettings": {
              "type": "Json",
              "typeProperties": {"location": {"type": "AzureBlobFSLocation", "fileSystem": "landingzone"}}
            }
          }
        }
      }
    ]
  }
}
`
	expectedDoc := orderedmap.New()
	json.MustDecodeString(expected, expectedDoc)
	assert.Equal(t, json.MustEncodeString(expectedDoc, true), string(content))
}

func TestRunTransform_MissingDataset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fs := testFs(t)
	require.NoError(t, fs.Remove("datasets/Json2.json"))
	logger := log.NewDebugLogger()
	o := &options.Options{Input: "in/pipeline3.json", Output: "out", DatasetsDir: "datasets"}

	// Unresolved datasets are warnings, not errors
	require.NoError(t, runTransform(ctx, fs, o, logger))
	expected := `WARN  [unresolved-dataset] activity "Copy data1": sink dataset "Json2" was not found in the catalog
INFO  transformed pipeline "pipeline3", 1 warnings
WARN  finished with 1 warnings, review them before deployment
`
	assert.Equal(t, expected, logger.AllMessages())
}

func TestRunTransform_NoPipelines(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("empty", 0o755))
	o := &options.Options{Input: "empty", Output: "out", DatasetsDir: "datasets"}

	err := runTransform(ctx, fs, o, log.NewNopLogger())
	require.Error(t, err)
	assert.Equal(t, `no pipeline definitions found in "empty"`, err.Error())
}

func TestTransformCommand_InvalidOptions(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr, afero.NewMemMapFs())
	cmd.SetArgs([]string{"transform"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "invalid options")
}
