package transform

import (
	"context"
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/require"

	"github.com/fabrictools/adf-migrate/internal/pkg/dataset"
	"github.com/fabrictools/adf-migrate/internal/pkg/encoding/json"
	"github.com/fabrictools/adf-migrate/internal/pkg/log"
	"github.com/fabrictools/adf-migrate/internal/pkg/model"
)

// testCatalog returns the Json1 (parametrized source) and Json2
// (parametrized sink) dataset definitions used by most tests.
func testCatalog(t *testing.T) dataset.Provider {
	t.Helper()
	return dataset.NewMemoryProvider(
		parseDataset(t, `
{
  "name": "Json1",
  "definition": {
    "properties": {
      "type": "Json",
      "linkedServiceName": {"referenceName": "AzureDataLakeStorage1", "type": "LinkedServiceReference"},
      "parameters": {"p_FileSystem": {"type": "string"}, "p_Directory": {"type": "string"}},
      "typeProperties": {
        "location": {
          "type": "AzureBlobFSLocation",
          "folderPath": {"value": "@dataset().p_Directory", "type": "Expression"},
          "fileSystem": {"value": "@dataset().p_FileSystem", "type": "Expression"}
        }
      }
    }
  }
}
`),
		parseDataset(t, `
{
  "name": "Json2",
  "definition": {
    "properties": {
      "type": "Json",
      "linkedServiceName": {"referenceName": "AzureDataLakeStorage1", "type": "LinkedServiceReference"},
      "parameters": {"p_FileSystem": {"type": "string"}},
      "typeProperties": {
        "location": {
          "type": "AzureBlobFSLocation",
          "folderPath": "out",
          "fileSystem": {"value": "@dataset().p_FileSystem", "type": "Expression"}
        }
      }
    }
  }
}
`),
	)
}

func parseDataset(t *testing.T, definition string) *model.Dataset {
	t.Helper()
	doc := orderedmap.New()
	json.MustDecodeString(definition, doc)
	out, err := model.ParseDataset(context.Background(), doc)
	require.NoError(t, err)
	return out
}

func parseJSON(t *testing.T, content string) *orderedmap.OrderedMap {
	t.Helper()
	out := orderedmap.New()
	require.NoError(t, json.DecodeString(content, out))
	return out
}

func encode(t *testing.T, value any) string {
	t.Helper()
	out, err := json.EncodeString(value, false)
	require.NoError(t, err)
	return out
}

// nested returns the value at the given key path, failing the test when
// an intermediate key is not an object.
func nested(t *testing.T, m *orderedmap.OrderedMap, path ...string) any {
	t.Helper()
	current := m
	for i, key := range path {
		if i == len(path)-1 {
			value, found := current.Get(key)
			require.True(t, found, "missing key %q", key)
			return value
		}
		next, ok := model.MapValue(current, key)
		require.True(t, ok, "key %q is not an object", key)
		current = next
	}
	return nil
}

// nestedMap returns the object at the given key path.
func nestedMap(t *testing.T, m *orderedmap.OrderedMap, path ...string) *orderedmap.OrderedMap {
	t.Helper()
	current := m
	for _, key := range path {
		next, ok := model.MapValue(current, key)
		require.True(t, ok, "key %q is not an object", key)
		current = next
	}
	return current
}

// copyActivityJSON is the Copy activity of the pipeline3 test scenario.
const copyActivityJSON = `
{
  "name": "Copy data1",
  "type": "Copy",
  "dependsOn": [],
  "policy": {"timeout": "0.12:00:00", "retry": 0, "secureOutput": false},
  "userProperties": [],
  "typeProperties": {
    "source": {
      "type": "JsonSource",
      "storeSettings": {
        "type": "AzureBlobFSReadSettings",
        "recursive": true,
        "wildcardFolderPath": "input",
        "wildcardFileName": "*.json",
        "enablePartitionDiscovery": false
      },
      "formatSettings": {"type": "JsonReadSettings"}
    },
    "sink": {
      "type": "JsonSink",
      "storeSettings": {"type": "AzureBlobFSWriteSettings"},
      "formatSettings": {"type": "JsonWriteSettings"}
    },
    "enableStaging": true,
    "parallelCopies": 13,
    "dataIntegrationUnits": 32
  },
  "inputs": [
    {
      "referenceName": "Json1",
      "type": "DatasetReference",
      "parameters": {
        "p_FileSystem": {"value": "@pipeline().globalParameters.gp_Container", "type": "Expression"},
        "p_Directory": {"value": "@pipeline().globalParameters.gp_Directory", "type": "Expression"}
      }
    }
  ],
  "outputs": [
    {"referenceName": "Json2", "type": "DatasetReference", "parameters": {"p_FileSystem": "landingzone"}}
  ]
}
`

func newTestTransformer(t *testing.T) (*Transformer, log.DebugLogger) {
	t.Helper()
	logger := log.NewDebugLogger()
	return New(testCatalog(t), logger), logger
}
