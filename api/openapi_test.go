package api

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOpenAPI_DocumentsEveryRoute(t *testing.T) {
	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(OpenAPI, &doc))
	require.Equal(t, "3.0.3", doc.OpenAPI)

	want := map[string]string{
		"/":                   "get",
		"/parse-file":         "post",
		"/parse-file/":        "post",
		"/upload-file-openai": "post",
		"/healthz":            "get",
		"/readyz":             "get",
		"/metrics":            "get",
		"/openapi.yaml":       "get",
	}
	for path, method := range want {
		ops, ok := doc.Paths[path]
		require.True(t, ok, "missing path %s", path)
		require.Contains(t, ops, method, "missing %s %s", method, path)
	}
}
