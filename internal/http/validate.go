package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// loadSchemas compiles every embedded schema, keyed by file name without
// the extension.
func loadSchemas() (map[string]*gojsonschema.Schema, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, err
	}
	schemas := make(map[string]*gojsonschema.Schema, len(entries))
	for _, e := range entries {
		raw, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, err
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", e.Name(), err)
		}
		schemas[strings.TrimSuffix(e.Name(), ".json")] = schema
	}
	return schemas, nil
}

// bind validates the body against the named schema and decodes it into dst.
// On failure it has already written a 400 and returns false.
func (s *Server) bind(c *gin.Context, schema string, dst any) bool {
	raw, err := c.GetRawData()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	res, err := s.schemas[schema].Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return false
	}
	if !res.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": describe(res.Errors()[0])})
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func describe(e gojsonschema.ResultError) string {
	if field := e.Field(); field != "" && field != "(root)" {
		return field + ": " + e.Description()
	}
	return e.Description()
}
