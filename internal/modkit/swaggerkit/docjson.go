package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"

	"scribe/internal/modkit/httpkit"
	"scribe/internal/platform/logger"
)

//go:embed openapi.json
var openapiJSON []byte

// docReader is a seam so tests can feed a broken document
var docReader = func() []byte { return openapiJSON }

// serveDocJSON renders the document once and serves the bytes on every hit
func serveDocJSON(titleSuffix string) http.HandlerFunc {
	doc, err := render(titleSuffix)
	if err != nil {
		logger.Named("swaggerkit").Error().Err(err).Msg("openapi document unusable")
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(doc)
	}
}

func render(titleSuffix string) ([]byte, error) {
	var spec map[string]any
	if err := json.Unmarshal(docReader(), &spec); err != nil {
		return nil, err
	}

	ensureServers(spec, httpkit.APIPrefix)
	if titleSuffix != "" {
		if info, ok := spec["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + titleSuffix
			}
		}
	}
	ensureErrorResponse(spec)
	addDefault(spec, "400", "Bad Request", 400, "validation", "text is a required field")
	addDefault(spec, "500", "Internal Server Error", 500, "internal", "internal error")
	return json.Marshal(spec)
}

// ensureServers pins the document to OAS 3.0.x with a servers entry, since the
// bundled UI cannot render 3.1
func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// ensureErrorResponse adds the error envelope schema unless the document has one
func ensureErrorResponse(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"required":    []any{"status_code", "status", "code", "error"},
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "string"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
	}
}

// addDefault gives every operation a status response when it declares none
func addDefault(spec map[string]any, status, text string, codeNum int, code, msg string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": text,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": codeNum,
					"status":      text,
					"code":        code,
					"error":       msg,
					"request_id":  "host/abc-000001",
				},
			},
		},
	}
	for _, p := range paths {
		item, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, v := range item {
			op, ok := v.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			if _, ok := resps[status]; !ok {
				resps[status] = resp
			}
		}
	}
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
