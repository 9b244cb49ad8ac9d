// Package swaggerkit serves the API's OpenAPI document and a Swagger UI for it
package swaggerkit

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	phttp "scribe/internal/platform/net/http"
)

// DocsPath is where the UI lives; the document is at DocsPath + "/doc.json"
const DocsPath = "/api/docs"

// Options tune what Mount serves
type Options struct {
	Enabled bool
	// TitleSuffix is appended to info.title, e.g. an environment name
	TitleSuffix string
}

// Mount serves the UI and document when enabled
func Mount(r phttp.Router, opt Options) {
	if !opt.Enabled {
		return
	}
	r.Get(DocsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDocJSON(opt.TitleSuffix))
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("scribe"),
		httpSwagger.URL(DocsPath+"/doc.json"),
	))
}
