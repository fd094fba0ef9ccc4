package endpoints

import (
	"bytes"
	_ "embed"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/gramsetu/contenthub/pkg/server"
)

//go:embed API.md
var apiReference []byte

const docsTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ContentHub API</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
code, pre { background: #f4f4f4; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
</style>
</head>
<body>
`

// RegisterDocsEndpoint serves the embedded API reference rendered to HTML.
func RegisterDocsEndpoint(s *server.Server) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var rendered bytes.Buffer
	rendered.WriteString(docsTemplate)
	if err := md.Convert(apiReference, &rendered); err != nil {
		rendered.Reset()
		rendered.WriteString(docsTemplate)
		rendered.Write(apiReference)
	}
	rendered.WriteString("</body>\n</html>\n")

	body := rendered.Bytes()
	s.Router.HandleFunc("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}).Methods("GET")
}
