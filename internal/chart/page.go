package chart

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/dbsmedya/gox3d/internal/scene"
)

// x3dom runtime loaded by generated pages.
const (
	X3DOMScript     = "https://www.x3dom.org/download/1.8.3/x3dom-full.js"
	X3DOMStylesheet = "https://www.x3dom.org/download/1.8.3/x3dom.css"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script type="text/javascript" src="{{.Script}}"></script>
<link rel="stylesheet" type="text/css" href="{{.Stylesheet}}">
</head>
<body>
<div id="chartholder">
{{.Scene}}
</div>
</body>
</html>
`))

// Page is a standalone HTML document showing one X3D scene.
type Page struct {
	Title string
	Scene *scene.Node
}

// Render writes the page to w.
func (p Page) Render(w io.Writer) error {
	var buf bytes.Buffer
	if err := scene.Encode(&buf, p.Scene, "  "); err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return pageTemplate.Execute(w, struct {
		Title      string
		Script     string
		Stylesheet string
		Scene      template.HTML
	}{
		Title:      p.Title,
		Script:     X3DOMScript,
		Stylesheet: X3DOMStylesheet,
		Scene:      template.HTML(buf.String()),
	})
}
