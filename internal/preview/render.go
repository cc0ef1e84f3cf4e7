package preview

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/eurouni/eurostudy/internal/utils"
)

// RenderHTML renders the document to a standalone A4-styled HTML page.
// The same output feeds the live preview channel and the PDF rasterizer.
func RenderHTML(doc Document) (string, error) {
	const op = "preview.RenderHTML"

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, doc); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to render preview", err)
	}
	return buf.String(), nil
}

var pageTmpl = template.Must(template.New("resume").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { size: A4; margin: 14mm; }
  body { font-family: "Helvetica Neue", Arial, sans-serif; color: #1c2733; margin: 0; }
  .header { border-bottom: 3px solid #003399; padding-bottom: 10px; margin-bottom: 18px; }
  .name { font-size: 26px; font-weight: 700; margin: 0; }
  .headline { font-size: 14px; color: #4a5a6a; margin: 2px 0 6px; }
  .contact { font-size: 11px; color: #5d6d7c; }
  .summary { font-size: 12px; margin-top: 8px; }
  .section { margin-bottom: 16px; }
  .section h2 { font-size: 13px; text-transform: uppercase; letter-spacing: 1px;
                color: #003399; border-bottom: 1px solid #d4dce4; padding-bottom: 3px; }
  .entry { margin-bottom: 8px; }
  .entry .line { font-size: 12px; }
  .entry .primary { font-weight: 600; }
  .entry .period { float: right; color: #7d8a96; font-size: 11px; }
  .entry .detail { font-size: 11px; color: #4a5a6a; }
  ul { margin: 3px 0 0 16px; padding: 0; font-size: 11px; }
  .placeholder { text-align: center; color: #8a97a3; margin-top: 120px; }
</style>
</head>
<body>
{{- if .Placeholder}}
  <div class="placeholder">
    <h1>{{.Header.FullName}}</h1>
    <p>Start filling in your details to see the live preview here.</p>
  </div>
{{- else}}
  <div class="header">
    <p class="name">{{.Header.FullName}}</p>
    {{- if .Header.Headline}}<p class="headline">{{.Header.Headline}}</p>{{end}}
    {{- if .Header.Contact}}<p class="contact">{{join .Header.Contact " · "}}</p>{{end}}
    {{- if .Header.Summary}}<p class="summary">{{.Header.Summary}}</p>{{end}}
  </div>
  {{- range .Sections}}
  <div class="section">
    <h2>{{.Title}}</h2>
    {{- range .Entries}}
    <div class="entry">
      <div class="line">
        <span class="primary">{{.Primary}}</span>
        {{- if .Period}}<span class="period">{{.Period}}</span>{{end}}
        {{- if .Secondary}} — {{.Secondary}}{{end}}
      </div>
      {{- if .Detail}}<div class="detail">{{.Detail}}</div>{{end}}
      {{- if .Bullets}}
      <ul>
        {{- range .Bullets}}<li>{{.}}</li>{{end}}
      </ul>
      {{- end}}
    </div>
    {{- end}}
  </div>
  {{- end}}
{{- end}}
</body>
</html>
`))
