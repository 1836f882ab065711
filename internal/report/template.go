package report

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root { --text: #1a1a2e; --muted: #6b7280; --border: #e5e7eb; --accent: #2563eb; --section-bg: #f8fafc; }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    line-height: 1.5;
    max-width: 900px;
    margin: 0 auto;
    padding: 20px;
  }
  h1 { font-size: 1.5rem; color: var(--accent); border-bottom: 3px solid var(--accent); padding-bottom: 8px; }
  h2 { font-size: 1.1rem; margin: 24px 0 10px; border-bottom: 2px solid var(--accent); padding-bottom: 4px; }
  .muted { color: var(--muted); font-size: 0.85rem; margin: 6px 0 16px; }
  table { border-collapse: collapse; width: 100%; font-size: 0.85rem; }
  th, td { padding: 4px 8px; border-bottom: 1px solid var(--border); text-align: right; }
  th:first-child, td:first-child { text-align: left; }
  th { background: var(--section-bg); }
  .chart { margin: 12px 0; }
  @media print { body { padding: 0; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="muted">Generated {{.Generated.Format "2006-01-02 15:04:05 MST"}}</p>

{{if .Fields}}
<h2>Results</h2>
<table>
{{range .Fields}}<tr><td>{{.Name}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
{{end}}

{{range .Charts}}<div class="chart">{{.}}</div>
{{end}}

{{with .Table}}
<h2>Schedule</h2>
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{end}}
</body>
</html>
`
