package report

import (
	"bytes"
	"html/template"
	"time"

	"labdesk/internal/domain"
)

type RenderData struct {
	Lab         *domain.LabSettings
	Patient     *domain.Patient
	TestName    string
	Result      *domain.Result
	GeneratedAt time.Time
}

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"fmtdate": func(t time.Time) string { return t.Format("02 Jan 2006 15:04") },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.TestName}} - {{.Patient.Name}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
  .header { border-bottom: 2px solid #222; padding-bottom: 12px; margin-bottom: 20px; }
  .header h1 { margin: 0 0 4px 0; font-size: 22px; }
  .meta { width: 100%; margin-bottom: 20px; }
  .meta td { padding: 2px 12px 2px 0; font-size: 14px; }
  table.results { width: 100%; border-collapse: collapse; }
  table.results th, table.results td { border: 1px solid #999; padding: 6px 10px; font-size: 14px; text-align: left; }
  table.results th { background: #f0f0f0; }
  .abnormal { font-weight: bold; color: #b00020; }
  .remarks { margin-top: 16px; font-size: 14px; }
  .footer { margin-top: 40px; font-size: 12px; color: #666; border-top: 1px solid #ccc; padding-top: 8px; }
</style>
</head>
<body>
<div class="header">
  <h1>{{.Lab.LabName}}</h1>
  <div>{{.Lab.Address}}{{if .Lab.Phone}} · {{.Lab.Phone}}{{end}}{{if .Lab.Email}} · {{.Lab.Email}}{{end}}</div>
</div>

<table class="meta">
<tr><td><strong>Patient:</strong> {{.Patient.Name}}</td><td><strong>Age/Gender:</strong> {{if .Patient.Age}}{{.Patient.Age}}{{end}}{{if .Patient.Gender}} / {{.Patient.Gender}}{{end}}</td></tr>
<tr><td><strong>Test:</strong> {{.TestName}}</td><td><strong>Collected:</strong> {{fmtdate .Result.CollectedAt}}</td></tr>
<tr><td><strong>Technician:</strong> {{.Result.Technician}}</td><td>{{if .Result.ReferredBy}}<strong>Referred by:</strong> {{.Result.ReferredBy}}{{end}}</td></tr>
</table>

<table class="results">
<tr><th>Parameter</th><th>Result</th><th>Unit</th><th>Normal Range</th><th>Flag</th></tr>
{{range .Result.ParameterResults}}
<tr>
  <td>{{.Name}}</td>
  <td{{if .Abnormal}} class="abnormal"{{end}}>{{.Value}}</td>
  <td>{{.Unit}}</td>
  <td>{{.NormalRange}}</td>
  <td>{{if .Abnormal}}<span class="abnormal">ABNORMAL</span>{{else}}Normal{{end}}</td>
</tr>
{{end}}
</table>

{{if .Result.Remarks}}<div class="remarks"><strong>Remarks:</strong> {{.Result.Remarks}}</div>{{end}}

<div class="footer">
  {{if .Lab.ReportFooter}}{{.Lab.ReportFooter}}<br>{{end}}
  Generated {{fmtdate .GeneratedAt}} · This is an electronically generated report.
</div>
</body>
</html>
`))

// RenderHTML produces the static downloadable report document.
func RenderHTML(data *RenderData) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
