package notify

import (
	"fmt"
	"html/template"
	"strings"

	"jobwatch/core/report"
)

const digestTemplate = `<html>
<body style="font-family: sans-serif; color: #222;">
<h2>招聘信息更新 {{.Report.ReferenceDate.Format "2006-01-02"}}</h2>
<p>
当前有效岗位 {{.Report.TotalActive}} 个：
新增 {{.Report.Summary.New}}，更新 {{.Report.Summary.Updated}}，
过期 {{.Report.Summary.Expired}}{{if .Report.Summary.Skipped}}，跳过 {{.Report.Summary.Skipped}} 条无效数据{{end}}。
</p>
{{if .Report.New}}
<h3>新增岗位</h3>
<table border="1" cellspacing="0" cellpadding="6">
<tr style="background:#ffff00;"><th>公司</th><th>岗位</th><th>工作地点</th><th>截止时间</th><th>链接</th></tr>
{{range .Report.New}}
<tr>
<td>{{.Company}}</td>
<td>{{.Title}}</td>
<td>{{.Location}}</td>
<td>{{.DeadlineRaw}}</td>
<td>{{if .DetailURL}}<a href="{{.DetailURL}}">投递</a>{{end}}</td>
</tr>
{{end}}
</table>
{{end}}
{{if .Report.Updated}}
<h3>更新岗位</h3>
<table border="1" cellspacing="0" cellpadding="6">
<tr><th>公司</th><th>岗位</th><th>工作地点</th><th>截止时间</th><th>链接</th></tr>
{{range .Report.Updated}}
<tr>
<td>{{.Company}}</td>
<td>{{.Title}}</td>
<td>{{.Location}}</td>
<td>{{.DeadlineRaw}}</td>
<td>{{if .DetailURL}}<a href="{{.DetailURL}}">投递</a>{{end}}</td>
</tr>
{{end}}
</table>
{{end}}
{{if .Report.NoUpdates}}
<p>本次运行没有新增或更新的岗位。</p>
{{end}}
<p style="color:#888; font-size:12px;">生成时间 {{.Report.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>
</body>
</html>`

var digest = template.Must(template.New("digest").Parse(digestTemplate))

// RenderDigest renders the HTML body of the run digest email.
func RenderDigest(rep report.Report) (string, error) {
	var b strings.Builder
	data := struct{ Report report.Report }{Report: rep}
	if err := digest.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return b.String(), nil
}
