package http

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/dashboard"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

type pageData struct {
	Title     string
	Dashboard *model.Dashboard
	Options   model.FilterOptions
	Request   dashboard.Request
	Query     template.URL
	Charts    []pageChart
	Error     string
}

type pageChart struct {
	Name  string
	Title string
	Error string
}

func (r *Router) page(c *gin.Context) {
	data := pageData{Title: "Dashboard comparativo da Educação, Internet e Renda no Brasil"}

	req, err := parseRequest(c)
	if err != nil {
		data.Error = err.Error()
		c.HTML(http.StatusBadRequest, "index", data)
		return
	}
	data.Request = req
	data.Query = template.URL(pageQuery(req).Encode())

	if data.Options, err = r.dashboards.Options(c.Request.Context()); err == nil {
		data.Dashboard, err = r.dashboards.Build(c.Request.Context(), req)
	}
	if err != nil {
		r.log.Error("render page", "error", err)
		data.Error = err.Error()
		c.HTML(http.StatusServiceUnavailable, "index", data)
		return
	}

	d := data.Dashboard
	data.Charts = append(data.Charts, pageChart{Name: dashboard.ChartBar, Title: "Barras", Error: d.Errors[dashboard.PanelBar]})
	for _, ind := range dashboard.Indicators {
		data.Charts = append(data.Charts, pageChart{Name: ind.Key, Title: ind.Label, Error: d.Errors[dashboard.PanelLines]})
	}
	c.HTML(http.StatusOK, "index", data)
}

func pageQuery(req dashboard.Request) url.Values {
	q := url.Values{}
	sel := req.Selection
	if sel.Region != "" {
		q.Set("region", sel.Region)
	}
	if sel.Year != 0 {
		q.Set("year", strconv.Itoa(sel.Year))
	}
	if sel.State != "" {
		q.Set("state", sel.State)
	}
	if req.ShowLabels {
		q.Set("labels", "1")
	}
	q.Set("income", strconv.FormatFloat(req.Income, 'f', -1, 64))
	q.Set("education", strconv.FormatFloat(req.Education, 'f', -1, 64))
	return q
}

var pageTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"money": func(v float64) string { return util.DisplayBR(v, util.KindPlain, 2) },
}).Parse(indexHTML))

const indexHTML = `<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
aside { width: 240px; padding: 16px; background: #f3f4f6; min-height: 100vh; }
main { flex: 1; padding: 16px 24px; }
.row { display: flex; gap: 16px; flex-wrap: wrap; }
.card { flex: 1; min-width: 200px; }
.err { color: #b91c1c; }
img { max-width: 100%; }
label { display: block; margin-top: 12px; }
</style>
</head>
<body>
<aside>
<form method="get" action="/">
<label>Filtrar por Região:
<select name="region"><option value="Todas">Todas</option>
{{- range .Options.Regions}}<option{{if eq . $.Request.Selection.Region}} selected{{end}}>{{.}}</option>{{end}}
</select></label>
<label>Filtrar por Ano:
<select name="year"><option value="Todos">Todos</option>
{{- range .Options.Years}}<option{{if eq . $.Request.Selection.Year}} selected{{end}}>{{.}}</option>{{end}}
</select></label>
<label>Filtrar por Estado:
<select name="state"><option value="Todos">Todos</option>
{{- range .Options.States}}<option{{if eq . $.Request.Selection.State}} selected{{end}}>{{.}}</option>{{end}}
</select></label>
<label><input type="checkbox" name="labels" value="1"{{if .Request.ShowLabels}} checked{{end}}> Valores nos Gráficos de Linha</label>
<label>Renda Média Domiciliar (R$):
<input name="income" value="{{money .Request.Income}}"></label>
<label>Ensino Superior (%):
<input name="education" value="{{money .Request.Education}}"></label>
<p><button type="submit">Aplicar</button></p>
</form>
<p><a href="/api/export.xlsx?{{.Query}}">Exportar planilha</a></p>
</aside>
<main>
<h1>{{.Title}}</h1>
{{if .Error}}<p class="err">{{.Error}}</p>{{end}}
{{with .Dashboard}}
{{with .AvgNote}}<p>Valores médios por estado {{.}}</p>{{end}}
<div class="row">
{{range .Metrics}}<div class="card"><h5>{{.Label}}: {{.Text}}</h5></div>{{end}}
</div>
<div class="row">
{{range .Extremes}}<div class="card"><h6>🔺{{.MaxLabel}}<br>🔻{{.MinLabel}}</h6></div>{{else}}<p>Nenhum dado para a seleção.</p>{{end}}
</div>
<div class="row">
<div class="card">{{with .Errors.map}}<p class="err">{{.}}</p>{{else}}<img src="/api/charts/map.png?{{$.Query}}" alt="Mapa">{{end}}</div>
</div>
{{end}}
{{range .Charts}}
<div>{{if .Error}}<p class="err">{{.Title}}: {{.Error}}</p>{{else}}<img src="/api/charts/{{.Name}}.png?{{$.Query}}" alt="{{.Title}}">{{end}}</div>
{{end}}
{{with .Dashboard}}{{with .Regression}}
<h2>Aplicação de 'Regressão Linear' para analisar a relação entre acesso à internet, renda e escolaridade.</h2>
{{range .Lines}}<p>{{.}}</p>{{end}}
{{with .Prediction}}<h3>Previsão de Acesso à Internet (%)</h3><p><strong>{{.Text}}</strong></p>{{end}}
<img src="/api/charts/scatter.png?{{$.Query}}" alt="Dispersão">
<h6>{{.Note}}</h6>
{{end}}{{with .Errors.regression}}<p class="err">{{.}}</p>{{end}}{{end}}
</main>
</body>
</html>
`
