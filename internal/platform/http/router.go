package http

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/dashboard"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/export"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/render"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/logging"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

// Router wires HTTP handlers.
type Router struct {
	dashboards *dashboard.Service
	log        *logging.Logger
	origins    string
}

func NewRouter(svc *dashboard.Service, logger *logging.Logger, allowedOrigins string) *gin.Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	r := &Router{
		dashboards: svc,
		log:        logger,
		origins:    allowedOrigins,
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), r.corsMiddleware())
	router.SetHTMLTemplate(pageTemplate)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/", r.page)

	api := router.Group("/api")
	{
		api.GET("/options", r.getOptions)
		api.GET("/dashboard", r.getDashboard)
		api.GET("/predict", r.getPrediction)
		api.GET("/geojson", r.getGeoJSON)
		api.GET("/charts/:name", r.getChart)
		api.GET("/export.xlsx", r.exportXLSX)
	}

	return router
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := "*"
		for _, o := range trimmed {
			if o == "*" || o == origin {
				allowed = origin
				break
			}
		}
		c.Header("Access-Control-Allow-Origin", allowed)
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

// parseRequest reads region, year, state, labels, income and education.
func parseRequest(c *gin.Context) (dashboard.Request, error) {
	sel, err := dashboard.ParseSelection(c.Query("region"), c.Query("year"), c.Query("state"))
	if err != nil {
		return dashboard.Request{}, err
	}
	req := dashboard.NewRequest(sel)
	switch strings.ToLower(c.Query("labels")) {
	case "1", "true", "on", "exibir":
		req.ShowLabels = true
	}
	if req.Income, err = numberParam(c, "income", req.Income); err != nil {
		return dashboard.Request{}, err
	}
	if req.Education, err = numberParam(c, "education", req.Education); err != nil {
		return dashboard.Request{}, err
	}
	if err := req.Validate(); err != nil {
		return dashboard.Request{}, err
	}
	return req, nil
}

func numberParam(c *gin.Context, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := util.ParseBRNumber(raw)
	if err != nil {
		return 0, errors.New("invalid " + name + ": " + raw)
	}
	return v, nil
}

// build parses the query and renders the dashboard, writing the error
// response itself when it returns false.
func (r *Router) build(c *gin.Context) (*model.Dashboard, dashboard.Request, bool) {
	req, err := parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, req, false
	}
	d, err := r.dashboards.Build(c.Request.Context(), req)
	if err != nil {
		r.log.Error("build dashboard", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return nil, req, false
	}
	return d, req, true
}

func (r *Router) getOptions(c *gin.Context) {
	opts, err := r.dashboards.Options(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (r *Router) getDashboard(c *gin.Context) {
	d, _, ok := r.build(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d)
}

func (r *Router) getPrediction(c *gin.Context) {
	req, err := parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := r.dashboards.Predict(c.Request.Context(), req.Selection, req.Income, req.Education)
	if errors.Is(err, dashboard.ErrInsufficientData) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, dashboard.ErrPredictionRange) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (r *Router) getGeoJSON(c *gin.Context) {
	d, _, ok := r.build(c)
	if !ok {
		return
	}
	if d.Map == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": d.Errors[dashboard.PanelMap]})
		return
	}
	c.JSON(http.StatusOK, d.Map.Features)
}

func (r *Router) getChart(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("name"), ".png")
	d, _, ok := r.build(c)
	if !ok {
		return
	}

	var (
		buf     bytes.Buffer
		err     error
		missing = func(panel string) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chart unavailable", "detail": d.Errors[panel]})
		}
	)
	switch name {
	case dashboard.ChartMap:
		if d.Map == nil {
			missing(dashboard.PanelMap)
			return
		}
		err = render.Choropleth(&buf, d.Map)
	case dashboard.ChartBar:
		if d.Bar == nil {
			missing(dashboard.PanelBar)
			return
		}
		err = render.Chart(&buf, d.Bar)
	case dashboard.ChartScatter:
		if d.Regression == nil || d.Regression.Scatter == nil {
			missing(dashboard.PanelRegression)
			return
		}
		err = render.Chart(&buf, d.Regression.Scatter)
	default:
		if _, known := dashboard.IndicatorByKey(name); !known {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart " + name})
			return
		}
		cfg := lineChart(d, name)
		if cfg == nil {
			missing(dashboard.PanelLines)
			return
		}
		err = render.Chart(&buf, cfg)
	}
	if err != nil {
		r.log.Error("render chart", "chart", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func lineChart(d *model.Dashboard, key string) *model.ChartConfig {
	for i := range d.Lines {
		if d.Lines[i].Key == key {
			return &d.Lines[i]
		}
	}
	return nil
}

func (r *Router) exportXLSX(c *gin.Context) {
	d, _, ok := r.build(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, d); err != nil {
		r.log.Error("export xlsx", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=indicadores_estados.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
