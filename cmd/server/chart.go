package main

import (
	"bytes"
	"context"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Simplici0/breakeven/internal/breakeven"
	"github.com/Simplici0/breakeven/internal/cache"
	"github.com/Simplici0/breakeven/internal/chart"
	"github.com/Simplici0/breakeven/internal/lesson"
	"github.com/Simplici0/breakeven/internal/logging"
	"github.com/Simplici0/breakeven/internal/render"
	"github.com/Simplici0/breakeven/internal/report"
	"github.com/Simplici0/breakeven/internal/scenario"
	"github.com/Simplici0/breakeven/internal/selftest"
)

const (
	calcBEP       = "bep"
	calcMOS       = "mos"
	maxChartWidth = 2400
)

type chartRequest struct {
	Scenario     string
	Model        breakeven.CostModel
	PlannedUnits float64
	ShowRegions  bool
	ShowMOS      bool
	Width        float64
	Question     lesson.Question
	Action       lesson.Action
	Ask          lesson.Question
	Calc         string
}

type homeViewData struct {
	baseViewData
	Request   chartRequest
	Scenarios []scenario.Scenario
	Chart     template.HTML
	BEPTag    string
	MOSTag    string
	CalcOut   string
	CheckMsg  string
	ChartURL  template.URL
	ExportURL template.URL
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseChartRequest(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	state := lesson.Apply(req.Question, req.Action, req.Ask)
	if req.Action == lesson.ActionShowRegions || req.Action == lesson.ActionMarkBreakEven {
		req.ShowRegions = true
	}
	req.Question = state.Active

	geometry := req.geometry()
	selectFixed := req.values()
	selectFixed.Set("question", string(req.Question))
	selectFixed.Set("action", string(lesson.ActionSelectFixed))
	var svg bytes.Buffer
	if err := render.SVGLinked(&svg, geometry, "/?"+selectFixed.Encode()); err != nil {
		writeError(w, err)
		return
	}

	scenarios, err := s.catalog.Scenarios(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	data := homeViewData{
		Request:   req,
		Scenarios: scenarios,
		Chart:     template.HTML(svg.String()),
		BEPTag:    geometry.BEPStatus,
		MOSTag:    geometry.MOSStatus,
		CheckMsg:  state.Message,
		ChartURL:  template.URL("/chart.svg?" + req.values().Encode()),
		ExportURL: template.URL("/export.csv?" + req.values().Encode()),
	}
	if err := req.Model.Validate(); err != nil {
		data.ErrorMessage = "Check inputs: " + breakeven.Reason(err)
	}
	switch req.Calc {
	case calcBEP:
		data.CalcOut = report.ExplainBEP(req.Model)
	case calcMOS:
		data.CalcOut = report.ExplainMOS(req.Model, req.PlannedUnits)
		data.MOSTag = report.MOSTag(req.Model, req.PlannedUnits)
	}

	s.renderTemplate(w, "home.html", data)
}

func (s *server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseChartRequest(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	key := cache.Key("svg", req.values().Encode())
	if cached, ok := s.cache.Get(r.Context(), key); ok {
		w.Header().Set("X-Cache", "hit")
		_, _ = w.Write([]byte(cached))
		return
	}

	var svg bytes.Buffer
	if err := render.SVG(&svg, req.geometry()); err != nil {
		writeError(w, err)
		return
	}
	if err := s.cache.Set(r.Context(), key, svg.String()); err != nil {
		logging.Warn("failed to cache chart", zap.String("key", key), zap.Error(err))
	}

	w.Header().Set("X-Cache", "miss")
	_, _ = w.Write(svg.Bytes())
}

func (s *server) handleCalcBEP(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseChartRequest(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	writeText(w, http.StatusOK, report.ExplainBEP(req.Model))
}

func (s *server) handleCalcMOS(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseChartRequest(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	writeText(w, http.StatusOK, report.ExplainMOS(req.Model, req.PlannedUnits)+"\n"+report.MOSTag(req.Model, req.PlannedUnits))
}

func (s *server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseChartRequest(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="breakeven.csv"`)
	if err := report.WriteCSV(w, report.Summary{Model: req.Model, PlannedUnits: req.PlannedUnits}); err != nil {
		logging.Error("failed to write csv", zap.Error(err))
	}
}

func (s *server) handleSelfTest(w http.ResponseWriter, r *http.Request) {
	checks := selftest.Run()
	status := http.StatusOK
	if !selftest.Passed(checks) {
		status = http.StatusInternalServerError
	}
	writeText(w, status, selftest.Report(checks))
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body + "\n"))
}

// parseChartRequest reads the chart form. Missing fields fall back to the selected
// scenario; present but unreadable numbers count as zero, like the page inputs.
func (s *server) parseChartRequest(ctx context.Context, q url.Values) (chartRequest, error) {
	name := strings.TrimSpace(q.Get("scenario"))
	if name == "" {
		name = scenario.DefaultName
	}
	preset, err := s.catalog.Scenario(ctx, name)
	if err != nil {
		return chartRequest{}, err
	}

	rounding := preset.Model.Rounding
	if raw := q.Get("rounding"); raw != "" {
		if rounding, err = breakeven.ParseRoundingMode(raw); err != nil {
			return chartRequest{}, err
		}
	}

	req := chartRequest{
		Scenario: name,
		Model: breakeven.NewCostModel(
			formFloat(q, "price", preset.Model.Price),
			formFloat(q, "vc", preset.Model.VariableCost),
			formFloat(q, "fc", preset.Model.FixedCost),
			formFloat(q, "maxu", preset.Model.MaxUnits),
			rounding,
		),
		PlannedUnits: formFloat(q, "plan", preset.PlannedUnits),
		ShowRegions:  formBool(q, "regions"),
		ShowMOS:      formBool(q, "mos"),
		Width:        formFloat(q, "width", s.chartWidth),
		Action:       lesson.Action(q.Get("action")),
		Calc:         q.Get("calc"),
	}

	if req.Width > maxChartWidth {
		req.Width = maxChartWidth
	}
	if req.Question, err = lesson.ParseQuestion(q.Get("question")); err != nil {
		return chartRequest{}, err
	}
	if raw := q.Get("ask"); raw != "" {
		if req.Ask, err = lesson.ParseQuestion(raw); err != nil {
			return chartRequest{}, err
		}
		req.Action = lesson.ActionAsk
	}

	return req, nil
}

func (c chartRequest) geometry() chart.Geometry {
	scale := chart.BuildScaleMapper(c.Model, chart.DefaultViewBounds(c.Width))
	opts := chart.Options{
		ShowRegions:  c.ShowRegions,
		ShowMOS:      c.ShowMOS,
		PlannedUnits: c.PlannedUnits,
	}
	return chart.BuildChartGeometry(c.Model, scale, opts.Guard(c.Model))
}

// values is the canonical query for the chart inputs; lesson state is left out.
func (c chartRequest) values() url.Values {
	v := url.Values{}
	v.Set("scenario", c.Scenario)
	v.Set("price", formatFloat(c.Model.Price))
	v.Set("vc", formatFloat(c.Model.VariableCost))
	v.Set("fc", formatFloat(c.Model.FixedCost))
	v.Set("maxu", formatFloat(c.Model.MaxUnits))
	v.Set("plan", formatFloat(c.PlannedUnits))
	v.Set("rounding", string(c.Model.Rounding))
	if c.ShowRegions {
		v.Set("regions", "1")
	}
	if c.ShowMOS {
		v.Set("mos", "1")
	}
	if c.Width > 0 {
		v.Set("width", formatFloat(c.Width))
	}
	return v
}

func formFloat(q url.Values, field string, fallback float64) float64 {
	if _, ok := q[field]; !ok {
		return fallback
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(q.Get(field)), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

func formBool(q url.Values, field string) bool {
	switch strings.ToLower(strings.TrimSpace(q.Get(field))) {
	case "1", "on", "true", "yes":
		return true
	}
	return false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
