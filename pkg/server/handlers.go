package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/ja7ad/gwnexus/pkg/estimator"
	"github.com/ja7ad/gwnexus/pkg/report"
)

// Query parameter names, mirroring the dashboard sliders.
const (
	qDepth = "depth"
	qEff   = "eff"
	qLoss  = "loss"
	qYear  = "year"
	qShape = "shape"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: status})
}

// parseParams reads depth, eff and loss, falling back to the defaults for
// absent values.
func parseParams(q url.Values) (estimator.Parameters, error) {
	p := estimator.DefaultParameters()
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{qDepth, &p.DepthM},
		{qEff, &p.EfficiencyPct},
		{qLoss, &p.TransmissionLossPct},
	} {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("%w: %s=%q is not an integer", estimator.ErrParameterRange, f.name, raw)
		}
		*f.dst = v
	}
	return p, p.Validate()
}

func encodeParams(p estimator.Parameters) string {
	q := url.Values{}
	q.Set(qDepth, strconv.Itoa(p.DepthM))
	q.Set(qEff, strconv.Itoa(p.EfficiencyPct))
	q.Set(qLoss, strconv.Itoa(p.TransmissionLossPct))
	return q.Encode()
}

// viewFor resolves the request's parameters and writes a 400/500 on failure.
func (s *Server) viewFor(w http.ResponseWriter, r *http.Request) (estimator.Parameters, report.View, bool) {
	p, err := parseParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return p, report.View{}, false
	}
	v, err := s.view(p)
	if err != nil {
		s.log.Error("estimate", "params", p.Key(), "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return p, report.View{}, false
	}
	return p, v, true
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	p, v, ok := s.viewFor(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.WriteHTML(w, v, report.HTMLOptions{ChartBase: "/charts", Query: encodeParams(p)}); err != nil {
		s.log.Error("render dashboard", "err", err)
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	p, v, ok := s.viewFor(w, r)
	if !ok {
		return
	}
	name := mux.Vars(r)["name"]
	c, found := report.Charts(v)[name]
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%v: %s", report.ErrUnknownChart, name))
		return
	}
	b, err := s.cache.chart(p, name, c.PNG)
	if err != nil {
		s.log.Error("render chart", "chart", name, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)
}

type healthResponse struct {
	Status     string `json:"status"`
	EnergyRows int    `json:"energy_rows"`
	ShareRows  int    `json:"category_rows"`
	Tubewells  int    `json:"tubewell_rows"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		EnergyRows: len(s.data.Energy),
		ShareRows:  len(s.data.Categories),
		Tubewells:  len(s.data.Tubewells),
	})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	_, v, ok := s.viewFor(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := report.WriteJSON(w, v); err != nil {
		s.log.Error("write estimate", "err", err)
	}
}

type tableResponse struct {
	Params   estimator.Parameters `json:"params"`
	Rows     any                  `json:"rows"`
	Warnings []estimator.Warning  `json:"warnings,omitempty"`
}

// long reports whether the caller asked for one row per (year, type).
func long(r *http.Request) bool { return r.URL.Query().Get(qShape) == "long" }

func (s *Server) handleVolumes(w http.ResponseWriter, r *http.Request) {
	p, v, ok := s.viewFor(w, r)
	if !ok {
		return
	}
	resp := tableResponse{Params: p, Rows: v.Result.Volumes, Warnings: v.Result.Warnings}
	if long(r) {
		resp.Rows = estimator.MeltVolumes(v.Result.Volumes)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleShares(w http.ResponseWriter, r *http.Request) {
	p, v, ok := s.viewFor(w, r)
	if !ok {
		return
	}
	resp := tableResponse{Params: p, Rows: v.Result.Shares, Warnings: v.Result.Warnings}
	if long(r) {
		resp.Rows = estimator.MeltShares(v.Result.Shares)
	}
	writeJSON(w, http.StatusOK, resp)
}

type insightResponse struct {
	estimator.Insight
	Summary string `json:"summary"`
}

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	_, v, ok := s.viewFor(w, r)
	if !ok {
		return
	}
	year := s.cfg.InsightYear
	if raw := r.URL.Query().Get(qYear); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("year=%q is not an integer", raw))
			return
		}
		year = y
	}
	in, err := estimator.KeyInsight(v.Result, year)
	if errors.Is(err, estimator.ErrYearNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, insightResponse{Insight: in, Summary: in.Summary()})
}

type tubewellResponse struct {
	Params      estimator.Parameters          `json:"params"`
	Counts      []estimator.TubewellRecord    `json:"counts"`
	PerTubewell []estimator.PerTubewellRecord `json:"per_tubewell_af"`
}

func (s *Server) handleTubewells(w http.ResponseWriter, r *http.Request) {
	p, v, ok := s.viewFor(w, r)
	if !ok {
		return
	}
	if len(v.Tubewells) == 0 {
		writeError(w, http.StatusNotFound, "no tube-well data loaded")
		return
	}
	writeJSON(w, http.StatusOK, tubewellResponse{Params: p, Counts: v.Tubewells, PerTubewell: v.PerTubewell})
}
