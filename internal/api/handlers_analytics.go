package api

import (
	"net/http"
	"strconv"

	"github.com/giselleandrade1/lembrafacil/internal/analytics"
	"github.com/giselleandrade1/lembrafacil/internal/app"
	"github.com/giselleandrade1/lembrafacil/internal/usecase"
)

type analyticsHandler struct {
	c *app.Container
}

type scheduleResponse struct {
	Totals   map[string]int   `json:"totals"`
	Slots    []analytics.Slot `json:"slots"`
	Quantum  int              `json:"quantum"`
	Makespan int              `json:"makespan"`
}

type matrixResponse struct {
	Cells []analytics.Cell `json:"cells"`
	Count int              `json:"count"`
}

// Analyze handles GET /api/analytics?quantum=&strict=
func (h *analyticsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	quantum, ok := queryInt(w, r, "quantum")
	if !ok {
		return
	}
	strict, ok := queryBool(w, r, "strict")
	if !ok {
		return
	}

	out, err := h.c.AnalyzeUseCase().Execute(r.Context(), usecase.AnalyzeInput{Quantum: quantum, Strict: strict})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Report)
}

// Schedule handles GET /api/schedule?quantum=
func (h *analyticsHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	quantum, ok := queryInt(w, r, "quantum")
	if !ok {
		return
	}

	out, err := h.c.ScheduleUseCase().Execute(r.Context(), usecase.ScheduleInput{Quantum: quantum})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	slots := out.Slots
	if slots == nil {
		slots = []analytics.Slot{}
	}
	writeJSON(w, http.StatusOK, scheduleResponse{
		Totals:   out.Totals,
		Slots:    slots,
		Quantum:  out.Quantum,
		Makespan: out.Makespan,
	})
}

// Matrix handles GET /api/matrix
func (h *analyticsHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	out, err := h.c.ClassifyUseCase().Execute(r.Context(), usecase.ClassifyInput{})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	cells := out.Cells
	if cells == nil {
		cells = []analytics.Cell{}
	}
	writeJSON(w, http.StatusOK, matrixResponse{Cells: cells, Count: out.Count})
}

// queryInt parses an optional integer query parameter. An absent parameter is 0.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name+": "+raw)
		return 0, false
	}
	return n, true
}

// queryBool parses an optional boolean query parameter. An absent parameter is false.
func queryBool(w http.ResponseWriter, r *http.Request, name string) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name+": "+raw)
		return false, false
	}
	return b, true
}
