package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/service"
)

type notice struct {
	Text  string
	Error bool
	Link  string
}

type executiveView struct {
	Title   string
	Active  string
	Status  service.Status
	Notice  *notice
	Page    service.ExecutivePage
	Export  bool
	Refresh int
}

type assistantView struct {
	Query       string
	EquipmentID string
	Hint        string
	Response    *models.QueryResponse
	Err         error
}

type operatorView struct {
	Title        string
	Active       string
	Status       service.Status
	Notice       *notice
	Page         service.OperatorPage
	Statuses     []models.EquipmentStatus
	QuickQueries []string
	Assistant    assistantView
}

func (s *Server) handleExecutive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	page := s.svcs.Executive.Page(ctx)
	data := executiveView{
		Title:   "Executive Dashboard",
		Active:  "executive",
		Status:  page.Status,
		Notice:  s.exportNotice(ctx, r.URL.Query()),
		Page:    page,
		Export:  s.svcs.Reports != nil,
		Refresh: int(s.hub.Interval().Seconds()),
	}

	status := http.StatusOK
	result := "ok"
	if page.Err != nil {
		status = http.StatusBadGateway
		result = "error"
	}
	metrics.PageRendersTotal.WithLabelValues("executive", result).Inc()
	s.render(w, status, "executive.html", data)
}

// exportNotice only links to reports it presigns itself from the object key,
// never to a URL taken from the request.
func (s *Server) exportNotice(ctx context.Context, q url.Values) *notice {
	switch q.Get("export") {
	case "ok":
		n := &notice{Text: "Executive report exported."}
		if key := q.Get("report"); key != "" && s.svcs.Reports != nil {
			link, err := s.svcs.Reports.DownloadURL(ctx, key)
			if err != nil {
				log.Warn().Err(err).Msg("report link unavailable")
			} else {
				n.Link = link
			}
		}
		return n
	case "fail":
		return &notice{Text: "Report export failed.", Error: true}
	}
	return nil
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.svcs.Reports == nil {
		http.NotFound(w, r)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	key, err := s.svcs.Reports.ExportExecutive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("executive export failed")
		http.Redirect(w, r, "/executive?export=fail", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/executive?"+url.Values{"export": {"ok"}, "report": {key}}.Encode(), http.StatusSeeOther)
}

func (s *Server) handleOperator(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.renderOperator(w, r, assistantView{Query: q.Get("q"), EquipmentID: q.Get("equipment")}, resolveNotice(q.Get("resolved")))
}

func resolveNotice(v string) *notice {
	switch v {
	case "ok":
		return &notice{Text: "Alert resolved."}
	case "fail":
		return &notice{Text: "Failed to resolve alert.", Error: true}
	}
	return nil
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	av := assistantView{
		Query:       strings.TrimSpace(r.PostForm.Get("query")),
		EquipmentID: strings.TrimSpace(r.PostForm.Get("equipment")),
	}

	resp, err := s.svcs.Assistant.Ask(r.Context(), av.Query, av.EquipmentID)
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		av.Hint = "Type a question or pick one of the quick queries."
	case err != nil:
		av.Err = err
	default:
		av.Response = resp
	}
	s.renderOperator(w, r, av, nil)
}

func (s *Server) renderOperator(w http.ResponseWriter, r *http.Request, av assistantView, n *notice) {
	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	q := r.URL.Query()
	params := service.OperatorParams{EquipmentID: av.EquipmentID, Status: q.Get("status")}
	if r.Method == http.MethodPost {
		params.Status = r.PostForm.Get("status")
	}
	page := s.svcs.Operator.Page(ctx, params)

	result := "ok"
	if page.Degraded() {
		result = "degraded"
	}
	metrics.PageRendersTotal.WithLabelValues("operator", result).Inc()

	s.render(w, http.StatusOK, "operator.html", operatorView{
		Title:        "Operator Dashboard",
		Active:       "operator",
		Status:       page.Status,
		Notice:       n,
		Page:         page,
		Statuses:     models.Statuses,
		QuickQueries: service.QuickQueries,
		Assistant:    av,
	})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), jsonTimeout)
	defer cancel()

	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	back := url.Values{}
	if sel := r.PostForm.Get("equipment"); sel != "" {
		back.Set("equipment", sel)
	}
	if st := r.PostForm.Get("status"); st != "" {
		back.Set("status", st)
	}
	if _, err := s.svcs.Alerts.Resolve(ctx, id, r.PostForm.Get("equipment_id")); err != nil {
		back.Set("resolved", "fail")
	} else {
		back.Set("resolved", "ok")
	}
	http.Redirect(w, r, "/operator?"+back.Encode(), http.StatusSeeOther)
}

func (s *Server) handleAPIQuery(w http.ResponseWriter, r *http.Request) {
	var req models.QueryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	resp, err := s.svcs.Assistant.Ask(r.Context(), req.Query, req.EquipmentID)
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), jsonTimeout)
	defer cancel()

	st := s.svcs.Status.Check(ctx)
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": st.Backend,
		"ai":      st.AI,
	})
}
