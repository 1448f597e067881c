package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/format"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/service"
)

//go:embed templates/*.html static/*
var assets embed.FS

var pages = []string{"executive.html", "operator.html"}

const (
	pageTimeout = 15 * time.Second
	jsonTimeout = 10 * time.Second
)

type Options struct {
	RefreshInterval time.Duration
}

type Server struct {
	mux  *http.ServeMux
	tmpl map[string]*template.Template
	svcs *service.Services
	hub  *Hub
}

func New(svcs *service.Services, opts Options) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		mux:  http.NewServeMux(),
		tmpl: tmpl,
		svcs: svcs,
		hub:  NewHub(svcs.Executive.Snapshot, opts.RefreshInterval),
	}
	s.routes()
	return s, nil
}

func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) routes() {
	static, _ := fs.Sub(assets, "static")
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("GET /ws", s.hub.ServeWS)

	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/executive", http.StatusSeeOther)
	})
	s.mux.HandleFunc("GET /executive", s.handleExecutive)
	s.mux.HandleFunc("POST /executive/export", s.handleExport)
	s.mux.HandleFunc("GET /operator", s.handleOperator)
	s.mux.HandleFunc("POST /operator/ask", s.handleAsk)
	s.mux.HandleFunc("POST /alerts/{id}/resolve", s.handleResolve)
	s.mux.HandleFunc("POST /api/query", s.handleAPIQuery)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func parseTemplates() (map[string]*template.Template, error) {
	funcs := format.FuncMap()
	funcs["operatorURL"] = operatorURL
	funcs["rawValue"] = rawValue
	funcs["errText"] = errText

	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := template.New(p).Funcs(funcs).ParseFS(assets, "templates/layout.html", "templates/"+p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		out[p] = t
	}
	return out, nil
}

// render executes into a buffer first so a template failure can still
// produce a clean 500.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := s.tmpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// operatorURL builds an operator view link that keeps the status filter.
func operatorURL(filter models.EquipmentStatus, equipmentID string) string {
	q := url.Values{}
	if filter != "" {
		q.Set("status", string(filter))
	}
	if equipmentID != "" {
		q.Set("equipment", equipmentID)
	}
	if len(q) == 0 {
		return "/operator"
	}
	return "/operator?" + q.Encode()
}

// rawValue prints a shift summary value: strings unquoted, anything else as JSON.
func rawValue(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
