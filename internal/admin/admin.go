// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package admin exposes the operational HTTP surface sentrywalld listens
// on: Prometheus metrics, a health check, and a read-only per-table dump.
// None of this sits on the packet path (spec.md §7); it is pure
// control-plane visibility.
package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sentrywall.dev/sentrywall/internal/logging"
	"sentrywall.dev/sentrywall/internal/pipeline"
	"sentrywall.dev/sentrywall/internal/stats"
	"sentrywall.dev/sentrywall/internal/tables"
)

// Server is the admin/metrics HTTP listener for one sentrywalld instance.
type Server struct {
	router   *mux.Router
	http     *http.Server
	instance uuid.UUID
	backend  tables.Backend
	set      *tables.Set
	pipeline *pipeline.Pipeline
}

// New builds a Server bound to addr, backed by set and pipeline. instance
// is logged and surfaced at /healthz so a fleet operator can tell
// redeployed instances apart without relying on PID/hostname alone.
func New(addr string, set *tables.Set, backend tables.Backend, p *pipeline.Pipeline, instance uuid.UUID) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		instance: instance,
		backend:  backend,
		set:      set,
		pipeline: p,
	}
	s.http = &http.Server{Addr: addr, Handler: s.router}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	registry := prometheus.NewRegistry()
	registry.MustRegister(stats.NewPromCollector(s.pipeline.Counters()))

	s.router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.router.HandleFunc("/debug/tables/{name}", s.handleDebugTable).Methods(http.MethodGet)
}

// Start begins serving in the background. ListenAndServe's error is
// reported to logging rather than returned, matching the teacher's
// fire-and-forget admin-listener pattern.
func (s *Server) Start() {
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Default().Error("admin server stopped", "error", err)
		}
	}()
}

// Shutdown gracefully stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

type healthResponse struct {
	Status   string `json:"status"`
	Instance string `json:"instance"`
	Backend  string `json:"backend"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(healthResponse{
		Status:   "ok",
		Instance: s.instance.String(),
		Backend:  string(s.backend),
	})
}

type tableDumpResponse struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Keys  []string `json:"keys,omitempty"`
}

// handleDebugTable reports a table's current size, and for the small
// admin-owned tables (whitelist, icmp_allow, ipv4_drop, ipv6_drop) its
// keys too; flow and bypass tables only ever report a count (spec.md §12: never flow
// payload data).
func (s *Server) handleDebugTable(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	kv, ok := s.lookupKV(name)
	if !ok {
		http.Error(w, "unknown table", http.StatusNotFound)
		return
	}

	resp := tableDumpResponse{Name: name, Count: kv.Len()}
	if dumpableKeys(name) {
		kv.Range(func(key, _ []byte) bool {
			resp.Keys = append(resp.Keys, hexKey(key))
			return true
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) lookupKV(name string) (tables.KV, bool) {
	switch name {
	case tables.Whitelist:
		return s.set.Whitelist, true
	case tables.ICMPAllow:
		return s.set.ICMPAllow, true
	case tables.IPv4Drop:
		return s.set.IPv4Drop, true
	case tables.IPv6Drop:
		return s.set.IPv6Drop, true
	case tables.TCPFlow:
		return s.set.TCPFlow, true
	case tables.UDPFlow:
		return s.set.UDPFlow, true
	case tables.TCP6Flow:
		return s.set.TCP6Flow, true
	case tables.UDP6Flow:
		return s.set.UDP6Flow, true
	case tables.FlowTableV4:
		return s.set.FlowTableV4, true
	case tables.FlowTableV6:
		return s.set.FlowTableV6, true
	case tables.TCPRate:
		return s.set.TCPRate, true
	case tables.UDPRateLimit:
		return s.set.UDPRateLimit, true
	default:
		return nil, false
	}
}

func dumpableKeys(name string) bool {
	switch name {
	case tables.Whitelist, tables.IPv4Drop, tables.IPv6Drop, tables.ICMPAllow:
		return true
	default:
		return false
	}
}

func hexKey(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0F]
	}
	return string(out)
}
