package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/helmcode/seo-ai/pkg/analyzer"
	"github.com/helmcode/seo-ai/pkg/metrics"
	"github.com/helmcode/seo-ai/pkg/model"
	"github.com/helmcode/seo-ai/pkg/session"
)

const maxBodyBytes = 64 << 10

type Analyzer interface {
	Analyze(ctx context.Context, url string) (*model.AnalysisReport, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, url string, issues []string) []model.Recommendation
}

type Handler struct {
	analyzer        Analyzer
	fetcher         Fetcher
	sessions        *session.Manager
	analysisTimeout time.Duration
	upgrader        websocket.Upgrader
}

func NewHandler(a Analyzer, f Fetcher, sessions *session.Manager, analysisTimeout time.Duration) *Handler {
	return &Handler{
		analyzer:        a,
		fetcher:         f,
		sessions:        sessions,
		analysisTimeout: analysisTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS already allows any origin for the JSON API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type analyzeRequest struct {
	URL string `json:"url"`
}

type recommendationsRequest struct {
	URL    string   `json:"url"`
	Issues []string `json:"issues"`
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}
	url, ok := validURL(w, req.URL)
	if !ok {
		return
	}

	ctx := r.Context()
	if h.analysisTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.analysisTimeout)
		defer cancel()
	}
	report, err := h.analyzer.Analyze(ctx, url)
	if err != nil {
		if errors.Is(err, analyzer.ErrTimeout) {
			writeError(w, http.StatusGatewayTimeout, err.Error())
			return
		}
		if errors.Is(err, context.Canceled) {
			// Client went away; nobody to answer.
			log.Printf("analyze %s: %v", url, err)
			return
		}
		log.Printf("analyze %s: %v", url, err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationsRequest
	if !decode(w, r, &req) {
		return
	}
	url, ok := validURL(w, req.URL)
	if !ok {
		return
	}
	if req.Issues == nil {
		req.Issues = []string{}
	}
	writeJSON(w, http.StatusOK, h.fetcher.Fetch(r.Context(), url, req.Issues))
}

func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, h.sessions.Create())
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Get(r.PathValue("id"))
	writeSnapshot(w, http.StatusOK, snap, err)
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}
	url, ok := validURL(w, req.URL)
	if !ok {
		return
	}
	snap, err := h.sessions.Submit(r.PathValue("id"), url)
	writeSnapshot(w, http.StatusAccepted, snap, err)
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Reset(r.PathValue("id"))
	writeSnapshot(w, http.StatusOK, snap, err)
}

func (h *Handler) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Upgrade(r.PathValue("id"))
	writeSnapshot(w, http.StatusOK, snap, err)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeSnapshot(w, http.StatusOK, snap, err)
		return
	}
	if snap.State != session.StateDashboard || snap.Report == nil {
		writeError(w, http.StatusConflict, "session is "+string(snap.State))
		return
	}
	d := metrics.Build(snap.Report, snap.Plan == session.PlanPremium, snap.Recommendations)
	writeJSON(w, http.StatusOK, d)
}

// HandleWatch upgrades to a websocket and pushes one JSON snapshot per change.
func (h *Handler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	updates, stop, err := h.sessions.Watch(r.PathValue("id"))
	if err != nil {
		writeSnapshot(w, http.StatusOK, session.Snapshot{}, err)
		return
	}
	defer stop()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("watch upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Drain client frames so close messages are noticed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case snap, ok := <-updates:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		}
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "request body is required")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func validURL(w http.ResponseWriter, raw string) (string, bool) {
	url := analyzer.NormalizeURL(raw)
	if err := analyzer.ValidateURL(url); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return url, true
}

func writeSnapshot(w http.ResponseWriter, status int, snap session.Snapshot, err error) {
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, status, snap)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
