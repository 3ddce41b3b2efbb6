package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gigcompliance/anj-resolver/pkg/chat"
	"github.com/gigcompliance/anj-resolver/pkg/kit"
	"github.com/gigcompliance/anj-resolver/pkg/sheet"
)

// NewRouter returns an http.Handler with all resolver API routes.
func NewRouter(reg *sheet.Registry, sessions *chat.Store, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	wrap := func(name string, e kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.Recover(logger), kit.Logging(logger, name))(e)
	}

	h := &handler{
		resolve:      wrap("resolve", resolveEndpoint(reg)),
		resolveBatch: wrap("resolve_batch", resolveBatchEndpoint(reg)),
		verdict:      wrap("verdict", verdictEndpoint(reg)),
		listSheets:   wrap("sheets", listSheetsEndpoint(reg)),
		reg:          reg,
		chat:         newChatHandler(reg, sessions),
	}

	mux.HandleFunc("GET /v1/resolve/batch", methodNotAllowed) // prevent GET on batch
	mux.HandleFunc("POST /v1/resolve/batch", h.handleResolveBatch)
	mux.HandleFunc("GET /v1/resolve/{sport}", h.handleResolve)
	mux.HandleFunc("GET /v1/verdict/{sport}/{name}", h.handleVerdict)
	mux.HandleFunc("GET /v1/sheets", h.handleListSheets)
	mux.HandleFunc("GET /v1/health", h.handleHealth)
	mux.HandleFunc("POST /v1/chat", h.handleChat)

	return cors(mux)
}

type handler struct {
	resolve      kit.Endpoint
	resolveBatch kit.Endpoint
	verdict      kit.Endpoint
	listSheets   kit.Endpoint
	reg          *sheet.Registry
	chat         *chatHandler
}

// --- resolve one query ---

func (h *handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	sport := r.PathValue("sport")
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	resp, err := h.resolve(r.Context(), &resolveReq{
		Sport:     sport,
		Query:     q,
		Threshold: parseThreshold(r),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- resolve batch ---

type httpBatchRequest struct {
	Sport     string   `json:"sport"`
	Queries   []string `json:"queries"`
	Threshold int      `json:"threshold,omitempty"`
}

func (h *handler) handleResolveBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req httpBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.resolveBatch(r.Context(), &batchReq{
		Sport:     req.Sport,
		Queries:   req.Queries,
		Threshold: req.Threshold,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- verdict ---

func (h *handler) handleVerdict(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.verdict(r.Context(), &verdictReq{
		Sport:      r.PathValue("sport"),
		Name:       r.PathValue("name"),
		Category:   q.Get("category"),
		Discipline: q.Get("discipline"),
		Lang:       q.Get("lang"),
	})
	if err != nil {
		if errors.Is(err, sheet.ErrNotFound) {
			writeError(w, http.StatusNotFound, sheet.ErrNotFound.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- list sheets ---

func (h *handler) handleListSheets(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listSheets(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status       string `json:"status"`
	Sheets       int    `json:"sheets"`
	TotalRecords int    `json:"total_records"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		Sheets:       h.reg.SheetCount(),
		TotalRecords: h.reg.TotalRecords(),
	})
}

// --- chat ---

func (h *handler) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 16*1024)
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, status := h.chat.handle(&req)
	writeJSON(w, status, resp)
}

// --- helpers ---

func parseThreshold(r *http.Request) int {
	v := r.URL.Query().Get("threshold")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
