package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"svw.info/picross/internal/domain"
	"svw.info/picross/internal/usecase"
)

type Handler struct {
	UC *usecase.Service

	// Defaults applied when /api/new omits a field.
	Columns      int
	Rows         int
	Assist       bool
	LockRevealed bool
}

func New(uc *usecase.Service) *Handler {
	return &Handler{UC: uc, Columns: 10, Rows: 10, LockRevealed: true}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/new", h.handleNew)
	mux.HandleFunc("/api/state", h.handleState)
	mux.HandleFunc("/api/select", h.handleSelect)
	mux.HandleFunc("/api/reset", h.handleReset)
	mux.HandleFunc("/api/assist", h.handleAssist)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
}

// puzzleResp is the shared response shape for operations that return
// the full session state.
type puzzleResp struct {
	Puzzle     *domain.Puzzle `json:"puzzle,omitempty"`
	DurationMs int64          `json:"durationMs,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(puzzleResp{Error: msg})
}

func writePuzzleErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, usecase.ErrNotFound) {
		code = http.StatusNotFound
	}
	writeError(w, code, err.Error())
}

// ---- New ----

// Dimensions arrive as JSON numbers and may carry a fractional part;
// they are truncated toward zero before use. Non-positive dimensions
// produce an empty puzzle rather than an error.
type newReq struct {
	Columns      *float64 `json:"columns,omitempty"`
	Rows         *float64 `json:"rows,omitempty"`
	Seed         int64    `json:"seed,omitempty"`
	Assist       *bool    `json:"assist,omitempty"`
	LockRevealed *bool    `json:"lockRevealed,omitempty"`
}

func (h *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req newReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	columns, rows := h.Columns, h.Rows
	if req.Columns != nil {
		columns = int(*req.Columns)
	}
	if req.Rows != nil {
		rows = int(*req.Rows)
	}
	assist, locked := h.Assist, h.LockRevealed
	if req.Assist != nil {
		assist = *req.Assist
	}
	if req.LockRevealed != nil {
		locked = *req.LockRevealed
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p, st, err := h.UC.New(r.Context(), seed, columns, rows, assist, locked)
	if err != nil {
		writePuzzleErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(puzzleResp{Puzzle: p, DurationMs: st.Duration.Milliseconds()})
}

// ---- State ----

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	p, err := h.UC.Get(r.Context(), id)
	if err != nil {
		writePuzzleErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(puzzleResp{Puzzle: p})
}

// ---- Select / Reset / Assist ----

type sessionReq struct {
	ID  string `json:"id"`
	Key string `json:"key,omitempty"`
}

func (h *Handler) sessionOp(w http.ResponseWriter, r *http.Request, op func(id, key string) (*domain.Puzzle, error)) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "invalid JSON or missing id")
		return
	}
	p, err := op(req.ID, req.Key)
	if err != nil {
		writePuzzleErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(puzzleResp{Puzzle: p})
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(id, key string) (*domain.Puzzle, error) {
		return h.UC.Select(r.Context(), id, key)
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(id, _ string) (*domain.Puzzle, error) {
		return h.UC.Reset(r.Context(), id)
	})
}

func (h *Handler) handleAssist(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(id, _ string) (*domain.Puzzle, error) {
		return h.UC.ToggleAssist(r.Context(), id)
	})
}

// ---- Validate ----

type validateResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "invalid JSON or missing id")
		return
	}
	ok, err := h.UC.Valid(r.Context(), req.ID)
	if err != nil {
		writePuzzleErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(validateResp{OK: ok})
}

// ---- Save / Load / List ----

type saveReq struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}
type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req saveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "invalid JSON or missing id")
		return
	}
	if err := h.UC.Save(r.Context(), req.ID, req.Name); err != nil {
		writePuzzleErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(saveResp{ID: req.ID})
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(id, _ string) (*domain.Puzzle, error) {
		return h.UC.Load(r.Context(), id)
	})
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ps, err := h.UC.List(r.Context())
	if err != nil {
		writePuzzleErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(listResp{Puzzles: ps})
}
