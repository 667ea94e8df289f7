package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sells-group/bizhealth/internal/analysis"
	"github.com/sells-group/bizhealth/internal/export"
	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/report"
	"github.com/sells-group/bizhealth/internal/store"
	"github.com/sells-group/bizhealth/internal/validate"
)

type errorResponse struct {
	Error  string                `json:"error"`
	Fields []validate.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeFailure maps err to a response: validation errors to 422 with every
// field, missing records to 404, anything else to a logged 500.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := validate.AsValidationError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: ve.Fields})
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	zap.L().Error("server: operation failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "operation failed")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createAnalysisRequest struct {
	Input         json.RawMessage `json:"input"`
	AnnualRevenue *float64        `json:"annualRevenue"`
	Save          bool            `json:"save"`
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req createAnalysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(bytes.TrimSpace(req.Input)) == 0 || bytes.Equal(bytes.TrimSpace(req.Input), []byte("null")) {
		writeFailure(w, r, &validate.ValidationError{Fields: []validate.FieldError{{Path: "input", Message: "is required"}}})
		return
	}

	result, err := s.svc.Analyze(r.Context(), analysis.Request{
		Document:      req.Input,
		AnnualRevenue: req.AnnualRevenue,
		Save:          req.Save,
		Source:        "api",
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// queryInt parses a non-negative integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &validate.ValidationError{Fields: []validate.FieldError{{Path: name, Message: "must be a non-negative integer"}}}
	}
	return n, nil
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	var filter store.HistoryFilter
	if st := r.URL.Query().Get("status"); st != "" {
		filter.Status = model.ScoreStatus(st)
		if !filter.Status.Valid() {
			writeFailure(w, r, &validate.ValidationError{Fields: []validate.FieldError{{Path: "status", Message: "must be one of critical, needs_improvement, good, excellent"}}})
			return
		}
	}
	var err error
	if filter.Limit, err = queryInt(r, "limit", 0); err != nil {
		writeFailure(w, r, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		writeFailure(w, r, err)
		return
	}

	history, err := s.store.ListHistory(r.Context(), filter)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if history == nil {
		history = []model.BusinessHealthResult{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearHistory(r.Context()); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCurrentAnalysis(w http.ResponseWriter, r *http.Request) {
	cur, err := s.store.CurrentAnalysis(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if cur == nil {
		writeError(w, http.StatusNotFound, "no current analysis")
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

func (s *Server) handleClearCurrent(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearCurrent(r.Context()); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAnalysis(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reportOptions localizes reports from stored settings, with configured
// report defaults taking precedence.
func (s *Server) reportOptions(r *http.Request) (report.Options, error) {
	settings, err := s.store.LoadSettings(r.Context())
	if err != nil {
		return report.Options{}, err
	}
	opts := report.Options{Currency: settings.Currency, Language: settings.Language}
	if s.report.Currency != "" {
		opts.Currency = model.Currency(s.report.Currency)
	}
	if s.report.Language != "" {
		opts.Language = model.Language(s.report.Language)
	}
	if c := r.URL.Query().Get("currency"); c != "" {
		opts.Currency = model.Currency(c)
	}
	if l := r.URL.Query().Get("lang"); l != "" {
		opts.Language = model.Language(l)
	}
	return opts, nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	name := r.URL.Query().Get("format")
	if name == "" {
		name = report.FormatMarkdown
	}
	opts, err := s.reportOptions(r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	renderer, err := report.New(name, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, res); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.LoadSettings(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.AppSettings
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.svc.UpdateSettings(r.Context(), settings); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ResetSettings(r.Context()); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.DefaultSettings())
}

func (s *Server) handleBenchmarks(w http.ResponseWriter, r *http.Request) {
	bm, err := s.svc.Benchmarks(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bm)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	hours, err := queryInt(r, "lookback_hours", s.lookback)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	snap, err := s.collector.Collect(r.Context(), hours)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatJSON
	}
	switch format {
	case export.FormatJSON, export.FormatCSV, export.FormatXLSX:
	default:
		writeError(w, http.StatusBadRequest, "format must be json, csv or xlsx")
		return
	}

	now := s.now()
	bundle, err := export.Collect(r.Context(), s.store, now)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, bundle); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(format, now)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}
