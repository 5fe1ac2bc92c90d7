package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/datasweep/datasweep-cli/internal/ai"
	"github.com/datasweep/datasweep-cli/internal/clean"
	"github.com/datasweep/datasweep-cli/internal/dataset"
	"github.com/datasweep/datasweep-cli/internal/profile"
	"github.com/datasweep/datasweep-cli/internal/report"
)

const previewRows = 20

type errorResponse struct {
	Error string `json:"error"`
}

type profileResponse struct {
	FileName      string            `json:"file_name"`
	SizeKB        int               `json:"size_kb"`
	Rows          int               `json:"rows"`
	Cols          int               `json:"cols"`
	Columns       []string          `json:"columns"`
	Preview       [][]string        `json:"preview"`
	NullCounts    map[string]int    `json:"null_counts"`
	TotalNulls    int               `json:"total_nulls"`
	DuplicateRows int               `json:"duplicate_rows"`
	Types         map[string]string `json:"types"`
	EmptyColumns  []string          `json:"empty_columns"`
}

func newProfileResponse(t *dataset.Table, rep *profile.Report) profileResponse {
	return profileResponse{
		FileName:      t.Name,
		SizeKB:        t.Size / 1024,
		Rows:          rep.Rows,
		Cols:          rep.Cols,
		Columns:       rep.Columns,
		Preview:       t.Head(previewRows),
		NullCounts:    rep.NullCounts,
		TotalNulls:    rep.TotalNulls,
		DuplicateRows: rep.DuplicateRows,
		Types:         rep.Types,
		EmptyColumns:  rep.EmptyColumns,
	}
}

// handleUpload loads the multipart file into a fresh table and profiles
// it. A load failure leaves any previously uploaded table untouched.
func (s *Server) handleUpload(c echo.Context) error {
	sess := s.sessionFor(c)

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing file upload"})
	}
	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	if maxBytes > 0 && fh.Size > maxBytes {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("file exceeds %d MB limit", s.cfg.MaxUploadMB)})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable file upload"})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable file upload"})
	}

	t, err := dataset.Load(fh.Filename, data)
	if err != nil {
		s.logger.Warnw("upload rejected", "file", fh.Filename, "error", err)
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}
	rep := profile.Analyze(t)

	sess.mu.Lock()
	sess.table = t
	sess.prof = rep
	sess.suggestion = ""
	sess.cleaned = nil
	sess.actions = nil
	sess.mu.Unlock()

	s.logger.Infow("dataset loaded", "file", t.Name, "rows", rep.Rows, "cols", rep.Cols)
	return c.JSON(http.StatusOK, newProfileResponse(t, rep))
}

func (s *Server) handleProfile(c echo.Context) error {
	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.table == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no dataset uploaded"})
	}
	return c.JSON(http.StatusOK, newProfileResponse(sess.table, sess.prof))
}

type suggestResponse struct {
	Suggestions string `json:"suggestions"`
}

// handleSuggest runs the one network-bound operation. Only a single
// request may be in flight per session; overlapping submissions get 409.
func (s *Server) handleSuggest(c echo.Context) error {
	sess := s.sessionFor(c)

	sess.mu.Lock()
	if sess.table == nil {
		sess.mu.Unlock()
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no dataset uploaded"})
	}
	if sess.suggestBusy {
		sess.mu.Unlock()
		return c.JSON(http.StatusConflict, errorResponse{Error: "a suggestion request is already in flight"})
	}
	sess.suggestBusy = true
	prompt := ai.BuildPrompt(sess.prof, sess.table)
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.suggestBusy = false
		sess.mu.Unlock()
	}()

	text, err := s.client.Suggest(c.Request().Context(), s.cfg.Model, prompt, s.cfg.MaxTokens, s.cfg.Temperature)
	if err != nil {
		s.logger.Warnw("suggestion failed", "error", err)
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}

	sess.mu.Lock()
	sess.suggestion = text
	sess.mu.Unlock()
	return c.JSON(http.StatusOK, suggestResponse{Suggestions: text})
}

type cleanResponse struct {
	Rows     int        `json:"rows"`
	Cols     int        `json:"cols"`
	Columns  []string   `json:"columns"`
	Preview  [][]string `json:"preview"`
	Actions  []string   `json:"actions"`
	Warnings []string   `json:"warnings,omitempty"`
}

// handleClean applies the selection to a copy of the original table.
// Re-running replaces the previous cleaned table entirely.
func (s *Server) handleClean(c echo.Context) error {
	sess := s.sessionFor(c)

	var sel clean.Selection
	if err := c.Bind(&sel); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid cleaning selection"})
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.table == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no dataset uploaded"})
	}
	cleaned, res := s.cleaner.Apply(sess.table, sel)
	sess.cleaned = cleaned
	sess.actions = res.Actions

	return c.JSON(http.StatusOK, cleanResponse{
		Rows:     cleaned.RowCount(),
		Cols:     cleaned.ColCount(),
		Columns:  cleaned.Columns,
		Preview:  cleaned.Head(previewRows),
		Actions:  res.Actions,
		Warnings: res.Warnings,
	})
}

func (s *Server) handleExportCSV(c echo.Context) error {
	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	t := sess.cleaned
	if t == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no cleaned dataset; apply cleaning first"})
	}
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, t); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.CSVFilename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) handleExportPDF(c echo.Context) error {
	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.cleaned == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no cleaned dataset; apply cleaning first"})
	}
	doc := report.NewDocument(sess.prof, sess.cleaned, sess.actions, sess.suggestion)
	doc.GeneratedAt = time.Now()

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, doc); err != nil {
		s.logger.Errorw("pdf rendering failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.PDFFilename))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
