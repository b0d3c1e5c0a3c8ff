package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/query"
)

type dataRequest struct {
	Columns []string `json:"columns"`
}

type filteredDataRequest struct {
	FilteredData []json.RawMessage `json:"filteredData"`
}

type chartRequest struct {
	Data    []models.Row `json:"data"`
	XColumn string       `json:"xColumn"`
	YColumn string       `json:"yColumn"`
}

type uniqueRequest struct {
	Column string `json:"column"`
}

type dateColumnsResponse struct {
	DateColumns []string `json:"dateColumns"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Source    string `json:"source"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
}

type indexPage struct {
	Source      string
	Columns     []string
	DateColumns []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	page := indexPage{
		Source:      s.table.Source(),
		Columns:     query.Columns(s.table),
		DateColumns: query.DateColumns(s.table),
	}
	if err := s.index.Execute(&buf, page); err != nil {
		s.logger.Error("template execution failed", "error", err)
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}

func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	var req dataRequest
	if err := decodeBody(w, r, s.cfg.MaxBodyBytes, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	p, err := query.Project(s.table, req.Columns)
	if err != nil {
		var colErr *query.ColumnError
		if errors.As(err, &colErr) {
			writeError(w, http.StatusBadRequest, msgInvalidColumn+": "+strings.Join(colErr.Columns, ", "))
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleFilteredData(w http.ResponseWriter, r *http.Request) {
	var req filteredDataRequest
	if err := decodeBody(w, r, s.cfg.MaxBodyBytes, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.Echo(req.FilteredData))
}

func (s *Server) handleChartData(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if err := decodeBody(w, r, s.cfg.MaxBodyBytes, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	series, err := query.ChartSeries(req.Data, req.XColumn, req.YColumn)
	if err != nil {
		if errors.Is(err, query.ErrMissingRequiredData) {
			writeError(w, http.StatusBadRequest, msgMissingData)
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleUniqueValues(w http.ResponseWriter, r *http.Request) {
	var req uniqueRequest
	if err := decodeBody(w, r, s.cfg.MaxBodyBytes, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	u, err := query.UniqueValues(s.table, req.Column)
	if err != nil {
		if errors.Is(err, query.ErrInvalidColumn) {
			writeError(w, http.StatusBadRequest, msgInvalidColumn)
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleDateColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dateColumnsResponse{DateColumns: query.DateColumns(s.table)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
		Source:    s.table.Source(),
		Rows:      s.table.RowCount(),
		Columns:   s.table.ColumnCount(),
	})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, msgInternal)
}
