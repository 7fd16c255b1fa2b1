package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Carlosbarranquero/spending-tracker/internal/core"
	applog "github.com/Carlosbarranquero/spending-tracker/internal/log"
)

const maxRequestBody = 64 << 10 // 64 KiB

// addExpenseRequest is the JSON body of the add_expense tool call.
// Every field except description and amount is optional.
type addExpenseRequest struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Category      string `json:"category,omitempty"`
	Currency      string `json:"currency,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Status        string `json:"status,omitempty"`
	Notes         string `json:"notes,omitempty"`
	SheetName     string `json:"sheet_name,omitempty"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty"`
}

type toolResult struct {
	Result string `json:"result"`
}

// handleAddExpense runs the recording pipeline. The result is always a
// human-readable string, so rejections answer 200 just like successes;
// only a malformed request body is a transport-level error.
func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req addExpenseRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		slog.WarnContext(r.Context(), "Malformed add_expense body",
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldError, err)
		writeJSON(w, http.StatusBadRequest, toolResult{Result: "❌ Petición inválida: el cuerpo no es JSON válido"})
		return
	}

	result := s.recorder.Record(r.Context(), core.ExpenseInput{
		Description:   req.Description,
		Amount:        req.Amount,
		Category:      req.Category,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		Notes:         req.Notes,
		SheetName:     req.SheetName,
		SpreadsheetID: req.SpreadsheetID,
	})

	writeJSON(w, http.StatusOK, toolResult{Result: result})
}

// handleJournalRecent lists the latest journaled receipts, newest first.
func (s *Server) handleJournalRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.journal == nil {
		http.Error(w, "Journal not configured", http.StatusNotFound)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			http.Error(w, "limit must be between 1 and 200", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := s.journal.Recent(r.Context(), limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "Journal query failed",
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldError, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", applog.FieldError, err)
	}
}
