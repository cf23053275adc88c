package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rentflow-backend/internal/service"
)

// ReceivingHandler exposes the goods-receipt, discrepancy and avizo
// operations used by the warehouse back office.
type ReceivingHandler struct {
	receiptSvc service.ReceiptService
	avizoSvc   service.AvizoService
}

func NewReceivingHandler(receiptSvc service.ReceiptService, avizoSvc service.AvizoService) *ReceivingHandler {
	return &ReceivingHandler{receiptSvc: receiptSvc, avizoSvc: avizoSvc}
}

func (h *ReceivingHandler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	var input service.CreateReceiptInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	receipt, err := h.receiptSvc.CreateReceipt(r.Context(), tenantID(r), userID(r), &input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *ReceivingHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	status := r.URL.Query().Get("status")

	receipts, total, err := h.receiptSvc.ListReceipts(r.Context(), tenantID(r), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"receipts": receipts, "total": total})
}

func (h *ReceivingHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid receipt id"})
		return
	}

	receipt, err := h.receiptSvc.GetReceipt(r.Context(), tenantID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *ReceivingHandler) CompleteReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid receipt id"})
		return
	}

	receipt, err := h.receiptSvc.CompleteReceipt(r.Context(), tenantID(r), userID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *ReceivingHandler) CreateDiscrepancy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid receipt id"})
		return
	}

	var input service.CreateDiscrepancyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	discrepancy, err := h.receiptSvc.CreateDiscrepancy(r.Context(), tenantID(r), userID(r), id, &input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, discrepancy)
}

func (h *ReceivingHandler) ResolveDiscrepancy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid discrepancy id"})
		return
	}

	var input service.ResolveDiscrepancyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	discrepancy, err := h.receiptSvc.ResolveDiscrepancy(r.Context(), tenantID(r), userID(r), id, &input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discrepancy)
}

func (h *ReceivingHandler) CreateAvizo(w http.ResponseWriter, r *http.Request) {
	var input service.CreateAvizoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	avizo, err := h.avizoSvc.CreateAvizo(r.Context(), tenantID(r), userID(r), &input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, avizo)
}

func (h *ReceivingHandler) GetAvizo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid avizo id"})
		return
	}

	avizo, err := h.avizoSvc.GetAvizo(r.Context(), tenantID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avizo)
}

func (h *ReceivingHandler) ListAvizos(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	status := r.URL.Query().Get("status")

	avizos, total, err := h.avizoSvc.ListAvizos(r.Context(), tenantID(r), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"avizos": avizos, "total": total})
}

func (h *ReceivingHandler) UpdateAvizo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid avizo id"})
		return
	}

	var input service.UpdateAvizoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	avizo, err := h.avizoSvc.UpdateAvizo(r.Context(), tenantID(r), userID(r), id, &input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avizo)
}

func (h *ReceivingHandler) CancelAvizo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid avizo id"})
		return
	}

	avizo, err := h.avizoSvc.CancelAvizo(r.Context(), tenantID(r), userID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avizo)
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	val, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 32)
	if err != nil || val <= 0 {
		return fallback
	}
	return int32(val)
}
