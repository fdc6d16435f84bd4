package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"engage-escrow/internal/adapter/oracle"
	"engage-escrow/internal/core/domain"
)

type metricsRequest struct {
	Metrics   domain.Metrics `json:"metrics"`
	Signature hexutil.Bytes  `json:"signature"`
}

// handleUpdateMetrics accepts a signed oracle report for {address}. The
// signer recovered from the report is the caller; the usecase decides
// whether it is the campaign oracle. A signature that cannot be recovered
// results in HTTP 401.
func (h *Handler) handleUpdateMetrics(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.pathAddress(w, r)
	if !ok {
		return
	}
	var req metricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON")
		return
	}
	report := oracle.Report{Campaign: addr, Metrics: req.Metrics, Signature: req.Signature}
	signer, err := report.Signer()
	if err != nil {
		h.logger.Debug("rejected oracle report", slog.String("campaign", addr.Hex()), slog.Any("error", err))
		writeProblem(w, http.StatusUnauthorized, "bad_signature", err.Error())
		return
	}
	res, err := h.svc.UpdateMetrics(r.Context(), addr, signer, req.Metrics)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.transitionView(res))
}
