package httpadapter

import (
	"net/http"
)

// handleGetAccount returns the token and lamport balances at {address}.
// Unknown addresses result in HTTP 404.
func (h *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.pathAddress(w, r)
	if !ok {
		return
	}
	acc, err := h.svc.GetAccount(r.Context(), addr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, accountView{
		Address:  acc.Address.Hex(),
		Owner:    acc.Owner,
		Tokens:   h.amount(acc.Tokens),
		Lamports: acc.Lamports,
	})
}
