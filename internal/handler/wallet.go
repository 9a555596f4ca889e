package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fmicoin/market/internal/domain"
	"github.com/fmicoin/market/internal/service"
)

// WalletHandler handles HTTP requests for wallet endpoints.
type WalletHandler struct {
	market *service.MarketService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(market *service.MarketService) *WalletHandler {
	return &WalletHandler{market: market}
}

// createWalletRequest is the JSON request body for POST /wallets.
type createWalletRequest struct {
	Owner       string  `json:"owner"`
	InitialFiat float64 `json:"initial_fiat"`
}

// walletResponse is the JSON response for a created wallet.
type walletResponse struct {
	WalletID    uint32  `json:"wallet_id"`
	Owner       string  `json:"owner"`
	FiatBalance float64 `json:"fiat_balance"`
	CoinBalance float64 `json:"coin_balance"`
}

// walletInfoResponse is the JSON response for GET /wallets/{wallet_id}.
type walletInfoResponse struct {
	WalletID         uint32  `json:"wallet_id"`
	Owner            string  `json:"owner"`
	FiatBalance      float64 `json:"fiat_balance"`
	CoinBalance      float64 `json:"coin_balance"`
	TransactionCount int     `json:"transaction_count"`
	FirstTransaction *int64  `json:"first_transaction"`
	LastTransaction  *int64  `json:"last_transaction"`
}

// investorResponse is one entry in the GET /wallets/top response.
type investorResponse struct {
	WalletID         uint32  `json:"wallet_id"`
	Owner            string  `json:"owner"`
	CoinBalance      float64 `json:"coin_balance"`
	TransactionCount int     `json:"transaction_count"`
	FirstTransaction int64   `json:"first_transaction"`
	LastTransaction  int64   `json:"last_transaction"`
}

// Create handles POST /wallets.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWalletRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	wallet, err := h.market.CreateWallet(service.CreateWalletRequest{
		Owner:       req.Owner,
		InitialFiat: req.InitialFiat,
	})
	if err != nil {
		mapWalletError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, walletResponse{
		WalletID:    wallet.ID,
		Owner:       wallet.Owner,
		FiatBalance: wallet.FiatBalance,
		CoinBalance: h.market.Conversion().ToCoins(wallet.FiatBalance),
	})
}

// GetInfo handles GET /wallets/{wallet_id}.
func (h *WalletHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	walletID, ok := parseWalletID(w, r)
	if !ok {
		return
	}

	info, err := h.market.GetWalletInfo(walletID)
	if err != nil {
		mapWalletError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, walletInfoResponse{
		WalletID:         info.Wallet.ID,
		Owner:            info.Wallet.Owner,
		FiatBalance:      info.Wallet.FiatBalance,
		CoinBalance:      info.CoinBalance,
		TransactionCount: info.TransactionCount,
		FirstTransaction: info.FirstTransaction,
		LastTransaction:  info.LastTransaction,
	})
}

// TopInvestors handles GET /wallets/top.
func (h *WalletHandler) TopInvestors(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			WriteError(w, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
			return
		}
		limit = n
	}

	investors := h.market.TopInvestors(limit)
	resp := make([]investorResponse, 0, len(investors))
	for _, inv := range investors {
		resp = append(resp, investorResponse{
			WalletID:         inv.WalletID,
			Owner:            inv.Owner,
			CoinBalance:      inv.Coins,
			TransactionCount: inv.TransactionCount,
			FirstTransaction: inv.FirstTransaction,
			LastTransaction:  inv.LastTransaction,
		})
	}
	WriteJSON(w, http.StatusOK, resp)
}

// parseWalletID extracts and validates the wallet_id URL parameter,
// writing the error response itself on failure.
func parseWalletID(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	raw := chi.URLParam(r, "wallet_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "wallet_id must be a non-negative integer")
		return 0, false
	}
	return uint32(id), true
}

// mapWalletError maps service errors to HTTP responses.
func mapWalletError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
	case errors.Is(err, domain.ErrWalletNotFound):
		WriteError(w, http.StatusNotFound, "wallet_not_found", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
