package handler

import (
	"net/http"

	"github.com/fmicoin/market/internal/service"
)

// MarketHandler handles HTTP requests for market-wide endpoints.
type MarketHandler struct {
	market *service.MarketService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(market *service.MarketService) *MarketHandler {
	return &MarketHandler{market: market}
}

// transactionResponse is one ledger record in the snapshot response.
// The system sender id marks mint transactions.
type transactionResponse struct {
	Timestamp  int64   `json:"timestamp"`
	SenderID   uint32  `json:"sender_id"`
	ReceiverID uint32  `json:"receiver_id"`
	CoinAmount float64 `json:"coin_amount"`
	Mint       bool    `json:"mint"`
}

// snapshotResponse is the JSON response for GET /market.
type snapshotResponse struct {
	Wallets      []walletResponse       `json:"wallets"`
	Transactions []transactionResponse  `json:"transactions"`
	Orders       []restingOrderResponse `json:"orders"`
}

// Snapshot handles GET /market.
func (h *MarketHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.market.MarketSnapshot()

	resp := snapshotResponse{
		Wallets:      make([]walletResponse, 0, len(snap.Wallets)),
		Transactions: make([]transactionResponse, 0, len(snap.Transactions)),
		Orders:       make([]restingOrderResponse, 0, len(snap.Orders)),
	}
	for _, wallet := range snap.Wallets {
		resp.Wallets = append(resp.Wallets, walletResponse{
			WalletID:    wallet.ID,
			Owner:       wallet.Owner,
			FiatBalance: wallet.FiatBalance,
			CoinBalance: snap.CoinBalances[wallet.ID],
		})
	}
	for _, tx := range snap.Transactions {
		resp.Transactions = append(resp.Transactions, transactionResponse{
			Timestamp:  tx.Timestamp,
			SenderID:   tx.SenderID,
			ReceiverID: tx.ReceiverID,
			CoinAmount: tx.CoinAmount,
			Mint:       tx.IsMint(),
		})
	}
	for _, o := range snap.Orders {
		resp.Orders = append(resp.Orders, restingOrderResponse{
			Side:       o.Side.String(),
			WalletID:   o.WalletID,
			CoinAmount: o.CoinAmount,
		})
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Save handles POST /market/save. A save failure is reported but never
// crashes the process; in-memory state stays authoritative.
func (h *MarketHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.market.Save(); err != nil {
		WriteError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
