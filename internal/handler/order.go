package handler

import (
	"errors"
	"net/http"

	"github.com/fmicoin/market/internal/domain"
	"github.com/fmicoin/market/internal/service"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	market *service.MarketService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(market *service.MarketService) *OrderHandler {
	return &OrderHandler{market: market}
}

// submitOrderRequest is the JSON request body for POST /orders.
type submitOrderRequest struct {
	Side       string  `json:"side"`
	WalletID   uint32  `json:"wallet_id"`
	CoinAmount float64 `json:"coin_amount"`
}

// settlementLegResponse is one settlement leg in the execution response.
type settlementLegResponse struct {
	SenderID   uint32  `json:"sender_id"`
	ReceiverID uint32  `json:"receiver_id"`
	CoinAmount float64 `json:"coin_amount"`
	FiatAmount float64 `json:"fiat_amount"`
}

// executionResponse is the JSON response for POST /orders.
// LogFile is empty when the execution log could not be written; the
// settlement itself still happened.
type executionResponse struct {
	Legs          []settlementLegResponse `json:"legs"`
	RestingAmount float64                 `json:"resting_amount"`
	LogFile       string                  `json:"log_file"`
}

// restingOrderResponse is one order in the GET /orders response.
type restingOrderResponse struct {
	Side       string  `json:"side"`
	WalletID   uint32  `json:"wallet_id"`
	CoinAmount float64 `json:"coin_amount"`
}

// Submit handles POST /orders.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	side, ok := domain.ParseOrderSide(req.Side)
	if !ok {
		WriteError(w, http.StatusBadRequest, "validation_error", "side must be one of: buy, sell")
		return
	}

	result, err := h.market.SubmitOrder(service.SubmitOrderRequest{
		Side:       side,
		WalletID:   req.WalletID,
		CoinAmount: req.CoinAmount,
	})
	if err != nil {
		mapOrderError(w, err)
		return
	}

	conv := h.market.Conversion()
	legs := make([]settlementLegResponse, 0, len(result.Legs))
	for _, leg := range result.Legs {
		legs = append(legs, settlementLegResponse{
			SenderID:   leg.SenderID,
			ReceiverID: leg.ReceiverID,
			CoinAmount: leg.CoinAmount,
			FiatAmount: conv.ToFiat(leg.CoinAmount),
		})
	}
	WriteJSON(w, http.StatusCreated, executionResponse{
		Legs:          legs,
		RestingAmount: result.Resting,
		LogFile:       result.LogFile,
	})
}

// ListBook handles GET /orders.
func (h *OrderHandler) ListBook(w http.ResponseWriter, r *http.Request) {
	orders := h.market.RestingOrders()
	resp := make([]restingOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, restingOrderResponse{
			Side:       o.Side.String(),
			WalletID:   o.WalletID,
			CoinAmount: o.CoinAmount,
		})
	}
	WriteJSON(w, http.StatusOK, resp)
}

// mapOrderError maps service errors to HTTP responses.
func mapOrderError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
	case errors.Is(err, domain.ErrWalletNotFound):
		WriteError(w, http.StatusNotFound, "wallet_not_found", err.Error())
	case errors.Is(err, domain.ErrInsufficientCoins):
		WriteError(w, http.StatusConflict, "insufficient_coins", err.Error())
	case errors.Is(err, domain.ErrInsufficientFiat):
		WriteError(w, http.StatusConflict, "insufficient_fiat", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
