package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jong-un-1/mcp-cross-chain/engine"
)

type FillTransferBody struct {
	MinAmountOut uint64 `json:"minAmountOut"`
	PrevBalance  uint64 `json:"prevBalance"`
}

type OrderHandler struct {
	engine *engine.Engine
}

func NewOrderHandler(e *engine.Engine) *OrderHandler {
	return &OrderHandler{
		engine: e,
	}
}

// HandleCreate escrows the caller funds into the vault and records a new order.
func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	trader, err := caller(r)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	b := engine.CreateOrderParams{}
	err = decode(r, &b)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	err = h.engine.CreateOrder(r.Context(), trader, b)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	order, err := h.engine.Order(b.OrderHash)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, order, http.StatusCreated)
}

// HandleFill releases the order amount to the calling orchestrator. The order
// stays pending until the token transfer is confirmed.
func (h *OrderHandler) HandleFill(w http.ResponseWriter, r *http.Request) {
	orchestrator, err := caller(r)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	orderHash, err := hashVar(mux.Vars(r), "orderHash")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	b := engine.FillOrderParams{}
	err = decode(r, &b)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	if b.OrderHash != orderHash {
		JSONError(w, fmt.Errorf("order hash %s does not match body", orderHash.Hex()), http.StatusBadRequest)
		return
	}

	err = h.engine.FillOrder(r.Context(), orchestrator, b)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// HandleFillTransfer completes a pending fill by checking the amount the
// orchestrator received in token out and forwarding it to the receiver.
func (h *OrderHandler) HandleFillTransfer(w http.ResponseWriter, r *http.Request) {
	orchestrator, err := caller(r)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	orderHash, err := hashVar(mux.Vars(r), "orderHash")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	b := FillTransferBody{}
	err = decode(r, &b)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	err = h.engine.FillOrderTokenTransfer(r.Context(), orchestrator, orderHash, b.MinAmountOut, b.PrevBalance)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	order, err := h.engine.Order(orderHash)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, order, http.StatusOK)
}

func (h *OrderHandler) HandleRevert(w http.ResponseWriter, r *http.Request) {
	orchestrator, err := caller(r)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	orderHash, err := hashVar(mux.Vars(r), "orderHash")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	err = h.engine.RevertOrder(r.Context(), orchestrator, orderHash)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	order, err := h.engine.Order(orderHash)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, order, http.StatusOK)
}

func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	orderHash, err := hashVar(mux.Vars(r), "orderHash")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	order, err := h.engine.Order(orderHash)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, order, http.StatusOK)
}

func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.engine.Orders()
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, orders, http.StatusOK)
}
