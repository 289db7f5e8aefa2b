package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jong-un-1/mcp-cross-chain/engine"
)

type MinFeeResponse struct {
	ChainID uint32 `json:"chainId"`
	MinFee  uint64 `json:"minFee"`
}

type QueryHandler struct {
	engine *engine.Engine
}

func NewQueryHandler(e *engine.Engine) *QueryHandler {
	return &QueryHandler{
		engine: e,
	}
}

func (h *QueryHandler) HandleGlobalState(w http.ResponseWriter, r *http.Request) {
	g, err := h.engine.GlobalState()
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, g, http.StatusOK)
}

func (h *QueryHandler) HandleOrchestrator(w http.ResponseWriter, r *http.Request) {
	id, err := hashVar(mux.Vars(r), "id")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	o, err := h.engine.Orchestrator(id)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, o, http.StatusOK)
}

func (h *QueryHandler) HandleOrchestrators(w http.ResponseWriter, r *http.Request) {
	orchestrators, err := h.engine.Orchestrators()
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, orchestrators, http.StatusOK)
}

func (h *QueryHandler) HandleTargetChainMinFee(w http.ResponseWriter, r *http.Request) {
	chainID, err := chainIDVar(mux.Vars(r))
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	minFee, err := h.engine.TargetChainMinFee(chainID)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, MinFeeResponse{ChainID: chainID, MinFee: minFee}, http.StatusOK)
}

// HandleQuote returns the fee breakdown an order of the amount query
// parameter would have to pay towards the destination chain.
func (h *QueryHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	chainID, err := chainIDVar(mux.Vars(r))
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	amount, err := strconv.ParseUint(r.URL.Query().Get("amount"), 10, 64)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid amount: %s", r.URL.Query().Get("amount")), http.StatusBadRequest)
		return
	}

	breakdown, err := h.engine.QuoteFee(amount, chainID)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, breakdown, http.StatusOK)
}
