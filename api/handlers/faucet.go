package handlers

import (
	"net/http"

	"github.com/jong-un-1/mcp-cross-chain/engine"
	"github.com/jong-un-1/mcp-cross-chain/state"
)

type FaucetBody struct {
	Token   string `json:"token"`
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
}

// FaucetHandler mints test funds. It is only routed when the faucet is
// enabled in the service config.
type FaucetHandler struct {
	engine *engine.Engine
	minter engine.Minter
}

func NewFaucetHandler(e *engine.Engine, minter engine.Minter) *FaucetHandler {
	return &FaucetHandler{
		engine: e,
		minter: minter,
	}
}

func (h *FaucetHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	b := FaucetBody{}
	err := decode(r, &b)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	token, err := state.ParseHash(b.Token)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	account, err := state.ParseHash(b.Account)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	err = h.engine.Mint(r.Context(), h.minter, token, account, b.Amount)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	balance, err := h.engine.BalanceOf(r.Context(), token, account)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, BalanceResponse{
		Token:   token.Hex(),
		Account: account.Hex(),
		Balance: balance,
	}, http.StatusOK)
}
