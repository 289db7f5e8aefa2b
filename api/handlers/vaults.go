package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jong-un-1/mcp-cross-chain/engine"
	"github.com/jong-un-1/mcp-cross-chain/state"
)

type BalanceResponse struct {
	Token   string `json:"token"`
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}

type VaultHandler struct {
	engine *engine.Engine
}

func NewVaultHandler(e *engine.Engine) *VaultHandler {
	return &VaultHandler{
		engine: e,
	}
}

// HandleClaimFees pays unclaimed fees of the fee type in the path to the
// calling orchestrator.
func (h *VaultHandler) HandleClaimFees(w http.ResponseWriter, r *http.Request) {
	orchestrator, err := caller(r)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	vars := mux.Vars(r)
	token, err := hashVar(vars, "token")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	feeType, err := state.ParseFeeType(vars["feeType"])
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	b := amountBody{}
	err = decode(r, &b)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	err = h.engine.ClaimFees(r.Context(), orchestrator, token, b.Amount, feeType)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	h.respondVault(w, r)
}

func (h *VaultHandler) HandleRemoveLiquidity(w http.ResponseWriter, r *http.Request) {
	orchestrator, err := caller(r)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	token, err := hashVar(mux.Vars(r), "token")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	b := amountBody{}
	err = decode(r, &b)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	err = h.engine.RemoveBridgeLiquidity(r.Context(), orchestrator, token, b.Amount)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	h.respondVault(w, r)
}

func (h *VaultHandler) HandleAddLiquidity(w http.ResponseWriter, r *http.Request) {
	provider, err := caller(r)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	token, err := hashVar(mux.Vars(r), "token")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	b := amountBody{}
	err = decode(r, &b)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	err = h.engine.AddBridgeLiquidity(r.Context(), provider, token, b.Amount)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	h.respondVault(w, r)
}

func (h *VaultHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	token, err := hashVar(mux.Vars(r), "token")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	vault, err := h.engine.Vault(token)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, vault, http.StatusOK)
}

func (h *VaultHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	vaults, err := h.engine.Vaults()
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, vaults, http.StatusOK)
}

func (h *VaultHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	token, err := hashVar(vars, "token")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	account, err := hashVar(vars, "account")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
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

func (h *VaultHandler) respondVault(w http.ResponseWriter, r *http.Request) {
	token, _ := hashVar(mux.Vars(r), "token")
	vault, err := h.engine.Vault(token)
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, vault, http.StatusOK)
}
