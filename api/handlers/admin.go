package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/jong-un-1/mcp-cross-chain/engine"
	"github.com/jong-un-1/mcp-cross-chain/state"
)

type NominateBody struct {
	Admin string `json:"admin"`
}

type TiersBody struct {
	Thresholds []uint64 `json:"thresholds"`
	Bps        []uint64 `json:"bps"`
}

type FractionBody struct {
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

type MinFeeBody struct {
	MinFee uint64 `json:"minFee"`
}

// AdminHandler serves the governance operations. Every successful call
// responds with the resulting global state.
type AdminHandler struct {
	engine *engine.Engine
}

func NewAdminHandler(e *engine.Engine) *AdminHandler {
	return &AdminHandler{
		engine: e,
	}
}

func (h *AdminHandler) HandleUpdateParams(w http.ResponseWriter, r *http.Request) {
	b := engine.GlobalParams{}
	if !h.decode(w, r, &b) {
		return
	}
	h.run(w, r, func(caller common.Hash) error {
		return h.engine.UpdateGlobalStateParams(caller, b)
	})
}

func (h *AdminHandler) HandleFreeze(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.engine.FreezeGlobalState)
}

func (h *AdminHandler) HandleThaw(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.engine.ThawGlobalState)
}

func (h *AdminHandler) HandleNominateAuthority(w http.ResponseWriter, r *http.Request) {
	b := NominateBody{}
	if !h.decode(w, r, &b) {
		return
	}
	newAdmin, err := state.ParseHash(b.Admin)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	h.run(w, r, func(caller common.Hash) error {
		return h.engine.NominateAuthority(caller, newAdmin)
	})
}

func (h *AdminHandler) HandleAcceptAuthority(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.engine.AcceptAuthority)
}

func (h *AdminHandler) HandleAddFreezeAuthority(w http.ResponseWriter, r *http.Request) {
	h.runWithID(w, r, h.engine.AddFreezeAuthority)
}

func (h *AdminHandler) HandleRemoveFreezeAuthority(w http.ResponseWriter, r *http.Request) {
	h.runWithID(w, r, h.engine.RemoveFreezeAuthority)
}

func (h *AdminHandler) HandleAddThawAuthority(w http.ResponseWriter, r *http.Request) {
	h.runWithID(w, r, h.engine.AddThawAuthority)
}

func (h *AdminHandler) HandleRemoveThawAuthority(w http.ResponseWriter, r *http.Request) {
	h.runWithID(w, r, h.engine.RemoveThawAuthority)
}

// HandleAddOrchestrator sets the permissions of the orchestrator in the path,
// reactivating it if it was removed.
func (h *AdminHandler) HandleAddOrchestrator(w http.ResponseWriter, r *http.Request) {
	b := state.Permissions{}
	if !h.decode(w, r, &b) {
		return
	}
	h.runWithID(w, r, func(caller common.Hash, id common.Hash) error {
		return h.engine.AddOrchestrator(caller, id, b)
	})
}

func (h *AdminHandler) HandleRemoveOrchestrator(w http.ResponseWriter, r *http.Request) {
	h.runWithID(w, r, h.engine.RemoveOrchestrator)
}

func (h *AdminHandler) HandleSetFeeTiers(w http.ResponseWriter, r *http.Request) {
	b := TiersBody{}
	if !h.decode(w, r, &b) {
		return
	}
	h.run(w, r, func(caller common.Hash) error {
		return h.engine.SetFeeTiers(caller, b.Thresholds, b.Bps)
	})
}

func (h *AdminHandler) HandleSetInsuranceFeeTiers(w http.ResponseWriter, r *http.Request) {
	b := TiersBody{}
	if !h.decode(w, r, &b) {
		return
	}
	h.run(w, r, func(caller common.Hash) error {
		return h.engine.SetInsuranceFeeTiers(caller, b.Thresholds, b.Bps)
	})
}

func (h *AdminHandler) HandleSetProtocolFee(w http.ResponseWriter, r *http.Request) {
	b := FractionBody{}
	if !h.decode(w, r, &b) {
		return
	}
	h.run(w, r, func(caller common.Hash) error {
		return h.engine.SetProtocolFeeFraction(caller, b.Numerator, b.Denominator)
	})
}

func (h *AdminHandler) HandleSetTargetChainMinFee(w http.ResponseWriter, r *http.Request) {
	chainID, err := chainIDVar(mux.Vars(r))
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	b := MinFeeBody{}
	if !h.decode(w, r, &b) {
		return
	}
	h.run(w, r, func(caller common.Hash) error {
		return h.engine.SetTargetChainMinFee(caller, chainID, b.MinFee)
	})
}

func (h *AdminHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := decode(r, v)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return false
	}
	return true
}

func (h *AdminHandler) runWithID(w http.ResponseWriter, r *http.Request, fn func(caller common.Hash, id common.Hash) error) {
	id, err := hashVar(mux.Vars(r), "id")
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	h.run(w, r, func(caller common.Hash) error {
		return fn(caller, id)
	})
}

func (h *AdminHandler) run(w http.ResponseWriter, r *http.Request, fn func(caller common.Hash) error) {
	c, err := caller(r)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	err = fn(c)
	if err != nil {
		EngineError(w, r, err)
		return
	}

	g, err := h.engine.GlobalState()
	if err != nil {
		EngineError(w, r, err)
		return
	}
	JSONResponse(w, g, http.StatusOK)
}
