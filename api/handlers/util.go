package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/engine"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/rs/zerolog/log"
)

// CallerIdentityHeader carries the caller identity authenticated by the
// gateway in front of the service.
const CallerIdentityHeader = "X-Caller-Identity"

var errMissingCaller = errors.New("missing caller identity")

func JSONError(w http.ResponseWriter, err error, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	type errorResponse struct {
		Code   int    `json:"code"`
		Reason string `json:"reason"`
	}
	resp := errorResponse{
		Reason: err.Error(),
		Code:   code,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func JSONResponse(w http.ResponseWriter, v interface{}, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// EngineError writes the error response matching the engine error.
func EngineError(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	} else {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("Request rejected")
	}
	JSONError(w, err, code)
}

// StatusCode maps engine errors onto http status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errMissingCaller):
		return http.StatusUnauthorized
	case errors.Is(err, engine.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrNotInitialized):
		return http.StatusServiceUnavailable
	case errors.Is(err, engine.ErrOrderNotFound), errors.Is(err, engine.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrGlobalStateFrozen):
		return http.StatusLocked
	case errors.Is(err, engine.ErrOrderAlreadyExists),
		errors.Is(err, engine.ErrAlreadyInitialized),
		errors.Is(err, engine.ErrInvalidOrderStatus):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInvalidAmount),
		errors.Is(err, engine.ErrFeeTierConfigInvalid),
		errors.Is(err, engine.ErrArithmeticOverflow):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrMinAmountOutNotMet),
		errors.Is(err, engine.ErrInsufficientVaultBalance),
		errors.Is(err, engine.ErrTransferFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func caller(r *http.Request) (common.Hash, error) {
	identity := r.Header.Get(CallerIdentityHeader)
	if identity == "" {
		return common.Hash{}, errMissingCaller
	}
	id, err := state.ParseHash(identity)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %w", errMissingCaller, err)
	}
	return id, nil
}

func hashVar(vars map[string]string, name string) (common.Hash, error) {
	value, ok := vars[name]
	if !ok {
		return common.Hash{}, fmt.Errorf("missing %s", name)
	}
	hash, err := state.ParseHash(value)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return hash, nil
}

func chainIDVar(vars map[string]string) (uint32, error) {
	chainID, err := strconv.ParseUint(vars["chainId"], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id: %s", vars["chainId"])
	}
	return uint32(chainID), nil
}

func decode(r *http.Request, v interface{}) error {
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	err := d.Decode(v)
	if err != nil {
		return fmt.Errorf("invalid request body: %s", err)
	}
	return nil
}

type amountBody struct {
	Amount uint64 `json:"amount"`
}
