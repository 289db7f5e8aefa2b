package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jong-un-1/mcp-cross-chain/api/handlers"
	"github.com/rs/zerolog/log"
)

// NewRouter registers the settlement routes. The faucet route is only
// registered when faucetHandler is set.
func NewRouter(
	orderHandler *handlers.OrderHandler,
	vaultHandler *handlers.VaultHandler,
	adminHandler *handlers.AdminHandler,
	queryHandler *handlers.QueryHandler,
	faucetHandler *handlers.FaucetHandler,
) *mux.Router {
	r := mux.NewRouter()
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/orders", orderHandler.HandleCreate).Methods("POST")
	v1.HandleFunc("/orders", orderHandler.HandleList).Methods("GET")
	v1.HandleFunc("/orders/{orderHash}", orderHandler.HandleGet).Methods("GET")
	v1.HandleFunc("/orders/{orderHash}/fill", orderHandler.HandleFill).Methods("POST")
	v1.HandleFunc("/orders/{orderHash}/transfer", orderHandler.HandleFillTransfer).Methods("POST")
	v1.HandleFunc("/orders/{orderHash}/revert", orderHandler.HandleRevert).Methods("POST")

	v1.HandleFunc("/vaults", vaultHandler.HandleList).Methods("GET")
	v1.HandleFunc("/vaults/{token}", vaultHandler.HandleGet).Methods("GET")
	v1.HandleFunc("/vaults/{token}/fees/{feeType}/claim", vaultHandler.HandleClaimFees).Methods("POST")
	v1.HandleFunc("/vaults/{token}/liquidity/add", vaultHandler.HandleAddLiquidity).Methods("POST")
	v1.HandleFunc("/vaults/{token}/liquidity/remove", vaultHandler.HandleRemoveLiquidity).Methods("POST")
	v1.HandleFunc("/tokens/{token}/balances/{account}", vaultHandler.HandleBalance).Methods("GET")

	v1.HandleFunc("/global", queryHandler.HandleGlobalState).Methods("GET")
	v1.HandleFunc("/orchestrators", queryHandler.HandleOrchestrators).Methods("GET")
	v1.HandleFunc("/orchestrators/{id}", queryHandler.HandleOrchestrator).Methods("GET")
	v1.HandleFunc("/chains/{chainId:[0-9]+}/min-fee", queryHandler.HandleTargetChainMinFee).Methods("GET")
	v1.HandleFunc("/chains/{chainId:[0-9]+}/quote", queryHandler.HandleQuote).Methods("GET")

	v1.HandleFunc("/global", adminHandler.HandleUpdateParams).Methods("PATCH")
	v1.HandleFunc("/global/freeze", adminHandler.HandleFreeze).Methods("POST")
	v1.HandleFunc("/global/thaw", adminHandler.HandleThaw).Methods("POST")
	v1.HandleFunc("/authority/nominate", adminHandler.HandleNominateAuthority).Methods("POST")
	v1.HandleFunc("/authority/accept", adminHandler.HandleAcceptAuthority).Methods("POST")
	v1.HandleFunc("/freeze-authorities/{id}", adminHandler.HandleAddFreezeAuthority).Methods("PUT")
	v1.HandleFunc("/freeze-authorities/{id}", adminHandler.HandleRemoveFreezeAuthority).Methods("DELETE")
	v1.HandleFunc("/thaw-authorities/{id}", adminHandler.HandleAddThawAuthority).Methods("PUT")
	v1.HandleFunc("/thaw-authorities/{id}", adminHandler.HandleRemoveThawAuthority).Methods("DELETE")
	v1.HandleFunc("/orchestrators/{id}", adminHandler.HandleAddOrchestrator).Methods("PUT")
	v1.HandleFunc("/orchestrators/{id}", adminHandler.HandleRemoveOrchestrator).Methods("DELETE")
	v1.HandleFunc("/fees/tiers", adminHandler.HandleSetFeeTiers).Methods("PUT")
	v1.HandleFunc("/fees/insurance-tiers", adminHandler.HandleSetInsuranceFeeTiers).Methods("PUT")
	v1.HandleFunc("/fees/protocol", adminHandler.HandleSetProtocolFee).Methods("PUT")
	v1.HandleFunc("/chains/{chainId:[0-9]+}/min-fee", adminHandler.HandleSetTargetChainMinFee).Methods("PUT")

	if faucetHandler != nil {
		v1.HandleFunc("/faucet", faucetHandler.HandleRequest).Methods("POST")
	}
	return r
}

func Serve(ctx context.Context, addr string, handler http.Handler) {
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: time.Second * 10,
	}
	go func() {
		log.Info().Msgf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Err(err).Msgf("Error shutting down server")
	} else {
		log.Info().Msgf("Server shut down gracefully.")
	}
}
