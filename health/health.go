// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package health

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Checker reports whether the service can serve requests.
type Checker func() error

// Handler returns ok while the checker passes and 503 with the failure
// reason otherwise.
func Handler(check Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := check()
		if err != nil {
			log.Warn().Err(err).Msg("Health check failed")
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}
}

// StartHealthEndpoint starts /health endpoint on provided port that returns ok while check passes
func StartHealthEndpoint(port uint16, check Checker) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", Handler(check))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	log.Info().Msgf("Starting /health endpoint on port %d", port)
	err := srv.ListenAndServe()
	if err != nil {
		log.Err(err).Msgf("Failed starting health server")
	}
}
