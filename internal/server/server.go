package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/iwvelando/amortize/internal/config"
	"github.com/iwvelando/amortize/pkg/constants"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the amortization API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	router := mux.NewRouter()
	router.Use(requestLogging(logger))

	// Liveness probe
	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)

	// Version endpoint for client metadata
	router.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	// Amortization schedule API endpoint
	router.HandleFunc("/api/amortization", h.handleAmortization).Methods(http.MethodPost)

	return router
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "ok")
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleAmortization(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req amortizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	loan, err := req.toLoan()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	conf := &config.Configuration{Loan: loan}
	warnings := conf.ValidateConfiguration()

	schedule, startDate, err := loan.ToSchedule(h.logger)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	installments := schedule.GenerateAll(startDate)
	totals, _ := schedule.LastTotals()

	elapsed := time.Since(start)
	response := amortizationResponse{
		Description:        schedule.String(),
		MonthlyInstallment: schedule.MonthlyInstallment().StringFixed(constants.DisplayPlaces),
		Installments:       buildInstallmentPayloads(installments),
		Totals:             buildTotalsPayload(totals),
		Warnings:           warnings,
		Duration:           elapsed.String(),
	}

	h.logger.Info("amortization schedule computed",
		zap.String("op", "server.handleAmortization"),
		zap.Int("installments", len(response.Installments)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.logger.Error("amortization request failed",
		zap.String("op", "server.handleAmortization"),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
