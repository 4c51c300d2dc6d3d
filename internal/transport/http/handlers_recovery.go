package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"storegate/internal/device"
	"storegate/internal/recovery/models"
	"storegate/internal/recovery/service"
	dErrors "storegate/pkg/domainerrors"
)

// RecoveryService is the slice of the flow controller this handler needs.
type RecoveryService interface {
	RequestReset(ctx context.Context, rawIdentifier string, meta service.Meta) (service.Ack, error)
	VerifyCode(ctx context.Context, rawIdentifier, code string, meta service.Meta) (models.ResetToken, error)
	CompleteReset(ctx context.Context, rawIdentifier, resetToken, newPassword string, meta service.Meta) (service.Result, error)
}

type RecoveryHandler struct {
	recovery RecoveryService
}

func NewRecoveryHandler(recovery RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{recovery: recovery}
}

func requestMeta(r *http.Request) service.Meta {
	return service.Meta{
		RequestID: chimw.GetReqID(r.Context()),
		Device:    device.Summarize(r.UserAgent()),
	}
}

type requestResetRequest struct {
	Identifier string `json:"identifier"`
}

type requestResetResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func (h *RecoveryHandler) handleRequest(w http.ResponseWriter, r *http.Request) {
	var req requestResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	ack, err := h.recovery.RequestReset(r.Context(), req.Identifier, requestMeta(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestResetResponse{OK: true, Message: ack.Message})
}

type verifyCodeRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

type verifyCodeResponse struct {
	OK         bool   `json:"ok"`
	ResetToken string `json:"reset_token"`
}

func (h *RecoveryHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	reset, err := h.recovery.VerifyCode(r.Context(), req.Identifier, req.Code, requestMeta(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verifyCodeResponse{OK: true, ResetToken: reset.Token})
}

type completeResetRequest struct {
	Identifier  string `json:"identifier"`
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

type completeResetResponse struct {
	OK       bool     `json:"ok"`
	Warnings []string `json:"warnings,omitempty"`
}

func (h *RecoveryHandler) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req completeResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	result, err := h.recovery.CompleteReset(r.Context(), req.Identifier, req.ResetToken, req.NewPassword, requestMeta(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, completeResetResponse{OK: result.Ok, Warnings: result.Warnings})
}
