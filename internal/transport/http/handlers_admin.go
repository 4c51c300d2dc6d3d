package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	syncpkg "storegate/internal/identity/sync"
	"storegate/internal/recovery/service"
	"storegate/pkg/domain"
	dErrors "storegate/pkg/domainerrors"
)

// RoleSyncService commits and mirrors operator-initiated role changes.
type RoleSyncService interface {
	SyncRole(ctx context.Context, rawIdentifier string, role domain.Role, meta service.Meta) (syncpkg.Outcome, error)
}

type AdminHandler struct {
	roles RoleSyncService
}

func NewAdminHandler(roles RoleSyncService) *AdminHandler {
	return &AdminHandler{roles: roles}
}

type syncRoleRequest struct {
	Identifier string `json:"identifier"`
	Role       string `json:"role"`
}

type syncRoleResponse struct {
	Identifier string `json:"identifier"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
}

func (h *AdminHandler) handleSyncRole(w http.ResponseWriter, r *http.Request) {
	var req syncRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	outcome, err := h.roles.SyncRole(r.Context(), req.Identifier, role, requestMeta(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, syncRoleResponse{
		Identifier: outcome.Identifier.String(),
		Status:     string(outcome.Status),
		Message:    outcome.Message,
	})
}
