package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-registration/internal/domain/formconfig"
)

type formFieldRequest struct {
	Name     string   `json:"name" validate:"required"`
	Label    string   `json:"label" validate:"required"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

type saveFormConfigRequest struct {
	Fields []formFieldRequest `json:"fields" validate:"required,max=50,dive"`
}

type saveFormConfigResponse struct {
	Success bool          `json:"success"`
	Config  formConfigDTO `json:"config"`
}

// GetFormConfig serves the extra registration fields. Before the first save it returns an
// empty list with a null id.
func (h *Handler) GetFormConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFormConfig")
	defer span.End()

	cfg, found, err := h.formConfigService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get form config failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	out, err := formConfigToDTO(cfg, found)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode form config failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) SaveFormConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveFormConfig")
	defer span.End()

	var req saveFormConfigRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fields := make([]formconfig.Field, 0, len(req.Fields))
	for _, f := range req.Fields {
		fields = append(fields, formconfig.Field{
			Name:     f.Name,
			Label:    f.Label,
			Type:     f.Type,
			Required: f.Required,
			Options:  f.Options,
		})
	}

	cfg, err := h.formConfigService.Save(ctx, fields)
	if err != nil {
		h.logger.WarnContext(ctx, "save form config failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	out, err := formConfigToDTO(cfg, true)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, saveFormConfigResponse{Success: true, Config: out})
}
