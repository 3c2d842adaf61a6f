package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/adapter/moderation"
)

// Moderator is the content-moderation collaborator. The adapter applies its
// own call timeout.
type Moderator interface {
	Moderate(ctx context.Context, image string) (*moderation.Result, error)
}

type ModerationHandler struct {
	moderator Moderator
	logger    *zap.Logger
}

func NewModerationHandler(moderator Moderator, logger *zap.Logger) *ModerationHandler {
	return &ModerationHandler{moderator: moderator, logger: logger}
}

type moderateImageRequest struct {
	Image string `json:"image"`
}

type moderateImageResponse struct {
	IsAppropriate     bool               `json:"isAppropriate"`
	ModerationDetails *moderation.Result `json:"moderationDetails,omitempty"`
	Warning           string             `json:"warning,omitempty"`
}

// HandleModerateImage proxies an uploaded image to the moderation
// collaborator. When the collaborator errors or times out the upload is
// accepted with a warning rather than rejected; the degraded path is logged.
func (h *ModerationHandler) HandleModerateImage(w http.ResponseWriter, r *http.Request) {
	var req moderateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Message: "Image is required"})
		return
	}

	result, err := h.moderator.Moderate(r.Context(), req.Image)
	if err != nil {
		h.logger.Warn("moderation degraded: accepting image without a verdict", zap.Error(err))
		writeJSON(w, h.logger, http.StatusOK, moderateImageResponse{
			IsAppropriate: true,
			Warning:       "Moderation service unavailable; image accepted without review",
		})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, moderateImageResponse{
		IsAppropriate:     result.IsAppropriate,
		ModerationDetails: result,
	})
}
