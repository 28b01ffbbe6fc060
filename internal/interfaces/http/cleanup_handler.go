package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fixture-cleanup/internal/application/cleanup"
	"github.com/jhoicas/fixture-cleanup/internal/application/dto"
	"github.com/jhoicas/fixture-cleanup/pkg/logger"
)

// purgeRunner lo implementa *cleanup.PurgeUseCase.
type purgeRunner interface {
	Run(ctx context.Context) (*cleanup.Result, error)
}

// CleanupHandler expone la limpieza de clientes de prueba (solo admin).
type CleanupHandler struct {
	uc  purgeRunner
	log *logger.Logger
}

// NewCleanupHandler construye el handler.
func NewCleanupHandler(uc purgeRunner, log *logger.Logger) *CleanupHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CleanupHandler{uc: uc, log: log}
}

// Purge godoc
// @Summary      Eliminar clientes de prueba
// @Description  Borra los clientes configurados en CLEANUP_TARGETS, sus facturas y su foto en uploads.
// @Tags         admin
// @Produce      json
// @Success      200   {object}  dto.CleanupResponse
// @Failure      401   {object}  dto.CleanupErrorResponse
// @Failure      403   {object}  dto.CleanupErrorResponse
// @Failure      500   {object}  dto.CleanupErrorResponse
// @Router       /api/admin/cleanup [post]
func (h *CleanupHandler) Purge(c *fiber.Ctx) error {
	userID := ""
	if s := GetSession(c); s != nil {
		userID = s.UserID
	}
	h.log.Info().Str("user_id", userID).Msg("limpieza solicitada")

	res, err := h.uc.Run(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("limpieza falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.CleanupErrorResponse{
			Error:   err.Error(),
			Message: dto.CleanupFailedMessage,
		})
	}

	out := dto.CleanupResponse{
		Message:          dto.CleanupDoneMessage,
		DeletedCustomers: res.DeletedCustomers,
		Errors:           res.Errors,
	}
	if res.ImagesEnabled {
		images := res.DeletedImages
		if images == nil {
			images = []string{}
		}
		out.DeletedImages = &images
	}
	h.log.Info().Str("user_id", userID).
		Int("deleted", len(res.DeletedCustomers)).
		Int("errors", len(res.Errors)).
		Msg("limpieza concluida")
	return c.JSON(out)
}
