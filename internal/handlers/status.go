package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Current asset status
// @Description  Latest temperature, door state, and humidity when available.
// @Tags         status
// @Produce      json
// @Param        id    path   int     true   "Asset ID"
// @Param        unit  query  string  false  "Temperature unit"  Enums(c,f)
// @Success      200  {object}  models.StatusSnapshot
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/assets/{id}/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	assetID, ok := h.parseAssetID(c)
	if !ok {
		return
	}
	snap, err := h.services.Status.Current(c.Request.Context(), assetID, c.Query("unit"))
	if err != nil {
		h.respondServiceError(c, err, "status_fetch_failed", "asset_id", assetID)
		return
	}
	c.JSON(http.StatusOK, snap)
}
