package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Provider organization
// @Tags         fleet
// @Produce      json
// @Success      200  {object}  models.Org
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/org [get]
func (h *Handler) getOrg(c *gin.Context) {
	org, err := h.services.Fleet.Org(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "org_fetch_failed")
		return
	}
	c.JSON(http.StatusOK, org)
}

// @Summary      List assets
// @Description  Fleet roster with flattened sensor configurations.
// @Tags         fleet
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, assets"
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/assets [get]
func (h *Handler) listAssets(c *gin.Context) {
	assets, err := h.services.Fleet.Assets(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "assets_fetch_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(assets),
		"assets": assets,
	})
}

// @Summary      Sensor inventory
// @Description  All sensors in the organization, including unassigned ones.
// @Tags         fleet
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, sensors"
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/sensors [get]
func (h *Handler) listSensors(c *gin.Context) {
	sensors, err := h.services.Fleet.Sensors(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "sensors_fetch_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(sensors),
		"sensors": sensors,
	})
}

// @Summary      Sensors on one asset
// @Tags         fleet
// @Produce      json
// @Param        id  path  int  true  "Asset ID"
// @Success      200  {object}  map[string]interface{}  "asset_id, sensors"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/assets/{id}/sensors [get]
func (h *Handler) assetSensors(c *gin.Context) {
	assetID, ok := h.parseAssetID(c)
	if !ok {
		return
	}
	asset, err := h.services.Fleet.Asset(c.Request.Context(), assetID)
	if err != nil {
		h.respondServiceError(c, err, "asset_fetch_failed", "asset_id", assetID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"asset_id": asset.ID,
		"sensors":  asset.Sensors,
	})
}

// parseAssetID reads the :id path param; responds 400 on garbage input.
func (h *Handler) parseAssetID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return 0, false
	}
	return id, true
}
