package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmoranv/pokebattle/internal/constants"
)

// ListSpecies returns the full static species list from the catalog.
func (h *BattleHandler) ListSpecies(c *gin.Context) {
	species := h.catalog.Species()
	if species == nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSpecies})
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, species)
}
