package reservations

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// List renders every reservation ordered by date and time.
func (h *Handler) List(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	rows, err := h.store.ListAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservas": rows})
}
