package reservations

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Delete removes a reservation by id and returns to the list.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	deleted, err := h.store.Delete(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	redirectToList(c)
}
