package reservations

import (
	"net/http"

	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/models"
	"github.com/gin-gonic/gin"
)

// Update writes date, time, party size and status back to an existing
// reservation. Name and email in the form are ignored by the store.
func (h *Handler) Update(c *gin.Context) {
	r, ok := bindForm(c)
	if !ok {
		return
	}
	if !r.Saved() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "fields": gin.H{"id": "required"}})
		return
	}
	h.update(c, r)
}

func (h *Handler) update(c *gin.Context, r models.Reservation) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	updated, err := h.store.Update(ctx, r)
	if err != nil {
		respondError(c, err)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	redirectToList(c)
}
