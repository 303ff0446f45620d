package reservations

import (
	"net/http"

	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/models"
	"github.com/gin-gonic/gin"
)

// New renders the blank booking form.
func (h *Handler) New(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reserva": models.NewDraft(), "estados": models.Statuses})
}

// Edit renders the form prefilled with an existing reservation.
func (h *Handler) Edit(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	r, err := h.store.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reserva": r, "estados": models.Statuses})
}
