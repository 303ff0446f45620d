package reservations

import (
	"github.com/gin-gonic/gin"
)

// Insert stores a new reservation from the submitted form. A form carrying
// a positive id refers to an existing record and is treated as an update.
func (h *Handler) Insert(c *gin.Context) {
	r, ok := bindForm(c)
	if !ok {
		return
	}
	if r.Saved() {
		h.update(c, r)
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if _, err := h.store.Create(ctx, &r); err != nil {
		respondError(c, err)
		return
	}
	redirectToList(c)
}
