package reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/handlers/common"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/models"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/store"
	"github.com/gin-gonic/gin"
)

// bindForm maps the submitted form fields onto a reservation. On malformed
// input it writes a 400 response and reports false.
func bindForm(c *gin.Context) (models.Reservation, bool) {
	var r models.Reservation
	fields := gin.H{}

	id, ok := common.ParseID(c.PostForm("id"))
	if !ok {
		fields["id"] = "must be a positive integer"
	}
	if id > 0 {
		r.ID = id
	}

	r.CustomerName = common.CleanText(c.PostForm("nombreCliente"))
	r.CustomerEmail = common.CleanText(c.PostForm("emailCliente"))
	r.Status = models.Status(common.CleanText(c.PostForm("estado")))

	if d, err := models.ParseDate(c.PostForm("fechaReserva")); err != nil {
		fields["fechaReserva"] = "must be a date (YYYY-MM-DD)"
	} else {
		r.ReservationDate = d
	}
	if t, err := models.ParseClock(c.PostForm("horaReserva")); err != nil {
		fields["horaReserva"] = "must be a time (HH:MM)"
	} else {
		r.ReservationTime = t
	}
	if n, err := strconv.Atoi(common.CleanText(c.PostForm("numPersonas"))); err != nil {
		fields["numPersonas"] = "must be a number"
	} else {
		r.PartySize = n
	}

	if len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "fields": fields})
		return r, false
	}
	return r, true
}

// queryID reads a required positive id from the query string.
func queryID(c *gin.Context) (int64, bool) {
	id, ok := common.ParseID(c.Query("id"))
	if !ok || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "fields": gin.H{"id": "must be a positive integer"}})
		return 0, false
	}
	return id, true
}

// respondError turns a store failure into a visible error response.
func respondError(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "fields": ve.Fields})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
	}
}
