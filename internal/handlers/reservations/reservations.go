package reservations

import (
	"context"
	"net/http"
	"time"

	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/models"
	"github.com/gin-gonic/gin"
)

// Package reservations provides the booking form and list HTTP handlers.
// A single path dispatches on the "accion" parameter:
// - list.go:   Handler.List       (GET listar, the default)
// - form.go:   Handler.New/Edit   (GET nuevo, editar)
// - insert.go: Handler.Insert     (POST insertar, the default)
// - update.go: Handler.Update     (POST actualizar)
// - delete.go: Handler.Delete     (GET eliminar)

// Store is what the handlers need from the persistence layer.
type Store interface {
	Create(ctx context.Context, r *models.Reservation) (int64, error)
	ListAll(ctx context.Context) ([]models.Reservation, error)
	FindByID(ctx context.Context, id int64) (models.Reservation, error)
	Update(ctx context.Context, r models.Reservation) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Handler wires reservation actions to the store.
type Handler struct {
	store   Store
	timeout time.Duration
}

// NewHandler returns a handler bounding each store call by timeout.
func NewHandler(s Store, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Handler{store: s, timeout: timeout}
}

// Register mounts the dispatcher at path.
func (h *Handler) Register(r gin.IRouter, path string) {
	r.GET(path, h.Get)
	r.POST(path, h.Post)
}

// Get handles read-style actions; unknown or missing actions list.
func (h *Handler) Get(c *gin.Context) {
	switch c.DefaultQuery("accion", "listar") {
	case "nuevo", "insertar":
		h.New(c)
	case "editar":
		h.Edit(c)
	case "eliminar":
		h.Delete(c)
	default:
		h.List(c)
	}
}

// Post handles write-style actions; a missing action inserts.
func (h *Handler) Post(c *gin.Context) {
	accion := c.PostForm("accion")
	if accion == "" {
		accion = c.DefaultQuery("accion", "insertar")
	}
	switch accion {
	case "insertar":
		h.Insert(c)
	case "actualizar":
		h.Update(c)
	default:
		h.List(c)
	}
}

func (h *Handler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// redirectToList finishes a successful write (post-redirect-get).
func redirectToList(c *gin.Context) {
	c.Redirect(http.StatusFound, c.Request.URL.Path+"?accion=listar")
}
