package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/config"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/db"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/models"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *gin.Engine
	store  *store.Reservations
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	d, err := db.Open(ctx, config.Database{
		Driver:         "sqlite3",
		Name:           filepath.Join(t.TempDir(), "reservas.db"),
		ConnectRetries: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, d.EnsureSchema(ctx))

	s := store.New(d)
	return &testEnv{router: newRouter(s), store: s}
}

func newRouter(s Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(s, time.Second).Register(r, "/reservas")
	return r
}

func (e *testEnv) get(t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reservas?"+query, nil))
	return w
}

func (e *testEnv) post(t *testing.T, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/reservas", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seed(t *testing.T, r models.Reservation) int64 {
	t.Helper()
	id, err := e.store.Create(context.Background(), &r)
	require.NoError(t, err)
	return id
}

func sofiaForm() url.Values {
	return url.Values{
		"accion":        {"insertar"},
		"nombreCliente": {"  Sofía Gómez "},
		"emailCliente":  {"sofia.gomez@ejemplo.com"},
		"fechaReserva":  {"2025-12-10"},
		"horaReserva":   {"19:30"},
		"numPersonas":   {"4"},
	}
}

func sofia() models.Reservation {
	return models.Reservation{
		ReservationDate: models.NewDate(2025, time.December, 10),
		ReservationTime: models.NewClock(19, 30, 0),
		PartySize:       4,
		CustomerName:    "Sofía Gómez",
		CustomerEmail:   "sofia.gomez@ejemplo.com",
	}
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []models.Reservation {
	t.Helper()
	var body struct {
		Reservas []models.Reservation `json:"reservas"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Reservas
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestListDefault(t *testing.T) {
	e := newTestEnv(t)

	w := e.get(t, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reservas": []}`, w.Body.String())

	e.seed(t, sofia())
	w = e.get(t, "accion=listar")
	require.Equal(t, http.StatusOK, w.Code)
	rows := decodeList(t, w)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sofía Gómez", rows[0].CustomerName)
	assert.Equal(t, models.StatusPending, rows[0].Status)
}

func TestNewForm(t *testing.T) {
	e := newTestEnv(t)

	for _, accion := range []string{"nuevo", "insertar"} {
		w := e.get(t, "accion="+accion)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Reserva models.Reservation `json:"reserva"`
			Estados []models.Status    `json:"estados"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, models.NewDraft(), body.Reserva)
		assert.Equal(t, models.Statuses, body.Estados)
	}
}

func TestInsertRedirectsToList(t *testing.T) {
	e := newTestEnv(t)

	w := e.post(t, sofiaForm())
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/reservas?accion=listar", w.Header().Get("Location"))

	rows, err := e.store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sofía Gómez", rows[0].CustomerName, "text is trimmed and NFC-normalized")
	assert.Equal(t, 4, rows[0].PartySize)
}

func TestInsertIsDefaultPostAction(t *testing.T) {
	e := newTestEnv(t)

	f := sofiaForm()
	f.Del("accion")
	w := e.post(t, f)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestInsertInvalid(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name  string
		field string
		value string
	}{
		{"zero party", "numPersonas", "0"},
		{"negative party", "numPersonas", "-2"},
		{"party not a number", "numPersonas", "four"},
		{"bad date", "fechaReserva", "10/12/2025"},
		{"bad time", "horaReserva", "late"},
		{"blank name", "nombreCliente", "   "},
		{"bad email", "emailCliente", "sofia"},
		{"bad id", "id", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := sofiaForm()
			f.Set(tt.field, tt.value)
			w := e.post(t, f)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var body struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "invalid_request", body.Error)
			assert.Contains(t, body.Fields, tt.field)
		})
	}

	rows, err := e.store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEdit(t *testing.T) {
	e := newTestEnv(t)
	id := e.seed(t, sofia())

	w := e.get(t, "accion=editar&id="+itoa(id))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Reserva models.Reservation `json:"reserva"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, id, body.Reserva.ID)
	assert.Equal(t, "2025-12-10", body.Reserva.ReservationDate.String())

	w = e.get(t, "accion=editar&id=9999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", errorCode(t, w))

	w = e.get(t, "accion=editar")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate(t *testing.T) {
	e := newTestEnv(t)
	id := e.seed(t, sofia())

	f := sofiaForm()
	f.Set("accion", "actualizar")
	f.Set("id", itoa(id))
	f.Set("numPersonas", "6")
	f.Set("estado", "Confirmada")
	f.Set("nombreCliente", "Cambiado")

	w := e.post(t, f)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/reservas?accion=listar", w.Header().Get("Location"))

	got, err := e.store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 6, got.PartySize)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, "Sofía Gómez", got.CustomerName, "update never touches the customer")
}

func TestInsertWithIDUpdates(t *testing.T) {
	e := newTestEnv(t)
	id := e.seed(t, sofia())

	f := sofiaForm()
	f.Set("id", itoa(id))
	f.Set("numPersonas", "3")
	f.Set("estado", "Cancelada")

	w := e.post(t, f)
	require.Equal(t, http.StatusFound, w.Code)

	rows, err := e.store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StatusCancelled, rows[0].Status)
}

func TestUpdateFailures(t *testing.T) {
	e := newTestEnv(t)

	f := sofiaForm()
	f.Set("accion", "actualizar")
	f.Set("estado", "Confirmada")

	w := e.post(t, f)
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing id")

	f.Set("id", "4242")
	w = e.post(t, f)
	assert.Equal(t, http.StatusNotFound, w.Code)

	id := e.seed(t, sofia())
	f.Set("id", itoa(id))
	f.Set("estado", "Terminada")
	w = e.post(t, f)
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown status")
}

func TestDelete(t *testing.T) {
	e := newTestEnv(t)
	id := e.seed(t, sofia())

	w := e.get(t, "accion=eliminar&id="+itoa(id))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/reservas?accion=listar", w.Header().Get("Location"))

	_, err := e.store.FindByID(context.Background(), id)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	w = e.get(t, "accion=eliminar&id="+itoa(id))
	assert.Equal(t, http.StatusNotFound, w.Code, "second delete is reported")

	w = e.get(t, "accion=eliminar&id=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownPostActionLists(t *testing.T) {
	e := newTestEnv(t)

	w := e.post(t, url.Values{"accion": {"otra"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))
}

// failingStore reports a server-side failure on every call.
type failingStore struct{}

var errDown = errors.New("down")

func (failingStore) Create(context.Context, *models.Reservation) (int64, error) {
	return store.NoID, errDown
}
func (failingStore) ListAll(context.Context) ([]models.Reservation, error) {
	return []models.Reservation{}, errDown
}
func (failingStore) FindByID(context.Context, int64) (models.Reservation, error) {
	return models.Reservation{}, errDown
}
func (failingStore) Update(context.Context, models.Reservation) (bool, error) { return false, errDown }
func (failingStore) Delete(context.Context, int64) (bool, error)              { return false, errDown }

func TestStoreFailuresAreVisible(t *testing.T) {
	e := &testEnv{router: newRouter(failingStore{})}

	checks := []*httptest.ResponseRecorder{
		e.get(t, "accion=listar"),
		e.get(t, "accion=editar&id=1"),
		e.get(t, "accion=eliminar&id=1"),
		e.post(t, sofiaForm()),
	}
	f := sofiaForm()
	f.Set("accion", "actualizar")
	f.Set("id", "1")
	f.Set("estado", "Pendiente")
	checks = append(checks, e.post(t, f))

	for i, w := range checks {
		assert.Equal(t, http.StatusInternalServerError, w.Code, "request %d", i)
		assert.Equal(t, "server_error", errorCode(t, w), "request %d", i)
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
