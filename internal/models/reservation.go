package models

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Status is the lifecycle state kept in the estado column.
type Status string

const (
	StatusPending   Status = "Pendiente" // column default
	StatusConfirmed Status = "Confirmada"
	StatusCancelled Status = "Cancelada"
)

// Statuses lists the known values in display order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// MaxPartySize is the largest party a single table booking accepts.
const MaxPartySize = 10

// Reservation is one table booking stored in the reservas table.
// ID <= 0 means the record has not been saved yet.
type Reservation struct {
	ID              int64  `db:"id" json:"id"`
	ReservationDate Date   `db:"fecha_reserva" json:"fechaReserva"`
	ReservationTime Clock  `db:"hora_reserva" json:"horaReserva"`
	PartySize       int    `db:"num_personas" json:"numPersonas"`
	CustomerName    string `db:"nombre_cliente" json:"nombreCliente"`
	CustomerEmail   string `db:"email_cliente" json:"emailCliente"`
	Status          Status `db:"estado" json:"estado"`
}

// NewDraft returns the record a blank booking form starts from.
func NewDraft() Reservation {
	return Reservation{PartySize: 2, Status: StatusPending}
}

// Saved reports whether the record carries a database id.
func (r Reservation) Saved() bool { return r.ID > 0 }

func (r Reservation) String() string {
	return fmt.Sprintf("Reservation{ID=%d, Customer=%q, Date=%s, Time=%s, Party=%d, Status=%q}",
		r.ID, r.CustomerName, r.ReservationDate, r.ReservationTime, r.PartySize, string(r.Status))
}

// ErrInvalid is matched by every ValidationError.
var ErrInvalid = errors.New("invalid reservation")

// ValidationError maps form field names to a message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

var emailRe = regexp.MustCompile(`^[\w.+-]+@([\w-]+\.)+[\w-]{2,}$`)

// Validate checks the fields a new booking must carry. Status is left to
// the column default and not checked here.
func (r Reservation) Validate() error {
	f := r.check()
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// ValidateUpdate checks an existing record before it is written back.
func (r Reservation) ValidateUpdate() error {
	f := r.check()
	if r.ID <= 0 {
		f["id"] = "must be a saved reservation"
	}
	if !r.Status.Valid() {
		f["estado"] = "must be one of Pendiente, Confirmada, Cancelada"
	}
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func (r Reservation) check() map[string]string {
	f := map[string]string{}
	if strings.TrimSpace(r.CustomerName) == "" {
		f["nombreCliente"] = "required"
	}
	if !emailRe.MatchString(r.CustomerEmail) {
		f["emailCliente"] = "must be a valid email"
	}
	if r.PartySize < 1 || r.PartySize > MaxPartySize {
		f["numPersonas"] = fmt.Sprintf("must be between 1 and %d", MaxPartySize)
	}
	if r.ReservationDate.IsZero() {
		f["fechaReserva"] = "required"
	}
	if r.ReservationTime.IsZero() {
		f["horaReserva"] = "required"
	}
	return f
}
