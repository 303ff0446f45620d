// Package store persists reservations in the reservas table.
//
// Every operation acquires its own connection and releases it before
// returning. Failures are logged once with the operation name and
// returned wrapped so callers can tell them apart with errors.Is.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/models"
	"github.com/jmoiron/sqlx"
)

// NoID is returned by Create when no row was stored.
const NoID int64 = -1

var (
	// ErrNotFound means no row matches the requested id.
	ErrNotFound = errors.New("reservation not found")
	// ErrStatement marks failures while executing a statement or reading its result.
	ErrStatement = errors.New("statement failed")
)

// Column order is part of the contract; do not reorder parameters.
const (
	sqlInsert     = "INSERT INTO reservas (fecha_reserva, hora_reserva, num_personas, nombre_cliente, email_cliente) VALUES (?, ?, ?, ?, ?)"
	sqlSelectAll  = "SELECT " + columns + " FROM reservas ORDER BY fecha_reserva, hora_reserva"
	sqlSelectByID = "SELECT " + columns + " FROM reservas WHERE id = ?"
	sqlUpdate     = "UPDATE reservas SET fecha_reserva = ?, hora_reserva = ?, num_personas = ?, estado = ? WHERE id = ?"
	sqlDelete     = "DELETE FROM reservas WHERE id = ?"

	columns = "id, fecha_reserva, hora_reserva, num_personas, nombre_cliente, email_cliente, estado"
)

// Provider hands out one connection per operation. *db.DB implements it.
type Provider interface {
	Acquire(ctx context.Context) (*sqlx.Conn, error)
	Release(c *sqlx.Conn)
	DriverName() string
}

// Reservations is the data-access component for reservation records.
type Reservations struct {
	p    Provider
	bind int
}

// New returns a store issuing statements through p.
func New(p Provider) *Reservations {
	return &Reservations{p: p, bind: sqlx.BindType(p.DriverName())}
}

func (s *Reservations) rebind(q string) string { return sqlx.Rebind(s.bind, q) }

// Create inserts r and writes the generated id back into it. On any failure
// r.ID is left untouched and NoID is returned with the error.
func (s *Reservations) Create(ctx context.Context, r *models.Reservation) (int64, error) {
	const op = "create"
	if err := r.Validate(); err != nil {
		return NoID, fail(op, err)
	}

	c, err := s.p.Acquire(ctx)
	if err != nil {
		return NoID, fail(op, err)
	}
	defer s.p.Release(c)

	args := []any{r.ReservationDate, r.ReservationTime, r.PartySize, r.CustomerName, r.CustomerEmail}

	var id int64
	if s.bind == sqlx.DOLLAR {
		if err := c.QueryRowxContext(ctx, s.rebind(sqlInsert)+" RETURNING id", args...).Scan(&id); err != nil {
			return NoID, fail(op, statement(err))
		}
	} else {
		res, err := c.ExecContext(ctx, s.rebind(sqlInsert), args...)
		if err != nil {
			return NoID, fail(op, statement(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return NoID, fail(op, statement(err))
		}
		if n == 0 {
			return NoID, fail(op, fmt.Errorf("%w: no rows inserted", ErrStatement))
		}
		if id, err = res.LastInsertId(); err != nil {
			return NoID, fail(op, statement(err))
		}
	}
	if id <= 0 {
		return NoID, fail(op, fmt.Errorf("%w: no generated id", ErrStatement))
	}

	r.ID = id
	return id, nil
}

// ListAll returns every reservation ordered by date and time. The slice is
// never nil; on failure it is empty and err is set.
func (s *Reservations) ListAll(ctx context.Context) ([]models.Reservation, error) {
	const op = "list"
	out := []models.Reservation{}

	c, err := s.p.Acquire(ctx)
	if err != nil {
		return out, fail(op, err)
	}
	defer s.p.Release(c)

	if err := c.SelectContext(ctx, &out, sqlSelectAll); err != nil {
		return []models.Reservation{}, fail(op, statement(err))
	}
	return out, nil
}

// FindByID loads one reservation. A missing row yields ErrNotFound, which
// is not logged; any other failure is.
func (s *Reservations) FindByID(ctx context.Context, id int64) (models.Reservation, error) {
	const op = "find"
	if id <= 0 {
		return models.Reservation{}, ErrNotFound
	}

	c, err := s.p.Acquire(ctx)
	if err != nil {
		return models.Reservation{}, fail(op, err)
	}
	defer s.p.Release(c)

	var r models.Reservation
	if err := c.GetContext(ctx, &r, s.rebind(sqlSelectByID), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reservation{}, ErrNotFound
		}
		return models.Reservation{}, fail(op, statement(err))
	}
	return r, nil
}

// Update writes date, time, party size and status of r back to its row.
// Customer name and email are never changed. It reports false with a nil
// error when no row has r.ID.
func (s *Reservations) Update(ctx context.Context, r models.Reservation) (bool, error) {
	const op = "update"
	if err := r.ValidateUpdate(); err != nil {
		return false, fail(op, err)
	}

	c, err := s.p.Acquire(ctx)
	if err != nil {
		return false, fail(op, err)
	}
	defer s.p.Release(c)

	res, err := c.ExecContext(ctx, s.rebind(sqlUpdate),
		r.ReservationDate, r.ReservationTime, r.PartySize, r.Status, r.ID)
	if err != nil {
		return false, fail(op, statement(err))
	}
	return affected(op, res)
}

// Delete removes the row with id. It reports false with a nil error when
// nothing was removed, so deleting twice is harmless.
func (s *Reservations) Delete(ctx context.Context, id int64) (bool, error) {
	const op = "delete"
	if id <= 0 {
		return false, nil
	}

	c, err := s.p.Acquire(ctx)
	if err != nil {
		return false, fail(op, err)
	}
	defer s.p.Release(c)

	res, err := c.ExecContext(ctx, s.rebind(sqlDelete), id)
	if err != nil {
		return false, fail(op, statement(err))
	}
	return affected(op, res)
}

func affected(op string, res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fail(op, statement(err))
	}
	return n > 0, nil
}

func statement(err error) error {
	return fmt.Errorf("%w: %v", ErrStatement, err)
}

func fail(op string, err error) error {
	log.Printf("store: %s: %v", op, err)
	return fmt.Errorf("%s reservation: %w", op, err)
}
