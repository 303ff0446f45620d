// Package demo runs the create, read, update and delete walk-through
// against a reservation store and prints what happened.
package demo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/models"
)

// Store is the subset of the reservation store the walk-through drives.
type Store interface {
	Create(ctx context.Context, r *models.Reservation) (int64, error)
	ListAll(ctx context.Context) ([]models.Reservation, error)
	FindByID(ctx context.Context, id int64) (models.Reservation, error)
	Update(ctx context.Context, r models.Reservation) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Booking is the reservation the walk-through starts from.
func Booking() models.Reservation {
	return models.Reservation{
		ReservationDate: models.NewDate(2025, time.December, 10),
		ReservationTime: models.NewClock(19, 30, 0),
		PartySize:       4,
		CustomerName:    "Sofía Gómez",
		CustomerEmail:   "sofia.gomez@ejemplo.com",
	}
}

// Run creates the booking, lists, confirms it for six people, reads it
// back and deletes it twice. The first store error stops the run.
func Run(ctx context.Context, s Store, w io.Writer) error {
	r := Booking()
	id, err := s.Create(ctx, &r)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	fmt.Fprintf(w, "created reservation %d\n", id)

	all, err := s.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	fmt.Fprintf(w, "listed %d reservation(s)\n", len(all))
	for _, row := range all {
		fmt.Fprintf(w, "  %s\n", row)
	}

	found, err := s.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	fmt.Fprintf(w, "found %s\n", found)

	found.PartySize = 6
	found.Status = models.StatusConfirmed
	ok, err := s.Update(ctx, found)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if !ok {
		return fmt.Errorf("update: reservation %d vanished", id)
	}
	fmt.Fprintf(w, "updated reservation %d: party %d, status %s\n", id, found.PartySize, found.Status)

	after, err := s.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("re-read: %w", err)
	}
	fmt.Fprintf(w, "re-read %s\n", after)

	for i := 0; i < 2; i++ {
		ok, err := s.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		if ok {
			fmt.Fprintf(w, "deleted reservation %d\n", id)
		} else {
			fmt.Fprintf(w, "reservation %d already gone\n", id)
		}
	}
	return nil
}
