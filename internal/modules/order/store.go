// README: Order store backed by PostgreSQL with optimistic status updates.
package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nosh/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, o *Order) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO orders (
            id, customer_id, vendor_id, branch_id, courier_id,
            status, status_version,
            dropoff_lat, dropoff_lng, delivery_fee, currency, note, created_at
        ) VALUES (
            $1, $2, $3, $4, $5,
            $6, $7,
            $8, $9, $10, $11, $12, $13
        )`,
		string(o.ID),
		string(o.CustomerID),
		string(o.VendorID),
		string(o.BranchID),
		toStringPtr(o.CourierID),
		string(o.Status),
		o.StatusVersion,
		o.Dropoff.Lat, o.Dropoff.Lng,
		o.DeliveryFee.Amount,
		o.DeliveryFee.Currency,
		o.Note,
		o.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, customer_id, vendor_id, branch_id, courier_id,
               status, status_version,
               dropoff_lat, dropoff_lng, delivery_fee, currency, note,
               created_at, confirmed_at, picked_up_at, delivered_at, closed_at
        FROM orders
        WHERE id = $1`, string(id),
	)

	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus performs the conditional write that linearizes transitions per
// order: the row only changes if both the status and the version still match
// what the caller read. Returns false when the condition failed.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE orders
        SET status = $1,
            status_version = status_version + 1,
            confirmed_at = CASE WHEN $1 = 'CONFIRMED' THEN NOW() ELSE confirmed_at END,
            picked_up_at = CASE WHEN $1 = 'PICKED_UP' THEN NOW() ELSE picked_up_at END,
            delivered_at = CASE WHEN $1 = 'DELIVERED' THEN NOW() ELSE delivered_at END,
            closed_at = CASE WHEN $1 IN ('DELIVERED','REJECTED','CANCELED_BY_VENDOR') THEN NOW() ELSE closed_at END
        WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to),
		string(id),
		string(from),
		version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// AssignCourier sets the courier only if none is attached yet.
func (s *Store) AssignCourier(ctx context.Context, id, courierID types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE orders
        SET courier_id = $1
        WHERE id = $2 AND courier_id IS NULL`,
		string(courierID),
		string(id),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO order_state_events (
            order_id, from_status, to_status, actor_role, actor_id, note, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(e.OrderID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorRole,
		toStringPtr(e.ActorID),
		e.Note,
		e.CreatedAt,
	)
	return err
}

func (s *Store) EventsByOrder(ctx context.Context, id types.ID) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, order_id, from_status, to_status, actor_role, actor_id, note, created_at
        FROM order_state_events
        WHERE order_id = $1
        ORDER BY id`, string(id),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var actorID sql.NullString
		if err := rows.Scan(&e.ID, &e.OrderID, &e.FromStatus, &e.ToStatus, &e.ActorRole, &actorID, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		if actorID.Valid {
			a := types.ID(actorID.String)
			e.ActorID = &a
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) ListUnassignedByStatus(ctx context.Context, status Status, limit int) ([]*Order, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, customer_id, vendor_id, branch_id, courier_id,
               status, status_version,
               dropoff_lat, dropoff_lng, delivery_fee, currency, note,
               created_at, confirmed_at, picked_up_at, delivered_at, closed_at
        FROM orders
        WHERE status = $1 AND courier_id IS NULL
        ORDER BY created_at
        LIMIT $2`, string(status), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	var courierID sql.NullString
	var confirmedAt, pickedUpAt, deliveredAt, closedAt sql.NullTime

	err := row.Scan(
		&o.ID, &o.CustomerID, &o.VendorID, &o.BranchID, &courierID,
		&o.Status, &o.StatusVersion,
		&o.Dropoff.Lat, &o.Dropoff.Lng,
		&o.DeliveryFee.Amount, &o.DeliveryFee.Currency, &o.Note,
		&o.CreatedAt, &confirmedAt, &pickedUpAt, &deliveredAt, &closedAt,
	)
	if err != nil {
		return nil, err
	}
	if courierID.Valid {
		c := types.ID(courierID.String)
		o.CourierID = &c
	}
	o.ConfirmedAt = toTimePtr(confirmedAt)
	o.PickedUpAt = toTimePtr(pickedUpAt)
	o.DeliveredAt = toTimePtr(deliveredAt)
	o.ClosedAt = toTimePtr(closedAt)
	return &o, nil
}

func toStringPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
