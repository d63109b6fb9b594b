package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
)

const orderColumns = `id, user_id, number, customer_email, total_amount, status, payment_method,
                      ship_name, ship_line, ship_city, ship_postal_code, ship_country, ship_email,
                      created_at, updated_at`

// rentalCondition classifies legacy free-text kinds the same way the domain
// parser does, so aggregates stay consistent with ParseLineKind.
const rentalCondition = `(kind = 'rental' OR kind = 'rent' OR kind LIKE '%loc%')`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (user_id, number, customer_email, total_amount, status, payment_method,
                                                 ship_name, ship_line, ship_city, ship_postal_code, ship_country, ship_email)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                             RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.UserID, order.Number, order.CustomerEmail, order.TotalAmount, order.Status, order.PaymentMethod,
			order.Shipping.Name, order.Shipping.Line, order.Shipping.City,
			order.Shipping.PostalCode, order.Shipping.Country, order.Shipping.Email,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		const insertLine = `INSERT INTO order_lines (order_id, book_id, quantity, kind, format, price,
                                                     rental_start_at, rental_end_at, rental_duration_days,
                                                     delivery_eta, return_due_at, pdf_url,
                                                     book_title, book_author, book_image)
                            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
                            RETURNING id`
		for i := range order.Lines {
			line := &order.Lines[i]
			var duration *int
			if line.RentalDurationDays > 0 {
				duration = &line.RentalDurationDays
			}
			if err := tx.QueryRow(ctx, insertLine,
				order.ID, line.BookID, line.Quantity, line.Kind, line.Format, line.Price,
				line.RentalStartAt, line.RentalEndAt, duration,
				line.DeliveryETA, line.ReturnDueAt, line.PDFURL,
				line.Book.Title, line.Book.Author, line.Book.Image,
			).Scan(&line.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func scanOrderRow(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Number, &o.CustomerEmail, &o.TotalAmount, &o.Status, &o.PaymentMethod,
		&o.Shipping.Name, &o.Shipping.Line, &o.Shipping.City, &o.Shipping.PostalCode, &o.Shipping.Country, &o.Shipping.Email,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrderRow(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, []*model.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.listOrders(ctx, query, userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.listOrders(ctx, query)
}

func (r *orderRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Number, &o.CustomerEmail, &o.TotalAmount, &o.Status, &o.PaymentMethod,
			&o.Shipping.Name, &o.Shipping.Line, &o.Shipping.City, &o.Shipping.PostalCode, &o.Shipping.Country, &o.Shipping.Email,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*model.Order, len(result))
	for i := range result {
		refs[i] = &result[i]
	}
	if err := r.attachLines(ctx, refs); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) attachLines(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*model.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	const query = `SELECT order_id, id, book_id, quantity, kind, format, price,
                          rental_start_at, rental_end_at, rental_duration_days,
                          delivery_eta, return_due_at, pdf_url, book_title, book_author, book_image
                   FROM order_lines WHERE order_id = ANY($1) ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID  int64
			line     model.OrderLine
			kind     string
			format   string
			duration *int
		)
		if err := rows.Scan(&orderID, &line.ID, &line.BookID, &line.Quantity, &kind, &format, &line.Price,
			&line.RentalStartAt, &line.RentalEndAt, &duration,
			&line.DeliveryETA, &line.ReturnDueAt, &line.PDFURL,
			&line.Book.Title, &line.Book.Author, &line.Book.Image); err != nil {
			return err
		}
		line.Kind = model.ParseLineKind(kind)
		line.Format = model.ParseBookFormat(format)
		if duration != nil {
			line.RentalDurationDays = *duration
		}
		if owner, ok := byID[orderID]; ok {
			owner.Lines = append(owner.Lines, line)
		}
	}
	return rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Summary(ctx context.Context, userID int64) (*model.OrderSummary, error) {
	var summary model.OrderSummary

	const totalsQuery = `SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders WHERE user_id=$1`
	if err := r.storage.pool.QueryRow(ctx, totalsQuery, userID).Scan(&summary.TotalOrders, &summary.TotalAmount); err != nil {
		return nil, err
	}

	const linesQuery = `SELECT
                            COALESCE(SUM(CASE WHEN ` + rentalCondition + ` THEN 0 ELSE quantity END), 0),
                            COALESCE(SUM(CASE WHEN ` + rentalCondition + ` THEN quantity ELSE 0 END), 0)
                        FROM order_lines l JOIN orders o ON o.id = l.order_id
                        WHERE o.user_id=$1`
	if err := r.storage.pool.QueryRow(ctx, linesQuery, userID).Scan(&summary.BooksBought, &summary.BooksRented); err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *orderRepository) AdminSummary(ctx context.Context, startOfDay time.Time) (*model.AdminOrderSummary, error) {
	var summary model.AdminOrderSummary

	const totalsQuery = `SELECT COUNT(*), COALESCE(SUM(total_amount), 0),
                                COALESCE(SUM(CASE WHEN created_at >= $1 THEN 1 ELSE 0 END), 0),
                                COALESCE(SUM(CASE WHEN created_at >= $1 THEN total_amount ELSE 0 END), 0)
                         FROM orders`
	if err := r.storage.pool.QueryRow(ctx, totalsQuery, startOfDay).Scan(
		&summary.TotalOrders, &summary.TotalAmount, &summary.OrdersToday, &summary.AmountToday); err != nil {
		return nil, err
	}

	const linesQuery = `SELECT
                            COALESCE(SUM(CASE WHEN ` + rentalCondition + ` THEN 0 ELSE quantity END), 0),
                            COALESCE(SUM(CASE WHEN ` + rentalCondition + ` THEN quantity ELSE 0 END), 0)
                        FROM order_lines`
	if err := r.storage.pool.QueryRow(ctx, linesQuery).Scan(&summary.BooksBought, &summary.BooksRented); err != nil {
		return nil, err
	}

	return &summary, nil
}
