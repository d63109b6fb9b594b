package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
)

func (r *paymentRepository) CreateMethod(ctx context.Context, method *model.PaymentMethod) (*model.PaymentMethod, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if method.IsDefault {
			if _, err := tx.Exec(ctx, `UPDATE payment_methods SET is_default=FALSE WHERE user_id=$1`, method.UserID); err != nil {
				return err
			}
		}
		const query = `INSERT INTO payment_methods (user_id, brand, last4, exp_month, exp_year, holder, is_default)
                       VALUES ($1, $2, $3, $4, $5, $6, $7)
                       RETURNING id, created_at`
		return tx.QueryRow(ctx, query,
			method.UserID, method.Brand, method.Last4, method.ExpMonth, method.ExpYear, method.Holder, method.IsDefault,
		).Scan(&method.ID, &method.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}

func (r *paymentRepository) ListMethods(ctx context.Context, userID int64) ([]model.PaymentMethod, error) {
	const query = `SELECT id, user_id, brand, last4, exp_month, exp_year, holder, is_default, created_at
                   FROM payment_methods WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PaymentMethod
	for rows.Next() {
		var m model.PaymentMethod
		if err := rows.Scan(&m.ID, &m.UserID, &m.Brand, &m.Last4, &m.ExpMonth, &m.ExpYear, &m.Holder, &m.IsDefault, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) SetDefaultMethod(ctx context.Context, userID, methodID int64) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE payment_methods SET is_default=FALSE WHERE user_id=$1`, userID); err != nil {
			return err
		}
		const query = `UPDATE payment_methods SET is_default=TRUE
                       WHERE id=$1 AND user_id=$2
                       RETURNING id, user_id, brand, last4, exp_month, exp_year, holder, is_default, created_at`
		err := tx.QueryRow(ctx, query, methodID, userID).Scan(
			&method.ID, &method.UserID, &method.Brand, &method.Last4,
			&method.ExpMonth, &method.ExpYear, &method.Holder, &method.IsDefault, &method.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *paymentRepository) DeleteMethod(ctx context.Context, userID, methodID int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM payment_methods WHERE id=$1 AND user_id=$2`, methodID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *paymentRepository) DeleteMethods(ctx context.Context, userID int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM payment_methods WHERE user_id=$1`, userID)
	return err
}

// --- payment intents ---

func (r *paymentRepository) CreateIntent(ctx context.Context, intent *model.PaymentIntent) (*model.PaymentIntent, error) {
	const query = `INSERT INTO payment_intents (user_id, order_id, provider_id, amount_cents, currency, status, description)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		intent.UserID, intent.OrderID, intent.ProviderID, intent.AmountCents, intent.Currency, intent.Status, intent.Description,
	).Scan(&intent.ID, &intent.CreatedAt, &intent.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return intent, nil
}

func (r *paymentRepository) ListIntentsByUser(ctx context.Context, userID int64) ([]model.PaymentIntent, error) {
	const query = `SELECT id, user_id, order_id, provider_id, amount_cents, currency, status, description, created_at, updated_at
                   FROM payment_intents WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIntents(rows)
}

func (r *paymentRepository) SelectPendingIntents(ctx context.Context, limit int) ([]model.PaymentIntent, error) {
	const query = `SELECT id, user_id, order_id, provider_id, amount_cents, currency, status, description, created_at, updated_at
                   FROM payment_intents
                   WHERE status IN ('requires_payment_method', 'processing')
                   ORDER BY created_at
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIntents(rows)
}

func collectIntents(rows pgx.Rows) ([]model.PaymentIntent, error) {
	var result []model.PaymentIntent
	for rows.Next() {
		var intent model.PaymentIntent
		if err := rows.Scan(&intent.ID, &intent.UserID, &intent.OrderID, &intent.ProviderID,
			&intent.AmountCents, &intent.Currency, &intent.Status, &intent.Description,
			&intent.CreatedAt, &intent.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, intent)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) UpdateIntentStatus(ctx context.Context, intentID int64, status model.IntentStatus) error {
	const query = `UPDATE payment_intents SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, intentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
