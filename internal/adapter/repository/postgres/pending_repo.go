package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pennybank/pennybank/internal/domain"
	"github.com/pennybank/pennybank/internal/usecase"
)

// PendingTransferRepository implements persistence for unsettled
// send-money transfers.
type PendingTransferRepository struct {
	pool *pgxpool.Pool
}

// NewPendingTransferRepository creates a new PendingTransferRepository.
func NewPendingTransferRepository(pool *pgxpool.Pool) *PendingTransferRepository {
	return &PendingTransferRepository{pool: pool}
}

// Create inserts a pending transfer.
func (r *PendingTransferRepository) Create(ctx context.Context, transfer *domain.PendingTransfer) error {
	query := `
		INSERT INTO pending_transfers (id, sender_id, receiver_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		transfer.ID,
		transfer.SenderID,
		transfer.ReceiverID,
		decimalToNumeric(transfer.Amount),
		timeToPgTimestamptz(transfer.CreatedAt),
	)

	return err
}

// ListByReceiver returns the unresolved transfers addressed to the
// user, newest first, annotated with each sender's display name.
func (r *PendingTransferRepository) ListByReceiver(ctx context.Context, receiverID string) ([]*domain.PendingTransferView, error) {
	query := `
		SELECT p.id, p.sender_id, p.receiver_id, p.amount, p.created_at,
		       s.name AS sender_name
		FROM pending_transfers p
		LEFT JOIN users s ON s.id = p.sender_id
		WHERE p.receiver_id = $1
		ORDER BY p.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []*domain.PendingTransferView
	for rows.Next() {
		var (
			view       domain.PendingTransferView
			amount     pgtype.Numeric
			createdAt  pgtype.Timestamptz
			senderName *string
		)

		err := rows.Scan(
			&view.ID,
			&view.SenderID,
			&view.ReceiverID,
			&amount,
			&createdAt,
			&senderName,
		)
		if err != nil {
			return nil, err
		}

		view.Amount = numericToDecimal(amount)
		view.CreatedAt = createdAt.Time
		if senderName != nil {
			view.SenderName = *senderName
		}

		views = append(views, &view)
	}

	return views, rows.Err()
}

// GetForUpdate locks the pending row for the duration of the unit.
// Concurrent resolutions serialize here; whichever loses the race
// finds the row gone and fails with ErrTransferNotFound.
func (r *PendingTransferRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PendingTransfer, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT id, sender_id, receiver_id, amount, created_at
		FROM pending_transfers
		WHERE id = $1
		FOR UPDATE
	`

	var (
		transfer  domain.PendingTransfer
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := pgxTx.QueryRow(ctx, query, id).Scan(
		&transfer.ID,
		&transfer.SenderID,
		&transfer.ReceiverID,
		&amount,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	transfer.Amount = numericToDecimal(amount)
	transfer.CreatedAt = createdAt.Time

	return &transfer, nil
}

// Delete removes a resolved pending transfer inside an existing
// transaction.
func (r *PendingTransferRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM pending_transfers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransferNotFound
	}

	return nil
}
