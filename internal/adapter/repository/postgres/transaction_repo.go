package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pennybank/pennybank/internal/domain"
	"github.com/pennybank/pennybank/internal/usecase"
)

// TransactionRepository implements append-only transaction persistence.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction record inside an existing transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (id, account_id, amount, transaction_type, sender_id, receiver_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.AccountID,
		decimalToNumeric(txn.Amount),
		string(txn.Type),
		txn.SenderID,
		txn.ReceiverID,
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// ListByAccount returns transactions newest first, joined with the
// counterpart users' display names. A party deleted since the
// transaction was written leaves its name NULL; the domain layer
// substitutes the Unknown label.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionRecord, error) {
	query := `
		SELECT t.id, t.account_id, t.amount, t.transaction_type, t.sender_id, t.receiver_id, t.created_at,
		       s.name AS sender_name, rc.name AS receiver_name
		FROM transactions t
		LEFT JOIN users s ON s.id = t.sender_id
		LEFT JOIN users rc ON rc.id = t.receiver_id
		WHERE t.account_id = $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.TransactionRecord
	for rows.Next() {
		var (
			record       domain.TransactionRecord
			txnType      string
			amount       pgtype.Numeric
			createdAt    pgtype.Timestamptz
			senderName   *string
			receiverName *string
		)

		err := rows.Scan(
			&record.ID,
			&record.AccountID,
			&amount,
			&txnType,
			&record.SenderID,
			&record.ReceiverID,
			&createdAt,
			&senderName,
			&receiverName,
		)
		if err != nil {
			return nil, err
		}

		record.Type = domain.TransactionType(txnType)
		record.Amount = numericToDecimal(amount)
		record.CreatedAt = createdAt.Time
		if senderName != nil {
			record.SenderName = *senderName
		}
		if receiverName != nil {
			record.ReceiverName = *receiverName
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}
