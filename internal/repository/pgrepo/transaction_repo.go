package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

const transactionColumns = `id, created_at, type, amount, fee, sender_id, recipient_id, user_id, agent_id`

type TransactionRepository struct {
	conn uow.DBTX
}

func NewTransactionRepository(conn uow.DBTX) *TransactionRepository {
	return &TransactionRepository{conn: conn}
}

func (r *TransactionRepository) Create(
	ctx context.Context,
	args domain.CreateTransactionArgs,
) (*domain.Transaction, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO transactions (type, amount, fee, sender_id, recipient_id, user_id, agent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+transactionColumns,
		args.Type, args.Amount, args.Fee, args.SenderID, args.RecipientID, args.UserID, args.AgentID,
	)
	trans, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating %s transaction", args.Type)
	}
	return trans, nil
}

// GetRecentForUser возвращает последние limit транзакций, где юзер участвует любой из
// сторон. Записи cashin, где юзер сам является заявителем, исключаются: свой же запрос
// на пополнение не должен выглядеть транзакцией в истории.
func (r *TransactionRepository) GetRecentForUser(
	ctx context.Context,
	userID int64,
	limit uint,
) ([]domain.Transaction, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE (sender_id = $1 OR recipient_id = $1 OR user_id = $1 OR agent_id = $1)
		  AND NOT (type = 'cashin' AND user_id = $1)
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, convertErr(err, "getting transactions of user %d", userID)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		trans, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning transaction row")
		}
		transactions = append(transactions, *trans)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "iterating transaction rows")
	}
	return transactions, nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.ID, &t.CreatedAt, &t.Type, &t.Amount, &t.Fee,
		&t.SenderID, &t.RecipientID, &t.UserID, &t.AgentID,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
