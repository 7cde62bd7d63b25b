package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

const cashRequestColumns = `cr.id, cr.created_at, cr.updated_at, cr.kind, cr.user_id, u.mobile_number,
	cr.agent_id, cr.agent_mobile, cr.amount, cr.status`

type CashRequestRepository struct {
	conn uow.DBTX
}

func NewCashRequestRepository(conn uow.DBTX) *CashRequestRepository {
	return &CashRequestRepository{conn: conn}
}

func (r *CashRequestRepository) Create(
	ctx context.Context,
	args domain.CreateCashRequestArgs,
) (*domain.CashRequest, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO cash_requests (kind, user_id, requester_mobile, agent_id, agent_mobile, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING id, created_at, updated_at, kind, user_id, requester_mobile, agent_id, agent_mobile, amount, status`,
		args.Kind, args.UserID, args.RequesterMobile, args.AgentID, args.AgentMobile, args.Amount,
	)
	req, err := scanCashRequest(row)
	if err != nil {
		return nil, convertErr(err, "creating %s request", args.Kind)
	}
	return req, nil
}

// FindByIDForUpdate читает заявку с блокировкой строки. Только внутри транзакции.
// Номер телефона заявителя подтягивается свежим из users, а не из снимка на момент создания.
func (r *CashRequestRepository) FindByIDForUpdate(
	ctx context.Context,
	kind domain.RequestKindType,
	id int64,
) (*domain.CashRequest, error) {
	row := r.conn.QueryRow(ctx, `
		SELECT `+cashRequestColumns+`
		FROM cash_requests cr
		JOIN users u ON u.id = cr.user_id
		WHERE cr.id = $1 AND cr.kind = $2
		FOR UPDATE OF cr`,
		id, kind,
	)
	req, err := scanCashRequest(row)
	if err != nil {
		return nil, convertErr(err, "finding %s request %d for update", kind, id)
	}
	return req, nil
}

func (r *CashRequestRepository) MarkApproved(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx,
		`UPDATE cash_requests SET status = 'approved', updated_at = now() WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		return convertErr(err, "approving cash request %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "approving cash request %d", id)
	}
	return nil
}

func (r *CashRequestRepository) GetByUserID(
	ctx context.Context,
	kind domain.RequestKindType,
	userID int64,
) ([]domain.CashRequest, error) {
	return r.getByParticipant(ctx, kind, "cr.user_id", userID)
}

func (r *CashRequestRepository) GetByAgentID(
	ctx context.Context,
	kind domain.RequestKindType,
	agentID int64,
) ([]domain.CashRequest, error) {
	return r.getByParticipant(ctx, kind, "cr.agent_id", agentID)
}

func (r *CashRequestRepository) getByParticipant(
	ctx context.Context,
	kind domain.RequestKindType,
	column string,
	id int64,
) ([]domain.CashRequest, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+cashRequestColumns+`
		FROM cash_requests cr
		JOIN users u ON u.id = cr.user_id
		WHERE `+column+` = $1 AND cr.kind = $2
		ORDER BY cr.created_at DESC`,
		id, kind,
	)
	if err != nil {
		return nil, convertErr(err, "getting %s requests by %s %d", kind, column, id)
	}
	defer rows.Close()

	var requests []domain.CashRequest
	for rows.Next() {
		req, scanErr := scanCashRequest(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning cash request row")
		}
		requests = append(requests, *req)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "iterating cash request rows")
	}
	return requests, nil
}

func scanCashRequest(row rowScanner) (*domain.CashRequest, error) {
	var cr domain.CashRequest
	err := row.Scan(
		&cr.ID, &cr.CreatedAt, &cr.UpdatedAt, &cr.Kind, &cr.UserID, &cr.RequesterMobile,
		&cr.AgentID, &cr.AgentMobile, &cr.Amount, &cr.Status,
	)
	if err != nil {
		return nil, err
	}
	return &cr, nil
}
