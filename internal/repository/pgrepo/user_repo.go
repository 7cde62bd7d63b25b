package pgrepo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

const userColumns = `id, created_at, updated_at, name, pin_hash, mobile_number, email, role, status, balance`

type UserRepository struct {
	conn uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{conn: conn}
}

// Create создает юзера со статусом pending и нулевым балансом. При конфликте
// email либо номера телефона возвращает domain.ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, args domain.CreateUserArgs) (*domain.User, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO users (name, pin_hash, mobile_number, email, role, status, balance)
		VALUES ($1, $2, $3, $4, $5, 'pending', 0)
		RETURNING `+userColumns,
		args.Name, args.PinHash, args.MobileNumber, args.Email, args.Role,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user")
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d", id)
	}
	return user, nil
}

// FindByIDForUpdate читает юзера с блокировкой строки. Только внутри транзакции.
func (r *UserRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d for update", id)
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by email %s", email)
	}
	return user, nil
}

func (r *UserRepository) FindByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE mobile_number = $1`, mobile)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by mobile %s", mobile)
	}
	return user, nil
}

// GetAll возвращает всех юзеров, отсортированных по дате регистрации по убыванию.
func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, convertErr(err, "getting all users")
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning user row")
		}
		users = append(users, *user)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "iterating user rows")
	}
	return users, nil
}

func (r *UserRepository) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	tag, err := r.conn.Exec(ctx, `UPDATE users SET balance = $2, updated_at = now() WHERE id = $1`, id, balance)
	if err != nil {
		return convertErr(err, "updating balance of user %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "updating balance of user %d", id)
	}
	return nil
}

func (r *UserRepository) SetStatusAndBalance(
	ctx context.Context,
	id int64,
	status domain.UserStatusType,
	balance decimal.Decimal,
) error {
	tag, err := r.conn.Exec(ctx,
		`UPDATE users SET status = $2, balance = $3, updated_at = now() WHERE id = $1`,
		id, status, balance,
	)
	if err != nil {
		return convertErr(err, "setting status of user %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "setting status of user %d", id)
	}
	return nil
}

func (r *UserRepository) SetRole(ctx context.Context, id int64, role domain.RoleType) error {
	tag, err := r.conn.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return convertErr(err, "setting role of user %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "setting role of user %d", id)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting user %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting user %d", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Name, &u.PinHash,
		&u.MobileNumber, &u.Email, &u.Role, &u.Status, &u.Balance,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
