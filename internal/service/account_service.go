package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/transport/api/tokens"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

// SessionTokenExpire срок жизни сессионного токена.
const SessionTokenExpire = 24 * time.Hour

var (
	// registrationBonus разовый бонус при активации аккаунта.
	registrationBonus = decimal.NewFromInt(40)
	// agentRegistrationBonus дополнительный бонус для агентов, начисляется поверх registrationBonus.
	agentRegistrationBonus = decimal.NewFromInt(10000)
)

type AccountService struct {
	uow            uow.UOW
	userRepo       domain.UserRepository
	hasher         PasswordHasher
	jwtTokenSecret []byte
}

func NewAccountService(u uow.UOW, jwtTokenSecret []byte, hasher PasswordHasher) (*AccountService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[domain.UserRepository](u, uow.RepositoryName(domain.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &AccountService{
		uow:            u,
		userRepo:       userRepo,
		hasher:         hasher,
		jwtTokenSecret: jwtTokenSecret,
	}, nil
}

type RegisterArgs struct {
	Name         string
	Pin          string
	MobileNumber string
	Email        string
	Role         domain.RoleType
}

// Register создает юзера со статусом pending и нулевым балансом. Роль по умолчанию - user,
// значение вне закрытого списка ролей отклоняется.
func (s *AccountService) Register(ctx context.Context, args RegisterArgs) (*domain.User, error) {
	role := args.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("registering user: unknown role %q: %w", role, domain.ErrUnknown)
	}

	pinHash, hashErr := s.hasher.HashPassword(args.Pin)
	if hashErr != nil {
		return nil, fmt.Errorf("registering user: %s", hashErr.Error())
	}

	user, createErr := s.userRepo.Create(ctx, domain.CreateUserArgs{
		Name:         args.Name,
		PinHash:      pinHash,
		MobileNumber: args.MobileNumber,
		Email:        args.Email,
		Role:         role,
	})
	if createErr != nil {
		return nil, fmt.Errorf("registering user: %w", createErr)
	}
	return user, nil
}

type LoginArgs struct {
	EmailOrPhone string
	Pin          string
}

// Login аутентифицирует по паре email-или-телефон / ПИН. Наличие символа @ определяет,
// по какому полю искать юзера. Возвращает юзера и сессионный токен со сроком жизни
// SessionTokenExpire.
func (s *AccountService) Login(ctx context.Context, args LoginArgs) (*domain.User, string, error) {
	var user *domain.User
	var findErr error
	if strings.Contains(args.EmailOrPhone, "@") {
		user, findErr = s.userRepo.FindByEmail(ctx, args.EmailOrPhone)
	} else {
		user, findErr = s.userRepo.FindByMobile(ctx, args.EmailOrPhone)
	}
	if findErr != nil {
		return nil, "", fmt.Errorf("logging in: %w", findErr)
	}

	if !s.hasher.ComparePassword(args.Pin, user.PinHash) {
		return nil, "", fmt.Errorf("logging in: %w", domain.ErrPinMismatch)
	}

	token, tokenErr := tokens.GenerateSessionJWT(user.ID, user.Email, user.Role, SessionTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("logging in: %s", tokenErr.Error())
	}
	return user, token, nil
}

// ApproveRegistration одобряет заявку на регистрацию: начисляет бонус 40 (+10000 для агентов),
// переводит аккаунт в статус active и записывает одну bonus-транзакцию на суммарное начисление.
// Повторное одобрение и одобрение несуществующего аккаунта получают domain.ErrRequestProcessed.
func (s *AccountService) ApproveRegistration(ctx context.Context, requestID int64) (*domain.User, error) {
	var approved *domain.User
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[domain.UserRepository](tx, uow.RepositoryName(domain.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		transRepo, transRepoErr := uow.GetAs[domain.TransactionRepository](
			tx, uow.RepositoryName(domain.TransactionRepoName))
		if transRepoErr != nil {
			return transRepoErr //nolint:wrapcheck
		}

		user, findErr := userRepo.FindByIDForUpdate(c, requestID)
		if findErr != nil {
			if errors.Is(findErr, domain.ErrRecordNotFound) {
				return domain.ErrRequestProcessed
			}
			return findErr //nolint:wrapcheck
		}
		if user.Status != domain.UserStatusPending {
			return domain.ErrRequestProcessed
		}

		bonus := registrationBonus
		if user.Role == domain.RoleAgent {
			bonus = bonus.Add(agentRegistrationBonus)
		}
		newBalance := user.Balance.Add(bonus)

		if updErr := userRepo.SetStatusAndBalance(c, user.ID, domain.UserStatusActive, newBalance); updErr != nil {
			return updErr //nolint:wrapcheck
		}

		if _, transErr := transRepo.Create(c, domain.CreateTransactionArgs{
			Type:   domain.TransactionBonus,
			Amount: bonus,
			UserID: &user.ID,
		}); transErr != nil {
			return transErr //nolint:wrapcheck
		}

		user.Status = domain.UserStatusActive
		user.Balance = newBalance
		approved = user
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("approving registration %d: %w", requestID, txErr)
	}
	return approved, nil
}

// Activate переводит аккаунт в статус active и выставляет баланс ровно в 40
// (перезапись, не начисление - операция намеренно отличается от ApproveRegistration).
func (s *AccountService) Activate(ctx context.Context, userID int64) error {
	err := s.userRepo.SetStatusAndBalance(ctx, userID, domain.UserStatusActive, registrationBonus)
	if err != nil {
		return fmt.Errorf("activating user %d: %w", userID, err)
	}
	return nil
}

func (s *AccountService) SetRole(ctx context.Context, userID int64, role domain.RoleType) error {
	if !domain.ValidRole(role) {
		return fmt.Errorf("setting role of user %d: unknown role %q: %w", userID, role, domain.ErrUnknown)
	}
	if err := s.userRepo.SetRole(ctx, userID, role); err != nil {
		return fmt.Errorf("setting role of user %d: %w", userID, err)
	}
	return nil
}

func (s *AccountService) Delete(ctx context.Context, userID int64) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("deleting user %d: %w", userID, err)
	}
	return nil
}

func (s *AccountService) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}

func (s *AccountService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}

// ListUsers возвращает всех юзеров, свежие регистрации первыми.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return users, nil
}
