package domain

type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAgent RoleType = "agent"
	RoleAdmin RoleType = "admin"
)

// ValidRole проверяет что роль входит в закрытый список. Роль приходит извне
// (регистрация, админские мутации) и не должна сохраняться как произвольная строка.
func ValidRole(r RoleType) bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

type UserStatusType string

const (
	UserStatusPending UserStatusType = "pending"
	UserStatusActive  UserStatusType = "active"
)

type RequestKindType string

const (
	RequestKindCashIn  RequestKindType = "cashin"
	RequestKindCashOut RequestKindType = "cashout"
)

type RequestStatusType string

const (
	RequestStatusPending  RequestStatusType = "pending"
	RequestStatusApproved RequestStatusType = "approved"
)

type TransactionType string

const (
	TransactionBonus   TransactionType = "bonus"
	TransactionSend    TransactionType = "send"
	TransactionCashIn  TransactionType = "cashin"
	TransactionCashOut TransactionType = "cashout"
)
