package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrPinMismatch         = errors.New("pin mismatch")
	ErrBelowMinimum        = errors.New("amount below minimum")
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSameAccount обе стороны денежной операции - один и тот же счет. Такие операции
	// отклоняются: обе дельты баланса считались бы от одного снимка и затирали друг друга.
	ErrSameAccount = errors.New("same account on both sides")
	// ErrRequestProcessed возвращается при попытке одобрить несуществующую либо уже
	// обработанную заявку. Повторное одобрение всегда получает эту же ошибку.
	ErrRequestProcessed = errors.New("invalid or already processed request")
)
