package service

import (
	"fmt"

	"github.com/fsdevblog/groph-pay/internal/service/psswd"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

type AppServices struct {
	AccountService  *AccountService
	TransferService *TransferService
	LedgerService   *LedgerService
}

func Factory(unitOfWork uow.UOW, jwtSecret []byte) (*AppServices, error) {
	hasher := psswd.PinHash("")

	accountService, accountServiceErr := NewAccountService(unitOfWork, jwtSecret, hasher)
	if accountServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", accountServiceErr.Error())
	}

	transferService, transferServiceErr := NewTransferService(unitOfWork, hasher)
	if transferServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", transferServiceErr.Error())
	}

	ledgerService, ledgerServiceErr := NewLedgerService(unitOfWork)
	if ledgerServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", ledgerServiceErr.Error())
	}

	return &AppServices{
		AccountService:  accountService,
		TransferService: transferService,
		LedgerService:   ledgerService,
	}, nil
}
