package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stablecart-api/internal/dto"
	"stablecart-api/internal/model"
	"stablecart-api/internal/repository"
)

// testnetFaucetGrant is the starting balance credited to testnet wallets.
var testnetFaucetGrant = decimal.NewFromInt(1000)

type WalletService interface {
	Create(ctx context.Context, userID string, req *dto.CreateWalletRequest) (*dto.WalletResponse, error)
	List(ctx context.Context, userID string) ([]*dto.WalletResponse, error)
	Deposit(ctx context.Context, userID, walletID string, amount string) (*dto.WalletResponse, error)
	Withdraw(ctx context.Context, userID, walletID string, amount string) (*dto.WalletResponse, error)
}

type walletServiceImpl struct {
	walletRepo repository.WalletRepository
}

func NewWalletService(walletRepo repository.WalletRepository) WalletService {
	return &walletServiceImpl{
		walletRepo: walletRepo,
	}
}

func (s *walletServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateWalletRequest) (*dto.WalletResponse, error) {
	if !model.ValidCurrency(req.Currency) {
		return nil, ErrInvalidCurrency
	}

	balance := decimal.Zero
	if req.Testnet {
		balance = testnetFaucetGrant
	}

	wallet := &model.Wallet{
		ID:       uuid.NewString(),
		UserID:   userID,
		Currency: req.Currency,
		Balance:  balance,
		Testnet:  req.Testnet,
	}

	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}

	return toWalletResponse(wallet), nil
}

func (s *walletServiceImpl) List(ctx context.Context, userID string) ([]*dto.WalletResponse, error) {
	wallets, err := s.walletRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}

	out := make([]*dto.WalletResponse, len(wallets))
	for i, w := range wallets {
		out[i] = toWalletResponse(w)
	}

	return out, nil
}

func (s *walletServiceImpl) owned(ctx context.Context, userID, walletID string) (*model.Wallet, error) {
	wallet, err := s.walletRepo.FindByID(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("find wallet: %w", err)
	}
	if wallet.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return wallet, nil
}

func (s *walletServiceImpl) Deposit(ctx context.Context, userID, walletID string, amount string) (*dto.WalletResponse, error) {
	amt, err := decimal.NewFromString(amount)
	if err != nil || !amt.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.owned(ctx, userID, walletID); err != nil {
		return nil, err
	}

	err = s.walletRepo.Transaction(ctx, func(tx *gorm.DB) error {
		return s.walletRepo.Credit(ctx, tx, walletID, amt)
	})
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}

	wallet, err := s.walletRepo.FindByID(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("reload wallet: %w", err)
	}

	return toWalletResponse(wallet), nil
}

func (s *walletServiceImpl) Withdraw(ctx context.Context, userID, walletID string, amount string) (*dto.WalletResponse, error) {
	amt, err := decimal.NewFromString(amount)
	if err != nil || !amt.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.owned(ctx, userID, walletID); err != nil {
		return nil, err
	}

	err = s.walletRepo.Transaction(ctx, func(tx *gorm.DB) error {
		return s.walletRepo.Debit(ctx, tx, walletID, amt)
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInsufficientBalance
		}
		return nil, fmt.Errorf("withdraw: %w", err)
	}

	wallet, err := s.walletRepo.FindByID(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("reload wallet: %w", err)
	}

	return toWalletResponse(wallet), nil
}

func toWalletResponse(w *model.Wallet) *dto.WalletResponse {
	return &dto.WalletResponse{
		ID:       w.ID,
		Currency: w.Currency,
		Balance:  w.Balance.String(),
		Testnet:  w.Testnet,
	}
}
