package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quickpay/internal/domain/payment"
	"quickpay/internal/models"
)

// Decline reasons returned to the payer verbatim.
const (
	ReasonRecipientNotFound   = "Recipient not found"
	ReasonSelfTransfer        = "Cannot send money to yourself"
	ReasonInsufficientBalance = "Insufficient balance"
	ReasonSenderNotFound      = "Sender account not found"
	ReasonKeyReused           = "Idempotency key already used"
)

var (
	ErrMalformedTransfer = errors.New("transfer request needs one recipient field and an idempotency key")
	ErrTransferPending   = errors.New("transfer with this idempotency key has no recorded outcome")
)

// LedgerRepository settles transfers in postgres. Each call runs in one
// database transaction and is idempotent on the request key.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Transfer(ctx context.Context, req payment.TransferRequest) (*payment.LedgerResponse, error) {
	field, value, ok := req.Recipient()
	if !ok || req.RecipientFieldCount() != 1 || req.IdempotencyKey == "" {
		return nil, ErrMalformedTransfer
	}

	var resp *payment.LedgerResponse
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := models.IdempotencyRecord{Key: req.IdempotencyKey, SenderID: req.SenderID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&claim)
		if res.Error != nil {
			return fmt.Errorf("claiming idempotency key: %w", res.Error)
		}

		// A concurrent claim of the same key blocks the insert above until
		// it commits, so a lost race always finds the stored outcome.
		if res.RowsAffected == 0 {
			stored, err := storedResponse(tx, req)
			if err != nil {
				return err
			}
			resp = stored
			return nil
		}

		settled, err := settle(tx, req, field, value)
		if err != nil {
			return err
		}

		data, err := json.Marshal(settled)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.IdempotencyRecord{Key: req.IdempotencyKey}).
			Update("response", string(data)).Error; err != nil {
			return fmt.Errorf("recording transfer outcome: %w", err)
		}
		resp = settled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func storedResponse(tx *gorm.DB, req payment.TransferRequest) (*payment.LedgerResponse, error) {
	var rec models.IdempotencyRecord
	if err := tx.Where(&models.IdempotencyRecord{Key: req.IdempotencyKey}).First(&rec).Error; err != nil {
		return nil, fmt.Errorf("loading idempotency record: %w", err)
	}
	if !strings.EqualFold(rec.SenderID, req.SenderID) {
		return &payment.LedgerResponse{Success: false, Error: ReasonKeyReused}, nil
	}
	if rec.Response == nil {
		return nil, ErrTransferPending
	}

	var resp payment.LedgerResponse
	if err := json.Unmarshal([]byte(*rec.Response), &resp); err != nil {
		return nil, fmt.Errorf("decoding stored transfer outcome: %w", err)
	}
	log.WithField("idempotency_key", req.IdempotencyKey).Info("replaying stored transfer outcome")
	return &resp, nil
}

func settle(tx *gorm.DB, req payment.TransferRequest, field payment.AddressField, value string) (*payment.LedgerResponse, error) {
	recipient, err := findByField(tx, field, value)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return decline(ReasonRecipientNotFound), nil
	}
	if strings.EqualFold(recipient.UserID, req.SenderID) {
		return decline(ReasonSelfTransfer), nil
	}

	// Lock both rows in primary key order so opposite transfers between the
	// same pair cannot deadlock.
	var locked []models.Profile
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id IN ?", []string{req.SenderID, recipient.UserID}).
		Order("id ASC").
		Find(&locked).Error; err != nil {
		return nil, fmt.Errorf("locking accounts: %w", err)
	}

	var sender, payee *models.Profile
	for i := range locked {
		switch {
		case strings.EqualFold(locked[i].UserID, req.SenderID):
			sender = &locked[i]
		case locked[i].UserID == recipient.UserID:
			payee = &locked[i]
		}
	}
	if sender == nil {
		return decline(ReasonSenderNotFound), nil
	}
	if payee == nil {
		return decline(ReasonRecipientNotFound), nil
	}
	if sender.Balance.LessThan(req.Amount) {
		return decline(ReasonInsufficientBalance), nil
	}

	if err := tx.Model(&models.Profile{}).Where("id = ?", sender.ID).
		Update("balance", gorm.Expr("balance - ?", req.Amount)).Error; err != nil {
		return nil, fmt.Errorf("debiting sender: %w", err)
	}
	if err := tx.Model(&models.Profile{}).Where("id = ?", payee.ID).
		Update("balance", gorm.Expr("balance + ?", req.Amount)).Error; err != nil {
		return nil, fmt.Errorf("crediting recipient: %w", err)
	}

	rows := []models.Transaction{
		{
			ID:               uuid.New(),
			UserID:           sender.UserID,
			CounterpartyID:   payee.UserID,
			CounterpartyName: payee.DisplayName,
			Type:             models.TransactionTypeSent,
			Amount:           req.Amount,
			Method:           string(req.Method),
			Status:           models.TransactionStatusCompleted,
			IdempotencyKey:   req.IdempotencyKey,
		},
		{
			ID:               uuid.New(),
			UserID:           payee.UserID,
			CounterpartyID:   sender.UserID,
			CounterpartyName: sender.DisplayName,
			Type:             models.TransactionTypeReceived,
			Amount:           req.Amount,
			Method:           string(req.Method),
			Status:           models.TransactionStatusCompleted,
			IdempotencyKey:   req.IdempotencyKey,
		},
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("recording transactions: %w", err)
	}

	newBalance := sender.Balance.Sub(req.Amount)
	return &payment.LedgerResponse{
		Success:         true,
		RecipientName:   payee.DisplayName,
		RecipientUserID: payee.UserID,
		NewBalance:      &newBalance,
	}, nil
}

func decline(reason string) *payment.LedgerResponse {
	return &payment.LedgerResponse{Success: false, Error: reason}
}
