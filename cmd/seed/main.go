// Command seed creates demo profiles and prints an access token for each.
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"quickpay/internal/config"
	"quickpay/internal/domain/payment"
	"quickpay/internal/logging"
	"quickpay/internal/models"
	"quickpay/internal/repositories"
	"quickpay/internal/utils"
)

const tokenTTL = 24 * time.Hour

type demoProfile struct {
	name    string
	email   string
	upi     string
	account string
	ifsc    string
	balance string
}

var demoProfiles = []demoProfile{
	{name: "Alice Demo", email: "alice@quickpay.dev", upi: "alice@okbank", account: "000111222333", ifsc: "QPAY0000001", balance: "1000.00"},
	{name: "Bob Demo", email: "bob@quickpay.dev", upi: "bob@okbank", balance: "250.00"},
	{name: "Carol Demo", email: "carol@quickpay.dev", balance: "0.00"},
}

func main() {
	config.LoadEnv()
	cfg := config.Load()
	logging.Configure(cfg.LogLevel, false)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := repositories.InitDB(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	profiles := repositories.NewProfileRepository(db)
	for _, d := range demoProfiles {
		existing, err := profiles.Lookup(ctx, payment.FieldEmail, d.email)
		if err != nil {
			log.WithError(err).Fatal("failed to look up demo profile")
		}

		userID := ""
		if existing != nil {
			log.WithField("email", d.email).Info("demo profile already exists")
			userID = existing.UserID
		} else {
			p, err := newProfile(d)
			if err != nil {
				log.WithError(err).Fatal("failed to build demo profile")
			}
			if err := profiles.Create(ctx, p); err != nil {
				log.WithError(err).Fatal("failed to create demo profile")
			}
			userID = p.UserID
		}

		token, err := utils.GenerateToken(cfg.JWTSecret, userID, d.email, tokenTTL)
		if err != nil {
			log.WithError(err).Fatal("failed to sign token")
		}
		fmt.Printf("%s\t%s\t%s\n", d.email, userID, token)
	}
}

func newProfile(d demoProfile) (*models.Profile, error) {
	walletID, err := utils.GenerateWalletID()
	if err != nil {
		return nil, err
	}
	balance, err := decimal.NewFromString(d.balance)
	if err != nil {
		return nil, errors.New("invalid demo balance " + d.balance)
	}

	p := &models.Profile{
		UserID:      uuid.NewString(),
		DisplayName: d.name,
		Email:       optional(d.email),
		UPIID:       optional(d.upi),
		WalletID:    walletID,
		BankAccount: d.account,
		BankIFSC:    d.ifsc,
		Balance:     balance,
	}
	return p, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
