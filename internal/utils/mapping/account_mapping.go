package mapping

import (
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/andeantrade/treasury_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:        d.AccountID,
		Name:             d.Name,
		HolderName:       d.HolderName,
		Kind:             string(d.Kind),
		DualCurrency:     d.DualCurrency,
		CurrencyCode:     string(d.CurrencyCode),
		BalanceUSD:       d.BalanceUSD,
		BalancePEN:       d.BalancePEN,
		InitialUSD:       d.InitialUSD,
		InitialPEN:       d.InitialPEN,
		BankName:         d.BankName,
		AccountNumber:    d.AccountNumber,
		MinimumBalance:   d.MinimumBalance,
		DefaultForMethod: d.DefaultForMethod,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:        m.AccountID,
		Name:             m.Name,
		HolderName:       m.HolderName,
		Kind:             domain.AccountKind(m.Kind),
		DualCurrency:     m.DualCurrency,
		CurrencyCode:     domain.Currency(m.CurrencyCode),
		BalanceUSD:       m.BalanceUSD,
		BalancePEN:       m.BalancePEN,
		InitialUSD:       m.InitialUSD,
		InitialPEN:       m.InitialPEN,
		BankName:         m.BankName,
		AccountNumber:    m.AccountNumber,
		MinimumBalance:   m.MinimumBalance,
		DefaultForMethod: m.DefaultForMethod,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
