package mocks

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

// MockAssetRepository is a mock implementation of AssetRepository.
type MockAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*domain.FixedAsset

	CreateFunc             func(ctx context.Context, asset *domain.FixedAsset) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.FixedAsset, error)
	GetByIDForUpdateFunc   func(ctx context.Context, tx usecase.Transaction, id string) (*domain.FixedAsset, error)
	ListFunc               func(ctx context.Context, limit, offset int) ([]*domain.FixedAsset, error)
	UpdateNetBookValueFunc func(ctx context.Context, tx usecase.Transaction, id string, nbv decimal.Decimal, version int64, updatedAt time.Time) error
	RecordDisposalFunc     func(ctx context.Context, tx usecase.Transaction, id string, disposedAt time.Time, price decimal.Decimal, version int64, updatedAt time.Time) error
}

func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{
		assets: make(map[string]*domain.FixedAsset),
	}
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.FixedAsset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *asset
	m.assets[asset.ID] = &stored
	return nil
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id string) (*domain.FixedAsset, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.assets[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrAssetNotFound
}

func (m *MockAssetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.FixedAsset, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAssetRepository) List(ctx context.Context, limit, offset int) ([]*domain.FixedAsset, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	assets := make([]*domain.FixedAsset, 0, len(m.assets))
	for _, a := range m.assets {
		clone := *a
		assets = append(assets, &clone)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return page(assets, limit, offset), nil
}

func (m *MockAssetRepository) UpdateNetBookValue(ctx context.Context, tx usecase.Transaction, id string, nbv decimal.Decimal, version int64, updatedAt time.Time) error {
	if m.UpdateNetBookValueFunc != nil {
		return m.UpdateNetBookValueFunc(ctx, tx, id, nbv, version, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return domain.ErrAssetNotFound
	}
	if a.Version != version {
		return domain.ErrConcurrencyConflict
	}
	a.NetBookValue = nbv
	a.Version++
	a.UpdatedAt = updatedAt
	return nil
}

func (m *MockAssetRepository) RecordDisposal(ctx context.Context, tx usecase.Transaction, id string, disposedAt time.Time, price decimal.Decimal, version int64, updatedAt time.Time) error {
	if m.RecordDisposalFunc != nil {
		return m.RecordDisposalFunc(ctx, tx, id, disposedAt, price, version, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return domain.ErrAssetNotFound
	}
	if a.Version != version {
		return domain.ErrConcurrencyConflict
	}
	a.DisposalDate = &disposedAt
	a.DisposalPrice = &price
	a.Version++
	a.UpdatedAt = updatedAt
	return nil
}

// MockDepreciationRepository is a mock implementation of DepreciationRepository.
type MockDepreciationRepository struct {
	mu      sync.RWMutex
	entries []*domain.DepreciationEntry

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, entry *domain.DepreciationEntry) error
	ListByAssetFunc   func(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error)
	ListByAssetTxFunc func(ctx context.Context, tx usecase.Transaction, assetID string) ([]*domain.DepreciationEntry, error)
}

func NewMockDepreciationRepository() *MockDepreciationRepository {
	return &MockDepreciationRepository{}
}

func (m *MockDepreciationRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.DepreciationEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.AssetID == entry.AssetID && e.FiscalYear == entry.FiscalYear {
			return domain.ErrDepreciationAlreadyPosted
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockDepreciationRepository) ListByAsset(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error) {
	if m.ListByAssetFunc != nil {
		return m.ListByAssetFunc(ctx, assetID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*domain.DepreciationEntry, 0)
	for _, e := range m.entries {
		if e.AssetID == assetID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].FiscalYear < entries[j].FiscalYear })
	return entries, nil
}

func (m *MockDepreciationRepository) ListByAssetTx(ctx context.Context, tx usecase.Transaction, assetID string) ([]*domain.DepreciationEntry, error) {
	if m.ListByAssetTxFunc != nil {
		return m.ListByAssetTxFunc(ctx, tx, assetID)
	}
	return m.ListByAsset(ctx, assetID)
}

// MockBankAccountRepository is a mock implementation of BankAccountRepository.
type MockBankAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.BankAccount

	CreateFunc            func(ctx context.Context, account *domain.BankAccount) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.BankAccount, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.BankAccount, error)
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.BankAccount, error)
	UpdateFunc            func(ctx context.Context, account *domain.BankAccount) error
	DeleteFunc            func(ctx context.Context, id string) error
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error
	GlobalStatsFunc       func(ctx context.Context) (*domain.BankStats, error)
}

func NewMockBankAccountRepository() *MockBankAccountRepository {
	return &MockBankAccountRepository{
		accounts: make(map[string]*domain.BankAccount),
	}
}

func (m *MockBankAccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *account
	m.accounts[account.ID] = &stored
	return nil
}

func (m *MockBankAccountRepository) GetByID(ctx context.Context, id string) (*domain.BankAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrBankAccountNotFound
}

func (m *MockBankAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.BankAccount, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.BankAccount
	for _, id := range ids {
		if a, ok := m.accounts[id]; ok {
			clone := *a
			accounts = append(accounts, &clone)
		}
	}
	return accounts, nil
}

func (m *MockBankAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.BankAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.BankAccount, 0, len(m.accounts))
	for _, a := range m.accounts {
		clone := *a
		accounts = append(accounts, &clone)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return page(accounts, limit, offset), nil
}

func (m *MockBankAccountRepository) Update(ctx context.Context, account *domain.BankAccount) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[account.ID]
	if !ok {
		return domain.ErrBankAccountNotFound
	}
	a.Name = account.Name
	a.Bank = account.Bank
	a.AccountNumber = account.AccountNumber
	a.IBAN = account.IBAN
	a.Active = account.Active
	a.UpdatedAt = account.UpdatedAt
	return nil
}

func (m *MockBankAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrBankAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockBankAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, version, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrBankAccountNotFound
	}
	if a.Version != version {
		return domain.ErrConcurrencyConflict
	}
	a.CurrentBalance = balance
	a.Version++
	a.UpdatedAt = updatedAt
	return nil
}

func (m *MockBankAccountRepository) GlobalStats(ctx context.Context) (*domain.BankStats, error) {
	if m.GlobalStatsFunc != nil {
		return m.GlobalStatsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &domain.BankStats{}
	for _, a := range m.accounts {
		stats.AccountCount++
		stats.TotalBalance = stats.TotalBalance.Add(a.CurrentBalance)
	}
	return stats, nil
}

// MockBankTransactionRepository is a mock implementation of BankTransactionRepository.
type MockBankTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.BankTransaction

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, t *domain.BankTransaction) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.BankTransaction, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.BankTransaction, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, t *domain.BankTransaction) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id string) error
	ListFunc             func(ctx context.Context, filter domain.BankTransactionFilter) ([]*domain.BankTransaction, error)
	SetReconciledFunc    func(ctx context.Context, id string, reconciled bool, at *time.Time) error
	StatsFunc            func(ctx context.Context, accountID string) (*domain.BankAccountStats, error)
}

func NewMockBankTransactionRepository() *MockBankTransactionRepository {
	return &MockBankTransactionRepository{
		transactions: make(map[string]*domain.BankTransaction),
	}
}

func (m *MockBankTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.BankTransaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *t
	m.transactions[t.ID] = &stored
	return nil
}

func (m *MockBankTransactionRepository) GetByID(ctx context.Context, id string) (*domain.BankTransaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockBankTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.BankTransaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockBankTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, t *domain.BankTransaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[t.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	stored := *t
	m.transactions[t.ID] = &stored
	return nil
}

func (m *MockBankTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MockBankTransactionRepository) List(ctx context.Context, filter domain.BankTransactionFilter) ([]*domain.BankTransaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	transactions := make([]*domain.BankTransaction, 0)
	for _, t := range m.transactions {
		if filter.AccountID != "" && t.AccountID != filter.AccountID {
			continue
		}
		if filter.UnreconciledOnly && t.Reconciled {
			continue
		}
		if filter.From != nil && t.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && t.Date.After(*filter.To) {
			continue
		}
		clone := *t
		transactions = append(transactions, &clone)
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].Date.After(transactions[j].Date) })
	return page(transactions, filter.Limit, filter.Offset), nil
}

func (m *MockBankTransactionRepository) SetReconciled(ctx context.Context, id string, reconciled bool, at *time.Time) error {
	if m.SetReconciledFunc != nil {
		return m.SetReconciledFunc(ctx, id, reconciled, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.Reconciled = reconciled
	t.ReconciledAt = at
	return nil
}

func (m *MockBankTransactionRepository) Stats(ctx context.Context, accountID string) (*domain.BankAccountStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &domain.BankAccountStats{AccountID: accountID}
	for _, t := range m.transactions {
		if t.AccountID != accountID {
			continue
		}
		stats.TotalCredits = stats.TotalCredits.Add(t.Credit)
		stats.TotalDebits = stats.TotalDebits.Add(t.Debit)
		stats.TransactionCount++
		if t.Reconciled {
			stats.ReconciledCount++
		} else {
			stats.UnreconciledAmount = stats.UnreconciledAmount.Add(t.Impact())
		}
	}
	return stats, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	GetByIDsFunc        func(ctx context.Context, ids []string) ([]*domain.LedgerEntry, error)
	ListFunc            func(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error)
	SetLetteringFunc    func(ctx context.Context, ids []string, code *string) (int64, error)
	PieceTotalsFunc     func(ctx context.Context) ([]domain.PieceImbalance, error)
	AccountBalancesFunc func(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountBalance, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

// Entries returns every stored entry in insertion order.
func (m *MockLedgerRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.LedgerEntry(nil), m.entries...)
}

func (m *MockLedgerRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockLedgerRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.LedgerEntry, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		for _, id := range ids {
			if e.ID == id {
				entries = append(entries, e)
				break
			}
		}
	}
	return entries, nil
}

func (m *MockLedgerRepository) List(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*domain.LedgerEntry, 0)
	for _, e := range m.entries {
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		if filter.Journal != nil && e.Journal != *filter.Journal {
			continue
		}
		if filter.AccountCode != "" && !strings.HasPrefix(e.AccountCode, filter.AccountCode) {
			continue
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return page(entries, filter.Limit, filter.Offset), nil
}

func (m *MockLedgerRepository) SetLettering(ctx context.Context, ids []string, code *string) (int64, error) {
	if m.SetLetteringFunc != nil {
		return m.SetLetteringFunc(ctx, ids, code)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, e := range m.entries {
		for _, id := range ids {
			if e.ID == id {
				e.Lettering = code
				n++
				break
			}
		}
	}
	return n, nil
}

func (m *MockLedgerRepository) PieceTotals(ctx context.Context) ([]domain.PieceImbalance, error) {
	if m.PieceTotalsFunc != nil {
		return m.PieceTotalsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	index := make(map[string]int)
	var pieces []domain.PieceImbalance
	for _, e := range m.entries {
		key := string(e.Journal) + "/" + e.PieceNumber
		i, ok := index[key]
		if !ok {
			i = len(pieces)
			index[key] = i
			pieces = append(pieces, domain.PieceImbalance{PieceNumber: e.PieceNumber, Journal: e.Journal})
		}
		pieces[i].TotalDebit = pieces[i].TotalDebit.Add(e.Debit)
		pieces[i].TotalCredit = pieces[i].TotalCredit.Add(e.Credit)
	}
	return pieces, nil
}

func (m *MockLedgerRepository) AccountBalances(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountBalance, error) {
	if m.AccountBalancesFunc != nil {
		return m.AccountBalancesFunc(ctx, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	index := make(map[string]int)
	var balances []domain.AccountBalance
	for _, e := range m.entries {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if e.Date.After(to) {
			continue
		}
		i, ok := index[e.AccountCode]
		if !ok {
			i = len(balances)
			index[e.AccountCode] = i
			balances = append(balances, domain.AccountBalance{AccountCode: e.AccountCode})
		}
		balances[i].TotalDebit = balances[i].TotalDebit.Add(e.Debit)
		balances[i].TotalCredit = balances[i].TotalCredit.Add(e.Credit)
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].AccountCode < balances[j].AccountCode })
	return balances, nil
}

// MockChartRepository is a mock implementation of ChartRepository.
type MockChartRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.ChartAccount

	CreateFunc    func(ctx context.Context, account *domain.ChartAccount) error
	GetByCodeFunc func(ctx context.Context, code string) (*domain.ChartAccount, error)
	ListFunc      func(ctx context.Context) ([]*domain.ChartAccount, error)
}

// NewMockChartRepository returns a chart seeded with accounts.
func NewMockChartRepository(accounts ...*domain.ChartAccount) *MockChartRepository {
	m := &MockChartRepository{
		accounts: make(map[string]*domain.ChartAccount),
	}
	for _, a := range accounts {
		m.accounts[a.Code] = a
	}
	return m
}

func (m *MockChartRepository) Create(ctx context.Context, account *domain.ChartAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.Code]; ok {
		return domain.ErrChartAccountExists
	}
	m.accounts[account.Code] = account
	return nil
}

func (m *MockChartRepository) GetByCode(ctx context.Context, code string) (*domain.ChartAccount, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[code]; ok {
		return a, nil
	}
	return nil, domain.ErrChartAccountNotFound
}

func (m *MockChartRepository) List(ctx context.Context) ([]*domain.ChartAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.ChartAccount, 0, len(m.accounts))
	for _, a := range m.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, invoice *domain.Invoice) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Invoice, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, invoice *domain.Invoice) error
	UpdatePaymentFunc    func(ctx context.Context, tx usecase.Transaction, invoice *domain.Invoice) error
	DeleteFunc           func(ctx context.Context, id string) error
	ListFunc             func(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error)
	ListOverdueFunc      func(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error)
	StatsFunc            func(ctx context.Context, asOf time.Time) (*domain.InvoiceStats, error)
	MaxSequenceFunc      func(ctx context.Context, prefix string) (int, error)
	VATTotalsFunc        func(ctx context.Context, period domain.Period) (decimal.Decimal, decimal.Decimal, error)
	CreatePaymentFunc    func(ctx context.Context, tx usecase.Transaction, payment *domain.InvoicePayment) error
	ListSalePaymentsFunc func(ctx context.Context, year int) ([]domain.SalePayment, error)

	payments []*domain.InvoicePayment
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices: make(map[string]*domain.Invoice),
	}
}

func (m *MockInvoiceRepository) Create(ctx context.Context, tx usecase.Transaction, invoice *domain.Invoice) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, invoice)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.invoices {
		if inv.Number == invoice.Number {
			return domain.ErrInvoiceNumberTaken
		}
	}
	stored := *invoice
	m.invoices[invoice.ID] = &stored
	return nil
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inv, ok := m.invoices[id]; ok {
		clone := *inv
		return &clone, nil
	}
	return nil, domain.ErrInvoiceNotFound
}

func (m *MockInvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, tx usecase.Transaction, invoice *domain.Invoice) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, invoice)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.invoices[invoice.ID]; !ok {
		return domain.ErrInvoiceNotFound
	}
	stored := *invoice
	m.invoices[invoice.ID] = &stored
	return nil
}

func (m *MockInvoiceRepository) UpdatePayment(ctx context.Context, tx usecase.Transaction, invoice *domain.Invoice) error {
	if m.UpdatePaymentFunc != nil {
		return m.UpdatePaymentFunc(ctx, tx, invoice)
	}
	return m.Update(ctx, tx, invoice)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.invoices[id]; !ok {
		return domain.ErrInvoiceNotFound
	}
	delete(m.invoices, id)
	return nil
}

func (m *MockInvoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	invoices := make([]*domain.Invoice, 0)
	for _, inv := range m.invoices {
		if filter.Type != nil && inv.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && inv.Status != *filter.Status {
			continue
		}
		if filter.From != nil && inv.IssueDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && inv.IssueDate.After(*filter.To) {
			continue
		}
		if filter.ClientID != "" && (inv.ClientID == nil || *inv.ClientID != filter.ClientID) {
			continue
		}
		if filter.Search != "" {
			haystack := strings.ToLower(inv.Number + " " + inv.Counterparty + " " + inv.Notes)
			if !strings.Contains(haystack, strings.ToLower(filter.Search)) {
				continue
			}
		}
		clone := *inv
		invoices = append(invoices, &clone)
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].IssueDate.After(invoices[j].IssueDate) })
	return page(invoices, filter.Limit, filter.Offset), nil
}

func (m *MockInvoiceRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error) {
	if m.ListOverdueFunc != nil {
		return m.ListOverdueFunc(ctx, asOf)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	invoices := make([]*domain.Invoice, 0)
	for _, inv := range m.invoices {
		if inv.Status != domain.StatusPaid && inv.DueDate != nil && inv.DueDate.Before(asOf) {
			clone := *inv
			invoices = append(invoices, &clone)
		}
	}
	return invoices, nil
}

func (m *MockInvoiceRepository) Stats(ctx context.Context, asOf time.Time) (*domain.InvoiceStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, asOf)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &domain.InvoiceStats{}
	for _, inv := range m.invoices {
		if inv.Type == domain.InvoiceSale {
			stats.TotalSales = stats.TotalSales.Add(inv.AmountInclTax)
			stats.SalesCount++
		} else {
			stats.TotalPurchases = stats.TotalPurchases.Add(inv.AmountInclTax)
		}
		if inv.Status != domain.StatusPaid {
			stats.TotalUnpaid = stats.TotalUnpaid.Add(inv.RemainingAmount)
			stats.UnpaidCount++
			if inv.DueDate != nil && inv.DueDate.Before(asOf) {
				stats.OverdueCount++
			}
		}
	}
	return stats, nil
}

func (m *MockInvoiceRepository) MaxSequence(ctx context.Context, prefix string) (int, error) {
	if m.MaxSequenceFunc != nil {
		return m.MaxSequenceFunc(ctx, prefix)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	highest := 0
	for _, inv := range m.invoices {
		if !strings.HasPrefix(inv.Number, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(inv.Number, prefix)); err == nil && n > highest {
			highest = n
		}
	}
	return highest, nil
}

func (m *MockInvoiceRepository) VATTotals(ctx context.Context, period domain.Period) (decimal.Decimal, decimal.Decimal, error) {
	if m.VATTotalsFunc != nil {
		return m.VATTotalsFunc(ctx, period)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	collected, deductible := decimal.Zero, decimal.Zero
	for _, inv := range m.invoices {
		if inv.IssueDate.Before(period.From) || inv.IssueDate.After(period.To) {
			continue
		}
		if inv.Type == domain.InvoiceSale {
			collected = collected.Add(inv.VATAmount)
		} else {
			deductible = deductible.Add(inv.VATAmount)
		}
	}
	return collected, deductible, nil
}

func (m *MockInvoiceRepository) CreatePayment(ctx context.Context, tx usecase.Transaction, payment *domain.InvoicePayment) error {
	if m.CreatePaymentFunc != nil {
		return m.CreatePaymentFunc(ctx, tx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.invoices[payment.InvoiceID]; !ok {
		return domain.ErrInvoiceNotFound
	}
	stored := *payment
	m.payments = append(m.payments, &stored)
	return nil
}

// Payments returns the recorded payments in insertion order.
func (m *MockInvoiceRepository) Payments() []*domain.InvoicePayment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.InvoicePayment(nil), m.payments...)
}

func (m *MockInvoiceRepository) ListSalePayments(ctx context.Context, year int) ([]domain.SalePayment, error) {
	if m.ListSalePaymentsFunc != nil {
		return m.ListSalePaymentsFunc(ctx, year)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	payments := make([]domain.SalePayment, 0)
	for _, p := range m.payments {
		inv, ok := m.invoices[p.InvoiceID]
		if !ok || inv.Type != domain.InvoiceSale {
			continue
		}
		if year != 0 && p.Date.Year() != year {
			continue
		}
		payments = append(payments, domain.SalePayment{
			InvoiceID:     inv.ID,
			Counterparty:  inv.Counterparty,
			Date:          p.Date,
			Amount:        p.Amount,
			AmountExclTax: inv.AmountExclTax,
			VATAmount:     inv.VATAmount,
			AmountInclTax: inv.AmountInclTax,
		})
	}
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Date.Before(payments[j].Date) })
	return payments, nil
}

// MockClientRepository is a mock implementation of ClientRepository.
type MockClientRepository struct {
	mu       sync.RWMutex
	clients  map[string]*domain.Client
	invoices *MockInvoiceRepository

	CreateFunc        func(ctx context.Context, client *domain.Client) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Client, error)
	ListFunc          func(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error)
	UpdateFunc        func(ctx context.Context, client *domain.Client) error
	ToggleActiveFunc  func(ctx context.Context, id string, at time.Time) (bool, error)
	DeleteFunc        func(ctx context.Context, id string) error
	CountInvoicesFunc func(ctx context.Context, id string) (int64, error)
}

// NewMockClientRepository creates a client mock. When invoices is not nil,
// deletes are refused for clients that still carry invoices.
func NewMockClientRepository(invoices *MockInvoiceRepository) *MockClientRepository {
	return &MockClientRepository{
		clients:  make(map[string]*domain.Client),
		invoices: invoices,
	}
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, client)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSIRET(client); err != nil {
		return err
	}
	stored := *client
	m.clients[client.ID] = &stored
	return nil
}

func (m *MockClientRepository) checkSIRET(client *domain.Client) error {
	if client.SIRET == "" {
		return nil
	}
	for id, c := range m.clients {
		if id != client.ID && c.SIRET == client.SIRET {
			return domain.ErrClientSIRETTaken
		}
	}
	return nil
}

func (m *MockClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.clients[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrClientNotFound
}

func (m *MockClientRepository) List(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	clients := make([]*domain.Client, 0, len(m.clients))
	for _, c := range m.clients {
		if filter.ActiveOnly && !c.Active {
			continue
		}
		clone := *c
		clients = append(clients, &clone)
	}
	sort.Slice(clients, func(i, j int) bool {
		if clients[i].Name != clients[j].Name {
			return clients[i].Name < clients[j].Name
		}
		return clients[i].ID < clients[j].ID
	})
	return page(clients, filter.Limit, filter.Offset), nil
}

func (m *MockClientRepository) Update(ctx context.Context, client *domain.Client) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, client)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[client.ID]; !ok {
		return domain.ErrClientNotFound
	}
	if err := m.checkSIRET(client); err != nil {
		return err
	}
	stored := *client
	m.clients[client.ID] = &stored
	return nil
}

func (m *MockClientRepository) ToggleActive(ctx context.Context, id string, at time.Time) (bool, error) {
	if m.ToggleActiveFunc != nil {
		return m.ToggleActiveFunc(ctx, id, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return false, domain.ErrClientNotFound
	}
	c.Active = !c.Active
	c.UpdatedAt = at
	return c.Active, nil
}

func (m *MockClientRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	if n, _ := m.CountInvoices(ctx, id); n > 0 {
		return domain.ErrClientHasInvoices
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(m.clients, id)
	return nil
}

func (m *MockClientRepository) CountInvoices(ctx context.Context, id string) (int64, error) {
	if m.CountInvoicesFunc != nil {
		return m.CountInvoicesFunc(ctx, id)
	}
	if m.invoices == nil {
		return 0, nil
	}
	invoices, err := m.invoices.List(ctx, domain.InvoiceFilter{ClientID: id})
	if err != nil {
		return 0, err
	}
	return int64(len(invoices)), nil
}

// MockCompanyRepository is a mock implementation of CompanyRepository.
type MockCompanyRepository struct {
	mu      sync.RWMutex
	company *domain.Company

	GetFunc  func(ctx context.Context) (*domain.Company, error)
	SaveFunc func(ctx context.Context, company *domain.Company) error
}

func NewMockCompanyRepository() *MockCompanyRepository {
	return &MockCompanyRepository{}
}

func (m *MockCompanyRepository) Get(ctx context.Context) (*domain.Company, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *m.company
	return &clone, nil
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *domain.Company) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, company)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *company
	m.company = &stored
	return nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc   func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
	ListFunc     func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if log.ID == "" {
		log.ID = fmt.Sprintf("audit-%d", len(m.logs)+1)
	}
	stored := *log
	m.logs = append(m.logs, &stored)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []*domain.AuditLog
	for i := len(m.logs) - 1; i >= 0; i-- {
		l := m.logs[i]
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.ResourceType != "" && l.ResourceType != filter.ResourceType {
			continue
		}
		if filter.ResourceID != "" && l.ResourceID != filter.ResourceID {
			continue
		}
		if filter.StartDate != nil && l.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && l.CreatedAt.After(*filter.EndDate) {
			continue
		}
		clone := *l
		logs = append(logs, &clone)
	}
	return page(logs, filter.Limit, filter.Offset), nil
}

// Logs returns every stored entry in insertion order.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.AuditLog, len(m.logs))
	copy(out, m.logs)
	return out
}

// MockVATRepository is a mock implementation of VATRepository.
type MockVATRepository struct {
	mu           sync.RWMutex
	declarations []*domain.VATDeclaration

	CreateFunc func(ctx context.Context, declaration *domain.VATDeclaration) error
	ListFunc   func(ctx context.Context, limit, offset int) ([]*domain.VATDeclaration, error)
}

func NewMockVATRepository() *MockVATRepository {
	return &MockVATRepository{}
}

func (m *MockVATRepository) Create(ctx context.Context, declaration *domain.VATDeclaration) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, declaration)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.declarations = append(m.declarations, declaration)
	return nil
}

func (m *MockVATRepository) List(ctx context.Context, limit, offset int) ([]*domain.VATDeclaration, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	declarations := append([]*domain.VATDeclaration(nil), m.declarations...)
	sort.Slice(declarations, func(i, j int) bool { return declarations[i].Period.From.After(declarations[j].Period.From) })
	return page(declarations, limit, offset), nil
}

// MockJustificatifRepository is a mock implementation of JustificatifRepository.
type MockJustificatifRepository struct {
	mu    sync.RWMutex
	files map[string]*domain.Justificatif

	CreateFunc  func(ctx context.Context, j *domain.Justificatif) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Justificatif, error)
	ListFunc    func(ctx context.Context, filter domain.JustificatifFilter) ([]*domain.Justificatif, error)
	ArchiveFunc func(ctx context.Context, id string, at time.Time) error
	DeleteFunc  func(ctx context.Context, id string) error
}

func NewMockJustificatifRepository() *MockJustificatifRepository {
	return &MockJustificatifRepository{
		files: make(map[string]*domain.Justificatif),
	}
}

func (m *MockJustificatifRepository) Create(ctx context.Context, j *domain.Justificatif) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, j)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *j
	m.files[j.ID] = &stored
	return nil
}

func (m *MockJustificatifRepository) GetByID(ctx context.Context, id string) (*domain.Justificatif, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j, ok := m.files[id]; ok {
		clone := *j
		return &clone, nil
	}
	return nil, domain.ErrJustificatifNotFound
}

func (m *MockJustificatifRepository) List(ctx context.Context, filter domain.JustificatifFilter) ([]*domain.Justificatif, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	files := make([]*domain.Justificatif, 0)
	for _, j := range m.files {
		if filter.InvoiceID != nil && (j.InvoiceID == nil || *j.InvoiceID != *filter.InvoiceID) {
			continue
		}
		if filter.TransactionID != nil && (j.TransactionID == nil || *j.TransactionID != *filter.TransactionID) {
			continue
		}
		if filter.Archived != nil && j.Archived != *filter.Archived {
			continue
		}
		clone := *j
		files = append(files, &clone)
	}
	sort.Slice(files, func(i, k int) bool { return files[i].ID < files[k].ID })
	return page(files, filter.Limit, filter.Offset), nil
}

func (m *MockJustificatifRepository) Archive(ctx context.Context, id string, at time.Time) error {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, id, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.files[id]
	if !ok {
		return domain.ErrJustificatifNotFound
	}
	j.Archived = true
	j.ArchivedAt = &at
	j.UpdatedAt = at
	return nil
}

func (m *MockJustificatifRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[id]; !ok {
		return domain.ErrJustificatifNotFound
	}
	delete(m.files, id)
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrier is a mock implementation of Retrier. By default the operation
// runs once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%03d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, usecase.ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len returns the number of stored keys.
func (m *MockCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	ReleaseFunc     func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Get returns the stored value for key.
func (m *MockIdempotencyStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
