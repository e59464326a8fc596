package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"aegis/internal/models"
)

// Memory repositories back STORE_DRIVER=memory and tests. Each guards its
// state with a mutex and hands out copies, never internal pointers.

type memoryFeePolicyRepository struct {
	mu     sync.RWMutex
	policy *models.FeePolicy
}

func NewMemoryFeePolicyRepository() FeePolicyRepository {
	return &memoryFeePolicyRepository{}
}

func (r *memoryFeePolicyRepository) Get(ctx context.Context) (*models.FeePolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.policy == nil {
		return nil, ErrFeePolicyNotFound
	}
	p := *r.policy
	return &p, nil
}

func (r *memoryFeePolicyRepository) Save(ctx context.Context, policy *models.FeePolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	policy.ID = models.FeePolicyID
	policy.UpdatedAt = time.Now()
	p := *policy
	r.policy = &p
	return nil
}

type memoryDevFundRepository struct {
	mu          sync.Mutex
	ledger      *models.DevFundLedger
	withdrawals []models.DevFundWithdrawal
}

func NewMemoryDevFundRepository() DevFundRepository {
	return &memoryDevFundRepository{}
}

func (r *memoryDevFundRepository) Get(ctx context.Context) (*models.DevFundLedger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ledger == nil {
		return nil, ErrLedgerNotFound
	}
	return copyLedger(r.ledger), nil
}

func (r *memoryDevFundRepository) Put(ctx context.Context, ledger *models.DevFundLedger) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ledger.ID = models.DevFundLedgerID
	r.ledger = copyLedger(ledger)
	return nil
}

func (r *memoryDevFundRepository) AddFee(ctx context.Context, amount float64) (*models.DevFundLedger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ledger == nil {
		return nil, ErrLedgerNotFound
	}
	r.ledger.Balance += amount
	r.ledger.TotalCollected += amount
	r.ledger.UpdatedAt = time.Now()
	return copyLedger(r.ledger), nil
}

func (r *memoryDevFundRepository) Withdraw(ctx context.Context, req WithdrawalRequest) (*models.DevFundLedger, *models.DevFundWithdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ledger == nil {
		return nil, nil, ErrLedgerNotFound
	}
	if req.Reference != "" {
		for _, w := range r.withdrawals {
			if w.Reference == req.Reference {
				return copyLedger(r.ledger), &w, nil
			}
		}
	}
	if req.Amount > r.ledger.Balance {
		return nil, nil, ErrInsufficientBalance
	}

	at := req.At
	r.ledger.Balance -= req.Amount
	r.ledger.LastWithdrawal = &at
	r.ledger.WithdrawalAddress = req.Address
	r.ledger.UpdatedAt = at

	record := models.DevFundWithdrawal{
		ID:           uint(len(r.withdrawals) + 1),
		Reference:    req.Reference,
		Amount:       req.Amount,
		Address:      req.Address,
		BalanceAfter: r.ledger.Balance,
		CreatedAt:    at,
	}
	r.withdrawals = append(r.withdrawals, record)
	return copyLedger(r.ledger), &record, nil
}

func (r *memoryDevFundRepository) ListWithdrawals(ctx context.Context, limit int) ([]models.DevFundWithdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.DevFundWithdrawal, 0, len(r.withdrawals))
	for i := len(r.withdrawals) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, r.withdrawals[i])
	}
	return out, nil
}

func copyLedger(l *models.DevFundLedger) *models.DevFundLedger {
	c := *l
	if l.LastWithdrawal != nil {
		t := *l.LastWithdrawal
		c.LastWithdrawal = &t
	}
	return &c
}

type memoryTransactionRepository struct {
	mu     sync.RWMutex
	nextID uint
	byTxID map[string]*models.Transaction
}

func NewMemoryTransactionRepository() TransactionRepository {
	return &memoryTransactionRepository{byTxID: make(map[string]*models.Transaction)}
}

func (r *memoryTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	tx.ID = r.nextID
	tx.CreatedAt, tx.UpdatedAt = now, now
	stored := *tx
	r.byTxID[tx.TxID] = &stored
	return nil
}

func (r *memoryTransactionRepository) GetByTxID(ctx context.Context, txID string) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.byTxID[txID]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	c := *tx
	return &c, nil
}

func (r *memoryTransactionRepository) UpdateStatus(ctx context.Context, txID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.byTxID[txID]
	if !ok {
		return ErrTransactionNotFound
	}
	tx.Status = status
	tx.UpdatedAt = time.Now()
	return nil
}

func (r *memoryTransactionRepository) GetStats(ctx context.Context) (*TransactionStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Sum in insertion order so float totals are reproducible.
	txs := make([]*models.Transaction, 0, len(r.byTxID))
	for _, tx := range r.byTxID {
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID < txs[j].ID })

	var stats TransactionStats
	for _, tx := range txs {
		if tx.Status == models.TransactionStatusFailed {
			continue
		}
		stats.TotalTransactions++
		stats.TotalVolume += tx.Amount
		stats.TotalFees += tx.Fee
	}
	if stats.TotalTransactions > 0 {
		stats.AvgFee = stats.TotalFees / float64(stats.TotalTransactions)
	}
	return &stats, nil
}

type memoryUserRepository struct {
	mu      sync.RWMutex
	nextID  uint
	byID    map[uint]*models.User
	byEmail map[string]uint
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[uint]*models.User),
		byEmail: make(map[string]uint),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return ErrEmailTaken
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	c := *user
	return &c, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}
