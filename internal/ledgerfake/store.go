package ledgerfake

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgerror"
)

const (
	historyLimit  = 200
	merchantLimit = 50
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// Store keeps the ledger in memory. Transfer and payment txIds are unique
// within their own kind.
type Store struct {
	mu    sync.RWMutex
	clock Clock

	customers map[string]Customer
	accounts  map[string]Account
	merchants map[string]Merchant
	owns      map[string][]string

	transfers   []Movement
	pays        []Movement
	transferIDs map[string]struct{}
	payIDs      map[string]struct{}
}

func NewStore(clock Clock) *Store {
	if clock == nil {
		clock = realClock{}
	}

	return &Store{
		clock:       clock,
		customers:   make(map[string]Customer),
		accounts:    make(map[string]Account),
		merchants:   make(map[string]Merchant),
		owns:        make(map[string][]string),
		transferIDs: make(map[string]struct{}),
		payIDs:      make(map[string]struct{}),
	}
}

// PutCustomer inserts c unless a customer with the same id exists.
func (s *Store) PutCustomer(c Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[c.ID]; !ok {
		s.customers[c.ID] = c
	}
}

// PutAccount inserts a unless an account with the same number exists.
func (s *Store) PutAccount(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[a.AccountNo]; !ok {
		s.accounts[a.AccountNo] = a
	}
}

// PutMerchant inserts m unless a merchant with the same id exists.
func (s *Store) PutMerchant(m Merchant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.merchants[m.MerchantID]; !ok {
		s.merchants[m.MerchantID] = m
	}
}

// Own links customerID to accountNo. Both must exist.
func (s *Store) Own(customerID, accountNo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customerID]; !ok {
		return pkgerror.NewBusiness("customer not found", pkgerror.CodeNotFound)
	}
	if _, ok := s.accounts[accountNo]; !ok {
		return pkgerror.NewBusiness("account not found", pkgerror.CodeNotFound)
	}

	for _, owned := range s.owns[customerID] {
		if owned == accountNo {
			return nil
		}
	}
	s.owns[customerID] = append(s.owns[customerID], accountNo)

	return nil
}

// Accounts lists every account ordered by number.
func (s *Store) Accounts() []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNo < out[j].AccountNo })

	return out
}

// Balance is incoming transfers minus outgoing transfers and payments. An
// unknown account has a zero balance.
func (s *Store) Balance(accountNo string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balance := decimal.Zero
	if _, ok := s.accounts[accountNo]; !ok {
		return balance
	}

	for _, t := range s.transfers {
		if t.Target == accountNo {
			balance = balance.Add(t.Amount)
		}
		if t.From == accountNo {
			balance = balance.Sub(t.Amount)
		}
	}
	for _, p := range s.pays {
		if p.From == accountNo {
			balance = balance.Sub(p.Amount)
		}
	}

	return balance
}

// CustomerHistory returns transfers and payments made from the customer's
// accounts, newest first.
func (s *Store) CustomerHistory(customerID string) []Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := make(map[string]struct{})
	for _, acct := range s.owns[customerID] {
		owned[acct] = struct{}{}
	}
	if len(owned) == 0 {
		return []Movement{}
	}

	out := append(newestFrom(s.transfers, owned), newestFrom(s.pays, owned)...)
	sortNewestFirst(out)
	if len(out) > historyLimit {
		out = out[:historyLimit]
	}

	return out
}

// SearchMerchants matches query against merchant name or id, ignoring case.
// A blank query matches everything.
func (s *Store) SearchMerchants(query string) []Merchant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Merchant, 0)
	for _, m := range s.merchants {
		if q == "" || strings.Contains(strings.ToLower(m.Name), q) || strings.Contains(strings.ToLower(m.MerchantID), q) {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].MerchantID < out[j].MerchantID
	})
	if len(out) > merchantLimit {
		out = out[:merchantLimit]
	}

	return out
}

func (s *Store) Transfer(in TransferInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, fromOK := s.accounts[in.From]
	_, toOK := s.accounts[in.To]
	if !fromOK || !toOK {
		return pkgerror.NewBusiness("account not found", pkgerror.CodeInvalidFormat)
	}
	if _, dup := s.transferIDs[in.TxID]; dup {
		return pkgerror.NewBusiness("duplicate txId", pkgerror.CodeConflict)
	}

	s.transferIDs[in.TxID] = struct{}{}
	s.transfers = append(s.transfers, Movement{
		Kind:      KindTransfer,
		TxID:      in.TxID,
		From:      in.From,
		Target:    in.To,
		Amount:    in.Amount,
		Currency:  in.Currency,
		Channel:   in.Channel,
		CreatedAt: s.stamp(in.CreatedAt),
	})

	return nil
}

func (s *Store) Pay(in PayInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, acctOK := s.accounts[in.From]
	_, merchOK := s.merchants[in.MerchantID]
	if !acctOK || !merchOK {
		return pkgerror.NewBusiness("account or merchant not found", pkgerror.CodeInvalidFormat)
	}
	if _, dup := s.payIDs[in.TxID]; dup {
		return pkgerror.NewBusiness("duplicate txId", pkgerror.CodeConflict)
	}

	s.payIDs[in.TxID] = struct{}{}
	s.pays = append(s.pays, Movement{
		Kind:      KindPay,
		TxID:      in.TxID,
		From:      in.From,
		Target:    in.MerchantID,
		Amount:    in.Amount,
		Currency:  in.Currency,
		Channel:   in.Channel,
		CreatedAt: s.stamp(in.CreatedAt),
	})

	return nil
}

func (s *Store) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.clock.Now()
	}
	return t
}

func newestFrom(all []Movement, owned map[string]struct{}) []Movement {
	out := make([]Movement, 0)
	for _, m := range all {
		if _, ok := owned[m.From]; ok {
			out = append(out, m)
		}
	}

	sortNewestFirst(out)
	if len(out) > historyLimit {
		out = out[:historyLimit]
	}

	return out
}

func sortNewestFirst(ms []Movement) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].CreatedAt.After(ms[j].CreatedAt) })
}
