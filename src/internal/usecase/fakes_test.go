package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/gateway/vtu"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/repository"

	"github.com/go-sql-driver/mysql"
	"github.com/hibiken/asynq"
)

type fakeProfileStore struct {
	profiles    map[string]*entity.Profile
	debitErr    error
	creditErr   error
	creditHook  func()
	signups     int
	withFunding int
}

func newFakeProfileStore(profiles ...*entity.Profile) *fakeProfileStore {
	store := &fakeProfileStore{profiles: map[string]*entity.Profile{}}
	for _, p := range profiles {
		store.profiles[p.ID] = p
	}
	return store
}

func (s *fakeProfileStore) FindByID(_ context.Context, id string) (*entity.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %s not found", id)
	}
	return p, nil
}

func (s *fakeProfileStore) FindByReferralCode(_ context.Context, code string) (*entity.Profile, error) {
	for _, p := range s.profiles {
		if p.ReferralCode == code {
			return p, nil
		}
	}
	return nil, fmt.Errorf("referral code %s not found", code)
}

func (s *fakeProfileStore) DebitBalance(_ context.Context, id string, amount float64) (bool, error) {
	if s.debitErr != nil {
		return false, s.debitErr
	}
	p, ok := s.profiles[id]
	if !ok || p.WalletBalance < amount {
		return false, nil
	}
	p.WalletBalance -= amount
	return true, nil
}

func (s *fakeProfileStore) CreditBalance(_ context.Context, id string, amount float64) error {
	if s.creditErr != nil {
		return s.creditErr
	}
	// creditHook simulates another movement landing while this credit runs.
	if s.creditHook != nil {
		s.creditHook()
	}
	p, ok := s.profiles[id]
	if !ok {
		return fmt.Errorf("profile %s not found", id)
	}
	p.WalletBalance += amount
	return nil
}

func (s *fakeProfileStore) SetReferredBy(_ context.Context, id, referrerID string) (bool, error) {
	p, ok := s.profiles[id]
	if !ok {
		return false, fmt.Errorf("profile %s not found", id)
	}
	if p.ReferredBy.Valid {
		return false, nil
	}
	p.ReferredBy.String = referrerID
	p.ReferredBy.Valid = true
	return true, nil
}

func (s *fakeProfileStore) SetPin(_ context.Context, id, pinHash string) error {
	p, ok := s.profiles[id]
	if !ok {
		return fmt.Errorf("profile %s not found", id)
	}
	p.PinHash.String = pinHash
	p.PinHash.Valid = true
	p.HasPin = true
	return nil
}

func (s *fakeProfileStore) SetReferralCode(_ context.Context, id, code string) error {
	p, ok := s.profiles[id]
	if !ok {
		return fmt.Errorf("profile %s not found", id)
	}
	p.ReferralCode = code
	return nil
}

func (s *fakeProfileStore) CountReferredSignups(context.Context, string) (int, error) {
	return s.signups, nil
}

func (s *fakeProfileStore) CountReferredWithFunding(context.Context, string) (int, error) {
	return s.withFunding, nil
}

type fakeTransactionStore struct {
	inserted    []*entity.Transaction
	insertErr   error
	references  map[string]bool
	staleExists bool
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{
		references: map[string]bool{},
	}
}

func (s *fakeTransactionStore) Insert(_ context.Context, tx *entity.Transaction) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	if s.references[tx.Reference] {
		return &mysql.MySQLError{
			Number:  1062,
			Message: fmt.Sprintf("Duplicate entry '%s' for key 'reference'", tx.Reference),
		}
	}
	s.references[tx.Reference] = true
	s.inserted = append(s.inserted, tx)
	return nil
}

func (s *fakeTransactionStore) FindByID(_ context.Context, id string) (*entity.Transaction, error) {
	for _, tx := range s.inserted {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, fmt.Errorf("transaction %s not found", id)
}

func (s *fakeTransactionStore) ExistsByReference(_ context.Context, reference string) (bool, error) {
	// staleExists mimics a webhook racing past the existence check before the
	// unique index catches the replay on insert.
	if s.staleExists {
		return false, nil
	}
	return s.references[reference], nil
}

func (s *fakeTransactionStore) UpdateStatus(_ context.Context, id, fromStatus, toStatus string) (bool, error) {
	for _, tx := range s.inserted {
		if tx.ID == id && tx.Status == fromStatus {
			tx.Status = toStatus
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeTransactionStore) List(_ context.Context, filter repository.TransactionFilter) ([]entity.Transaction, int, error) {
	var out []entity.Transaction
	for _, tx := range s.inserted {
		if filter.UserID != "" && tx.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		out = append(out, *tx)
	}
	return out, len(out), nil
}

func (s *fakeTransactionStore) CountSuccessFunding(_ context.Context, userID string) (int, error) {
	count := 0
	for _, tx := range s.inserted {
		if tx.UserID == userID && tx.Type == entity.TxTypeWalletFunding && tx.Status == entity.TxStatusSuccess {
			count++
		}
	}
	return count, nil
}

func (s *fakeTransactionStore) HasRewardAtThreshold(_ context.Context, referrerID string, threshold int) (bool, error) {
	for _, tx := range s.inserted {
		if tx.UserID != referrerID || tx.Type != entity.TxTypeReferralReward || tx.Status != entity.TxStatusSuccess {
			continue
		}
		var details model.ReferralRewardDetails
		if err := json.Unmarshal(tx.Details, &details); err != nil {
			continue
		}
		if details.Threshold == threshold {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeTransactionStore) ListRewards(_ context.Context, referrerID string) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, tx := range s.inserted {
		if tx.UserID == referrerID && tx.Type == entity.TxTypeReferralReward {
			out = append(out, *tx)
		}
	}
	return out, nil
}

type fakeSettingsStore struct {
	settings []entity.Setting
	upserts  []entity.Setting
}

func (s *fakeSettingsStore) All(context.Context) ([]entity.Setting, error) {
	return s.settings, nil
}

func (s *fakeSettingsStore) Upsert(_ context.Context, setting entity.Setting) error {
	s.upserts = append(s.upserts, setting)
	return nil
}

func (s *fakeSettingsStore) set(key, value string) {
	for i := range s.settings {
		if s.settings[i].Key == key {
			s.settings[i].Value = value
			return
		}
	}
	s.settings = append(s.settings, entity.Setting{Key: key, Value: value})
}

type fakeBeneficiaryStore struct {
	saved []*entity.Beneficiary
}

func (s *fakeBeneficiaryStore) Insert(_ context.Context, b *entity.Beneficiary) error {
	s.saved = append(s.saved, b)
	return nil
}

func (s *fakeBeneficiaryStore) ListByUser(_ context.Context, userID, benType string) ([]entity.Beneficiary, error) {
	var out []entity.Beneficiary
	for _, b := range s.saved {
		if b.UserID != userID {
			continue
		}
		if benType != "" && b.Type != benType {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *fakeBeneficiaryStore) Delete(_ context.Context, id, userID string) (bool, error) {
	for i, b := range s.saved {
		if b.ID == id && b.UserID == userID {
			s.saved = append(s.saved[:i], s.saved[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeProductStore struct {
	products map[string]*entity.Product
}

func newFakeProductStore(products ...*entity.Product) *fakeProductStore {
	store := &fakeProductStore{products: map[string]*entity.Product{}}
	for _, p := range products {
		store.products[p.ID] = p
	}
	return store
}

func (s *fakeProductStore) FindByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s not found", id)
	}
	return p, nil
}

func (s *fakeProductStore) List(context.Context, int, int) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeProductStore) DecrementStock(_ context.Context, id string, quantity int) (bool, error) {
	p, ok := s.products[id]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	return true, nil
}

func (s *fakeProductStore) IncrementStock(_ context.Context, id string, quantity int) error {
	if p, ok := s.products[id]; ok {
		p.Stock += quantity
	}
	return nil
}

func (s *fakeProductStore) Upsert(_ context.Context, p *entity.Product) error {
	s.products[p.ID] = p
	return nil
}

type fakeOrderStore struct {
	orders []*entity.Order
}

func (s *fakeOrderStore) Insert(_ context.Context, order *entity.Order) error {
	s.orders = append(s.orders, order)
	return nil
}

func (s *fakeOrderStore) ListByUser(_ context.Context, userID string) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

type fakeGateway struct {
	result   *vtu.SubmitResult
	err      error
	requests []*vtu.SubmitRequest
}

func (g *fakeGateway) Submit(_ context.Context, request *vtu.SubmitRequest) (*vtu.SubmitResult, error) {
	g.requests = append(g.requests, request)
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

type fakePublisher struct {
	resolved []*model.TransactionEvent
	rewards  []*model.RewardIssuedEvent
}

func (p *fakePublisher) SendResolved(event *model.TransactionEvent) error {
	p.resolved = append(p.resolved, event)
	return nil
}

func (p *fakePublisher) SendRewardIssued(event *model.RewardIssuedEvent) error {
	p.rewards = append(p.rewards, event)
	return nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (e *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: fmt.Sprintf("task-%d", len(e.tasks))}, nil
}
