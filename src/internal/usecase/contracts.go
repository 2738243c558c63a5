package usecase

import (
	"context"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/gateway/vtu"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/repository"

	"github.com/hibiken/asynq"
)

// Task type routed through asynq. Referral evaluation runs out of band so a
// slow reward dispatch never blocks the funding webhook response.
const TaskTypeEvaluateReferral = "referral:evaluate"

// The usecases accept these narrow interfaces; the sqlx repositories and the
// vtu client satisfy them, and the tests substitute in-memory fakes.

type ProfileStore interface {
	FindByID(ctx context.Context, id string) (*entity.Profile, error)
	FindByReferralCode(ctx context.Context, code string) (*entity.Profile, error)
	DebitBalance(ctx context.Context, id string, amount float64) (bool, error)
	CreditBalance(ctx context.Context, id string, amount float64) error
	SetReferredBy(ctx context.Context, id, referrerID string) (bool, error)
	SetPin(ctx context.Context, id, pinHash string) error
	SetReferralCode(ctx context.Context, id, code string) error
	CountReferredSignups(ctx context.Context, referrerID string) (int, error)
	CountReferredWithFunding(ctx context.Context, referrerID string) (int, error)
}

type TransactionStore interface {
	Insert(ctx context.Context, tx *entity.Transaction) error
	FindByID(ctx context.Context, id string) (*entity.Transaction, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (bool, error)
	List(ctx context.Context, filter repository.TransactionFilter) ([]entity.Transaction, int, error)
	CountSuccessFunding(ctx context.Context, userID string) (int, error)
	HasRewardAtThreshold(ctx context.Context, referrerID string, threshold int) (bool, error)
	ListRewards(ctx context.Context, referrerID string) ([]entity.Transaction, error)
}

type SettingsStore interface {
	All(ctx context.Context) ([]entity.Setting, error)
	Upsert(ctx context.Context, setting entity.Setting) error
}

type BeneficiaryStore interface {
	Insert(ctx context.Context, b *entity.Beneficiary) error
	ListByUser(ctx context.Context, userID, benType string) ([]entity.Beneficiary, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

type ProductStore interface {
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, page, pageSize int) ([]entity.Product, error)
	DecrementStock(ctx context.Context, id string, quantity int) (bool, error)
	IncrementStock(ctx context.Context, id string, quantity int) error
	Upsert(ctx context.Context, p *entity.Product) error
}

type OrderStore interface {
	Insert(ctx context.Context, order *entity.Order) error
	ListByUser(ctx context.Context, userID string) ([]entity.Order, error)
}

// ServiceGateway is the boundary to the telco/bill aggregator.
type ServiceGateway interface {
	Submit(ctx context.Context, request *vtu.SubmitRequest) (*vtu.SubmitResult, error)
}

type EventPublisher interface {
	SendResolved(event *model.TransactionEvent) error
	SendRewardIssued(event *model.RewardIssuedEvent) error
}

type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
