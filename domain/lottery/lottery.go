package lottery

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/domain"
)

type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusOpen      Status = "OPEN"
	StatusClosed    Status = "CLOSED"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

var statusRank = map[Status]int{
	StatusCreated:   0,
	StatusOpen:      1,
	StatusClosed:    2,
	StatusCompleted: 3,
	StatusFailed:    3,
}

func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanAdvanceTo reports whether s -> next is a valid forward transition.
// Statuses only move forward; FAILED is reachable from OPEN and CLOSED only.
func (s Status) CanAdvanceTo(next Status) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if next == StatusFailed {
		return s == StatusOpen || s == StatusClosed
	}
	return statusRank[next] > statusRank[s]
}

type Lottery struct {
	Id               string           `bson:"id"`
	Title            string           `bson:"title"`
	Description      string           `bson:"description,omitempty"`
	Prize            string           `bson:"prize"`
	ImageUrl         string           `bson:"imageUrl,omitempty"`
	TicketPrice      decimal.Decimal  `bson:"ticketPrice"`
	MaxTickets       int              `bson:"maxTickets"`
	SoldTickets      int              `bson:"soldTickets"`
	StartDate        time.Time        `bson:"startDate"`
	EndDate          time.Time        `bson:"endDate"`
	Status           Status           `bson:"status"`
	Region           string           `bson:"region,omitempty"`
	CreatorId        string           `bson:"creatorId"`
	ContractAddress  *domain.Address  `bson:"contractAddress,omitempty"`
	ParticipantCount int              `bson:"participantCount"`
	Winners          []domain.Address `bson:"winners,omitempty"`
	CreatedAt        time.Time        `bson:"createdAt"`
}

// ContractRef is the active contract set entry: a lottery whose on-chain
// contract address is known and thus eligible for event polling.
type ContractRef struct {
	Id              string         `bson:"id"`
	ContractAddress domain.Address `bson:"contractAddress"`
}

type Repo interface {
	FindOne(ctx.Ctx, string) (*Lottery, error)
	// FindActiveContracts returns every lottery with a non-empty contract address
	FindActiveContracts(ctx.Ctx) ([]*ContractRef, error)
	// FindByContractAddress matches case-insensitively; addresses are stored lowercased
	FindByContractAddress(ctx.Ctx, domain.Address) (*Lottery, error)
	UpdateStatus(ctx.Ctx, string, Status) error
	IncrementSoldTickets(ctx.Ctx, string, int) (*Lottery, error)
}

type UseCase interface {
	FindOne(ctx.Ctx, string) (*Lottery, error)
	ListActiveContracts(ctx.Ctx) ([]*ContractRef, error)
	FindByContractAddress(ctx.Ctx, domain.Address) (*Lottery, error)
	// AdvanceStatus moves a lottery forward in its lifecycle. Transitions that
	// would regress or leave a terminal status are skipped, so replaying an
	// already-applied chain event is a no-op.
	AdvanceStatus(ctx.Ctx, string, Status) error
	IncrementSoldTickets(ctx.Ctx, string, int) (*Lottery, error)
}
