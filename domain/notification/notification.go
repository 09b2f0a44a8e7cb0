package notification

import (
	"time"

	"github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/domain"
)

type Type string

const (
	TypeEntryConfirmed Type = "ENTRY_CONFIRMED"
	TypeWin            Type = "WIN"
	TypeRefund         Type = "REFUND"
	TypeSaleComplete   Type = "SALE_COMPLETE"
)

// Notification is the durable record of notification intent. Immutable after
// creation except IsRead.
type Notification struct {
	Id            string         `bson:"id" json:"id"`
	WalletAddress domain.Address `bson:"walletAddress" json:"walletAddress"`
	LotteryId     string         `bson:"lotteryId" json:"lotteryId"`
	Type          Type           `bson:"type" json:"type"`
	Title         string         `bson:"title" json:"title"`
	Message       string         `bson:"message" json:"message"`
	IsRead        bool           `bson:"isRead" json:"isRead"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
}

type ListResult struct {
	Items      []*Notification `json:"items"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Total      int             `json:"total"`
	TotalPages int             `json:"totalPages"`
}

type Repo interface {
	Append(ctx.Ctx, *Notification) error
	FindByWallet(c ctx.Ctx, wallet domain.Address, offset, limit int) ([]*Notification, error)
	Count(c ctx.Ctx, wallet domain.Address) (int, error)
	MarkRead(c ctx.Ctx, wallet domain.Address, ids []string) error
	MarkAllRead(c ctx.Ctx, wallet domain.Address) error
}

// UseCase is the notification dispatcher. The Send* methods never return an
// error: persistence and push failures are absorbed and logged so that
// notification infrastructure outages cannot block the caller.
type UseCase interface {
	FindByWallet(c ctx.Ctx, wallet domain.Address, page, limit int) (*ListResult, error)
	MarkRead(c ctx.Ctx, wallet domain.Address, ids []string) error
	MarkAllRead(c ctx.Ctx, wallet domain.Address) error

	SendEntryConfirmedNotification(c ctx.Ctx, wallet domain.Address, lotteryId, lotteryTitle string)
	SendWinNotification(c ctx.Ctx, winners []domain.Address, lotteryId string)
	SendRefundNotification(c ctx.Ctx, participants []domain.Address, lotteryId string)
	SendSaleCompleteNotification(c ctx.Ctx, seller domain.Address, lotteryId string)
}
