package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/log"
	"github.com/waffle-market/goapi/domain"
	"github.com/waffle-market/goapi/domain/notification"
	"github.com/waffle-market/goapi/service/pushgateway"
)

const (
	defaultPageLimit   = 20
	maxPageLimit       = 100
	persistConcurrency = 10
)

var timeNow = time.Now

// content is the bilingual rendering of a notification type. The korean
// strings double as the persisted record's title and message.
type content struct {
	koTitle   string
	koMessage string
	enTitle   string
	enMessage string
}

func (c *content) localisations() []pushgateway.Localisation {
	return []pushgateway.Localisation{
		{Language: "ko", Title: c.koTitle, Message: c.koMessage},
		{Language: "en", Title: c.enTitle, Message: c.enMessage},
	}
}

func winContent() *content {
	return &content{
		koTitle:   "🎉 당첨을 축하합니다!",
		koMessage: "래플에 당첨되었습니다! 지금 확인해보세요.",
		enTitle:   "🎉 Congratulations!",
		enMessage: "You won the lottery! Check it out now.",
	}
}

func refundContent() *content {
	return &content{
		koTitle:   "래플이 취소되었습니다",
		koMessage: "참여하신 래플이 취소되어 환불이 진행됩니다.",
		enTitle:   "Lottery cancelled",
		enMessage: "The lottery you entered was cancelled. Your entry will be refunded.",
	}
}

func saleCompleteContent() *content {
	return &content{
		koTitle:   "판매가 완료되었습니다",
		koMessage: "래플 판매 대금이 정산되었습니다.",
		enTitle:   "Sale complete",
		enMessage: "Your lottery sale has been settled.",
	}
}

func entryConfirmedContent(lotteryTitle string) *content {
	return &content{
		koTitle:   "응모가 완료되었습니다",
		koMessage: fmt.Sprintf("'%s' 래플 응모가 확인되었습니다.", lotteryTitle),
		enTitle:   "Entry confirmed",
		enMessage: fmt.Sprintf("Your entry to '%s' has been confirmed.", lotteryTitle),
	}
}

type notificationUseCase struct {
	repo       notification.Repo
	push       pushgateway.Client
	ctxTimeout time.Duration
}

func NewNotificationUseCase(r notification.Repo, push pushgateway.Client, ctxTimeout time.Duration) notification.UseCase {
	return &notificationUseCase{
		repo:       r,
		push:       push,
		ctxTimeout: ctxTimeout,
	}
}

func (u *notificationUseCase) FindByWallet(c bCtx.Ctx, wallet domain.Address, page, limit int) (*notification.ListResult, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, err := u.repo.FindByWallet(ctx, wallet, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := u.repo.Count(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*notification.Notification{}
	}
	return &notification.ListResult{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (u *notificationUseCase) MarkRead(c bCtx.Ctx, wallet domain.Address, ids []string) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.repo.MarkRead(ctx, wallet, ids)
}

func (u *notificationUseCase) MarkAllRead(c bCtx.Ctx, wallet domain.Address) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.repo.MarkAllRead(ctx, wallet)
}

func (u *notificationUseCase) SendEntryConfirmedNotification(c bCtx.Ctx, wallet domain.Address, lotteryId, lotteryTitle string) {
	u.dispatch(c, []domain.Address{wallet}, lotteryId, notification.TypeEntryConfirmed, entryConfirmedContent(lotteryTitle))
}

func (u *notificationUseCase) SendWinNotification(c bCtx.Ctx, winners []domain.Address, lotteryId string) {
	u.dispatch(c, winners, lotteryId, notification.TypeWin, winContent())
}

func (u *notificationUseCase) SendRefundNotification(c bCtx.Ctx, participants []domain.Address, lotteryId string) {
	u.dispatch(c, participants, lotteryId, notification.TypeRefund, refundContent())
}

func (u *notificationUseCase) SendSaleCompleteNotification(c bCtx.Ctx, seller domain.Address, lotteryId string) {
	u.dispatch(c, []domain.Address{seller}, lotteryId, notification.TypeSaleComplete, saleCompleteContent())
}

// dispatch persists one record per recipient, then pushes in gateway-sized
// batches. Every failure is absorbed and logged: notification delivery must
// never wedge event processing.
func (u *notificationUseCase) dispatch(c bCtx.Ctx, recipients []domain.Address, lotteryId string, typ notification.Type, cnt *content) {
	if len(recipients) == 0 {
		return
	}
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()

	now := timeNow()
	b := goroutines.NewBatch(persistConcurrency, goroutines.WithBatchSize(len(recipients)))
	defer b.Close()
	for i := 0; i < len(recipients); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			n := &notification.Notification{
				Id:            uuid.New().String(),
				WalletAddress: recipients[idx].ToLower(),
				LotteryId:     lotteryId,
				Type:          typ,
				Title:         cnt.koTitle,
				Message:       cnt.koMessage,
				CreatedAt:     now,
			}
			return nil, u.repo.Append(ctx, n)
		})
	}
	b.QueueComplete()

	persistErrs := 0
	for ret := range b.Results() {
		if ret.Error() != nil {
			persistErrs++
		}
	}
	if persistErrs > 0 {
		ctx.WithFields(log.Fields{
			"lotteryId":  lotteryId,
			"type":       typ,
			"recipients": len(recipients),
			"failures":   persistErrs,
		}).Error("failed to persist some notifications")
	}

	if u.push == nil || !u.push.Enabled() {
		ctx.WithFields(log.Fields{
			"lotteryId": lotteryId,
			"type":      typ,
		}).Debug("push gateway disabled, records persisted only")
		return
	}

	miniAppPath := fmt.Sprintf("/lottery/%s", lotteryId)
	locs := cnt.localisations()
	for start := 0; start < len(recipients); start += pushgateway.MaxAddressesPerRequest {
		end := start + pushgateway.MaxAddressesPerRequest
		if end > len(recipients) {
			end = len(recipients)
		}
		if err := u.push.Send(ctx, recipients[start:end], miniAppPath, locs); err != nil {
			ctx.WithFields(log.Fields{
				"err":       err,
				"lotteryId": lotteryId,
				"type":      typ,
				"batch":     fmt.Sprintf("%d-%d", start, end),
			}).Error("push.Send failed")
		}
	}
}
