package usecase

import (
	"time"

	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/log"
	"github.com/waffle-market/goapi/domain"
	"github.com/waffle-market/goapi/domain/lottery"
)

type lotteryUseCase struct {
	repo       lottery.Repo
	ctxTimeout time.Duration
}

func NewLotteryUseCase(r lottery.Repo, ctxTimeout time.Duration) lottery.UseCase {
	return &lotteryUseCase{
		repo:       r,
		ctxTimeout: ctxTimeout,
	}
}

func (u *lotteryUseCase) FindOne(c bCtx.Ctx, id string) (*lottery.Lottery, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.repo.FindOne(ctx, id)
}

func (u *lotteryUseCase) ListActiveContracts(c bCtx.Ctx) ([]*lottery.ContractRef, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.repo.FindActiveContracts(ctx)
}

func (u *lotteryUseCase) FindByContractAddress(c bCtx.Ctx, addr domain.Address) (*lottery.Lottery, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.repo.FindByContractAddress(ctx, addr)
}

// AdvanceStatus only moves a lottery forward. A transition that would regress
// or leave a terminal status is skipped without error, which makes chain
// event replays harmless.
func (u *lotteryUseCase) AdvanceStatus(c bCtx.Ctx, id string, next lottery.Status) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()

	if !next.IsValid() {
		return domain.ErrInvalidStatusTransition
	}

	cur, err := u.repo.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if cur.Status == next {
		return nil
	}
	if !cur.Status.CanAdvanceTo(next) {
		ctx.WithFields(log.Fields{
			"id":   id,
			"from": cur.Status,
			"to":   next,
		}).Info("skip status transition")
		return nil
	}
	return u.repo.UpdateStatus(ctx, id, next)
}

func (u *lotteryUseCase) IncrementSoldTickets(c bCtx.Ctx, id string, count int) (*lottery.Lottery, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.repo.IncrementSoldTickets(ctx, id, count)
}
