package poller

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/waffle-market/goapi/base/abi"
	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/log"
	"github.com/waffle-market/goapi/domain"
	"github.com/waffle-market/goapi/domain/lottery"
	"github.com/waffle-market/goapi/domain/notification"
	"github.com/waffle-market/goapi/service/chain/contract"
)

var marketCompletedSig = abi.WaffleMarketABI.Events["MarketCompleted"].ID

type MarketCompletedHandlerCfg struct {
	ChainId             int64
	LotteryUseCase      lottery.UseCase
	NotificationUseCase notification.UseCase
	Market              contract.WaffleMarketContract
}

// MarketCompletedHandler marks the lottery completed and tells the seller
// the sale settled.
type MarketCompletedHandler struct {
	chainId        int64
	lotteryUC      lottery.UseCase
	notificationUC notification.UseCase
	market         contract.WaffleMarketContract
}

func NewMarketCompletedHandler(cfg *MarketCompletedHandlerCfg) EventHandler {
	return &MarketCompletedHandler{
		chainId:        cfg.ChainId,
		lotteryUC:      cfg.LotteryUseCase,
		notificationUC: cfg.NotificationUseCase,
		market:         cfg.Market,
	}
}

func (h *MarketCompletedHandler) Topic() common.Hash {
	return marketCompletedSig
}

func (h *MarketCompletedHandler) HandleLog(ctx bCtx.Ctx, ref *lottery.ContractRef, l *types.Log) error {
	ctx.WithFields(log.Fields{
		"lotteryId": ref.Id,
		"contract":  ref.ContractAddress,
		"txHash":    l.TxHash.Hex(),
	}).Info("market completed")

	if err := h.lotteryUC.AdvanceStatus(ctx, ref.Id, lottery.StatusCompleted); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"lotteryId": ref.Id,
		}).Error("lotteryUC.AdvanceStatus failed")
		return err
	}

	seller, err := h.market.Seller(ctx, int32(h.chainId), ref.ContractAddress.ToLowerStr())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"lotteryId": ref.Id,
			"contract":  ref.ContractAddress,
		}).Error("market.Seller failed")
		return err
	}
	if seller.IsEmpty() || seller.Equals(domain.EmptyAddress) {
		ctx.WithField("lotteryId", ref.Id).Warn("market completed without seller, skipping notification")
		return nil
	}

	h.notificationUC.SendSaleCompleteNotification(ctx, seller, ref.Id)
	return nil
}
