package poller

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/waffle-market/goapi/base/abi"
	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/log"
	"github.com/waffle-market/goapi/domain/lottery"
	"github.com/waffle-market/goapi/domain/notification"
	"github.com/waffle-market/goapi/service/chain/contract"
)

var marketFailedSig = abi.WaffleMarketABI.Events["MarketFailed"].ID

type MarketFailedHandlerCfg struct {
	ChainId             int64
	LotteryUseCase      lottery.UseCase
	NotificationUseCase notification.UseCase
	Market              contract.WaffleMarketContract
}

// MarketFailedHandler marks the lottery failed and queues refund
// notifications for every participant.
type MarketFailedHandler struct {
	chainId        int64
	lotteryUC      lottery.UseCase
	notificationUC notification.UseCase
	market         contract.WaffleMarketContract
}

func NewMarketFailedHandler(cfg *MarketFailedHandlerCfg) EventHandler {
	return &MarketFailedHandler{
		chainId:        cfg.ChainId,
		lotteryUC:      cfg.LotteryUseCase,
		notificationUC: cfg.NotificationUseCase,
		market:         cfg.Market,
	}
}

func (h *MarketFailedHandler) Topic() common.Hash {
	return marketFailedSig
}

func (h *MarketFailedHandler) HandleLog(ctx bCtx.Ctx, ref *lottery.ContractRef, l *types.Log) error {
	reason := abi.ToMarketFailedLog(l).Reason
	ctx.WithFields(log.Fields{
		"lotteryId": ref.Id,
		"contract":  ref.ContractAddress,
		"reason":    reason,
		"txHash":    l.TxHash.Hex(),
	}).Info("market failed")

	if err := h.lotteryUC.AdvanceStatus(ctx, ref.Id, lottery.StatusFailed); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"lotteryId": ref.Id,
		}).Error("lotteryUC.AdvanceStatus failed")
		return err
	}

	participants, err := h.market.GetParticipants(ctx, int32(h.chainId), ref.ContractAddress.ToLowerStr())
	if err != nil {
		// status already advanced, refunds can be re-driven by replay
		ctx.WithFields(log.Fields{
			"err":       err,
			"lotteryId": ref.Id,
			"contract":  ref.ContractAddress,
		}).Error("market.GetParticipants failed")
		return err
	}
	if len(participants) == 0 {
		return nil
	}

	h.notificationUC.SendRefundNotification(ctx, participants, ref.Id)
	return nil
}
