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

var winnerSelectedSig = abi.WaffleMarketABI.Events["WinnerSelected"].ID

type WinnerSelectedHandlerCfg struct {
	ChainId             int64
	NotificationUseCase notification.UseCase
	Market              contract.WaffleMarketContract
}

// WinnerSelectedHandler notifies winners. It deliberately leaves the lottery
// document untouched: MarketCompleted drives the status change.
type WinnerSelectedHandler struct {
	chainId        int64
	notificationUC notification.UseCase
	market         contract.WaffleMarketContract
}

func NewWinnerSelectedHandler(cfg *WinnerSelectedHandlerCfg) EventHandler {
	return &WinnerSelectedHandler{
		chainId:        cfg.ChainId,
		notificationUC: cfg.NotificationUseCase,
		market:         cfg.Market,
	}
}

func (h *WinnerSelectedHandler) Topic() common.Hash {
	return winnerSelectedSig
}

func (h *WinnerSelectedHandler) HandleLog(ctx bCtx.Ctx, ref *lottery.ContractRef, l *types.Log) error {
	parsed, err := abi.ToWinnerSelectedLog(l)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"lotteryId": ref.Id,
			"txHash":    l.TxHash.Hex(),
		}).Error("abi.ToWinnerSelectedLog failed")
		return err
	}

	winners := make([]domain.Address, 0, len(parsed.Winners))
	for _, w := range parsed.Winners {
		winners = append(winners, toDomainAddress(w))
	}
	if len(winners) == 0 {
		// older contract builds emit the event without payload
		winners, err = h.market.GetWinners(ctx, int32(h.chainId), ref.ContractAddress.ToLowerStr())
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":       err,
				"lotteryId": ref.Id,
				"contract":  ref.ContractAddress,
			}).Error("market.GetWinners failed")
			return err
		}
	}
	if len(winners) == 0 {
		ctx.WithField("lotteryId", ref.Id).Warn("winner selected without winners, skipping")
		return nil
	}

	h.notificationUC.SendWinNotification(ctx, winners, ref.Id)
	return nil
}
