package poller

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/waffle-market/goapi/base/abi"
	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/domain"
	"github.com/waffle-market/goapi/domain/lottery"
	lotteryMocks "github.com/waffle-market/goapi/domain/lottery/mocks"
	notificationMocks "github.com/waffle-market/goapi/domain/notification/mocks"
	contractMocks "github.com/waffle-market/goapi/service/chain/contract/mocks"
)

const testChainId = int64(480)

var testRef = &lottery.ContractRef{
	Id:              "lot-1",
	ContractAddress: domain.Address("0x00000000000000000000000000000000000000aa"),
}

func TestWinnerSelectedHandler(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	winners := []common.Address{
		common.HexToAddress("0x5324a98b506F3265c500f978F3943A1fC6A55fa4"),
		common.HexToAddress("0x9438c455b9fC72A71Ad3225e8625Ec66Eb74CfAD"),
	}
	data, err := abi.WaffleMarketABI.Events["WinnerSelected"].Inputs.Pack(winners)
	req.NoError(err)

	notificationUC := new(notificationMocks.UseCase)
	market := new(contractMocks.WaffleMarketContract)
	notificationUC.On("SendWinNotification", mock.Anything, mock.Anything, "lot-1").Return()

	h := NewWinnerSelectedHandler(&WinnerSelectedHandlerCfg{
		ChainId:             testChainId,
		NotificationUseCase: notificationUC,
		Market:              market,
	})
	err = h.HandleLog(ctx, testRef, &types.Log{
		Topics: []common.Hash{winnerSelectedSig},
		Data:   data,
	})
	req.NoError(err)

	expected := []domain.Address{
		"0x5324a98b506f3265c500f978f3943a1fc6a55fa4",
		"0x9438c455b9fc72a71ad3225e8625ec66eb74cfad",
	}
	notificationUC.AssertCalled(t, "SendWinNotification", mock.Anything, expected, "lot-1")
	market.AssertNotCalled(t, "GetWinners", mock.Anything, mock.Anything, mock.Anything)
}

func TestWinnerSelectedHandler_fallbackToContractRead(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	data, err := abi.WaffleMarketABI.Events["WinnerSelected"].Inputs.Pack([]common.Address{})
	req.NoError(err)

	winners := []domain.Address{"0x5324a98b506f3265c500f978f3943a1fc6a55fa4"}
	notificationUC := new(notificationMocks.UseCase)
	market := new(contractMocks.WaffleMarketContract)
	market.On("GetWinners", mock.Anything, int32(testChainId), testRef.ContractAddress.ToLowerStr()).Return(winners, nil)
	notificationUC.On("SendWinNotification", mock.Anything, winners, "lot-1").Return()

	h := NewWinnerSelectedHandler(&WinnerSelectedHandlerCfg{
		ChainId:             testChainId,
		NotificationUseCase: notificationUC,
		Market:              market,
	})
	err = h.HandleLog(ctx, testRef, &types.Log{
		Topics: []common.Hash{winnerSelectedSig},
		Data:   data,
	})
	req.NoError(err)
	notificationUC.AssertCalled(t, "SendWinNotification", mock.Anything, winners, "lot-1")
}

func TestMarketFailedHandler(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	data, err := abi.WaffleMarketABI.Events["MarketFailed"].Inputs.Pack("goal not reached")
	req.NoError(err)

	participants := []domain.Address{
		"0x5324a98b506f3265c500f978f3943a1fc6a55fa4",
		"0x9438c455b9fc72a71ad3225e8625ec66eb74cfad",
	}
	lotteryUC := new(lotteryMocks.UseCase)
	notificationUC := new(notificationMocks.UseCase)
	market := new(contractMocks.WaffleMarketContract)
	lotteryUC.On("AdvanceStatus", mock.Anything, "lot-1", lottery.StatusFailed).Return(nil)
	market.On("GetParticipants", mock.Anything, int32(testChainId), testRef.ContractAddress.ToLowerStr()).Return(participants, nil)
	notificationUC.On("SendRefundNotification", mock.Anything, participants, "lot-1").Return()

	h := NewMarketFailedHandler(&MarketFailedHandlerCfg{
		ChainId:             testChainId,
		LotteryUseCase:      lotteryUC,
		NotificationUseCase: notificationUC,
		Market:              market,
	})
	err = h.HandleLog(ctx, testRef, &types.Log{
		Topics: []common.Hash{marketFailedSig},
		Data:   data,
	})
	req.NoError(err)
	lotteryUC.AssertCalled(t, "AdvanceStatus", mock.Anything, "lot-1", lottery.StatusFailed)
	notificationUC.AssertCalled(t, "SendRefundNotification", mock.Anything, participants, "lot-1")
}

func TestMarketFailedHandler_noParticipants(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	lotteryUC := new(lotteryMocks.UseCase)
	notificationUC := new(notificationMocks.UseCase)
	market := new(contractMocks.WaffleMarketContract)
	lotteryUC.On("AdvanceStatus", mock.Anything, "lot-1", lottery.StatusFailed).Return(nil)
	market.On("GetParticipants", mock.Anything, int32(testChainId), testRef.ContractAddress.ToLowerStr()).Return(nil, nil)

	h := NewMarketFailedHandler(&MarketFailedHandlerCfg{
		ChainId:             testChainId,
		LotteryUseCase:      lotteryUC,
		NotificationUseCase: notificationUC,
		Market:              market,
	})
	err := h.HandleLog(ctx, testRef, &types.Log{
		Topics: []common.Hash{marketFailedSig},
	})
	req.NoError(err)
	notificationUC.AssertNotCalled(t, "SendRefundNotification", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarketFailedHandler_statusUpdateFailure(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	lotteryUC := new(lotteryMocks.UseCase)
	notificationUC := new(notificationMocks.UseCase)
	market := new(contractMocks.WaffleMarketContract)
	lotteryUC.On("AdvanceStatus", mock.Anything, "lot-1", lottery.StatusFailed).Return(errors.New("mongo down"))

	h := NewMarketFailedHandler(&MarketFailedHandlerCfg{
		ChainId:             testChainId,
		LotteryUseCase:      lotteryUC,
		NotificationUseCase: notificationUC,
		Market:              market,
	})
	err := h.HandleLog(ctx, testRef, &types.Log{
		Topics: []common.Hash{marketFailedSig},
	})
	req.Error(err)
	market.AssertNotCalled(t, "GetParticipants", mock.Anything, mock.Anything, mock.Anything)
	notificationUC.AssertNotCalled(t, "SendRefundNotification", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarketCompletedHandler(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	seller := domain.Address("0x5324a98b506f3265c500f978f3943a1fc6a55fa4")
	lotteryUC := new(lotteryMocks.UseCase)
	notificationUC := new(notificationMocks.UseCase)
	market := new(contractMocks.WaffleMarketContract)
	lotteryUC.On("AdvanceStatus", mock.Anything, "lot-1", lottery.StatusCompleted).Return(nil)
	market.On("Seller", mock.Anything, int32(testChainId), testRef.ContractAddress.ToLowerStr()).Return(seller, nil)
	notificationUC.On("SendSaleCompleteNotification", mock.Anything, seller, "lot-1").Return()

	h := NewMarketCompletedHandler(&MarketCompletedHandlerCfg{
		ChainId:             testChainId,
		LotteryUseCase:      lotteryUC,
		NotificationUseCase: notificationUC,
		Market:              market,
	})
	err := h.HandleLog(ctx, testRef, &types.Log{
		Topics: []common.Hash{marketCompletedSig},
	})
	req.NoError(err)
	lotteryUC.AssertCalled(t, "AdvanceStatus", mock.Anything, "lot-1", lottery.StatusCompleted)
	notificationUC.AssertCalled(t, "SendSaleCompleteNotification", mock.Anything, seller, "lot-1")
}

func TestMarketCompletedHandler_zeroSeller(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	lotteryUC := new(lotteryMocks.UseCase)
	notificationUC := new(notificationMocks.UseCase)
	market := new(contractMocks.WaffleMarketContract)
	lotteryUC.On("AdvanceStatus", mock.Anything, "lot-1", lottery.StatusCompleted).Return(nil)
	market.On("Seller", mock.Anything, int32(testChainId), testRef.ContractAddress.ToLowerStr()).Return(domain.EmptyAddress, nil)

	h := NewMarketCompletedHandler(&MarketCompletedHandlerCfg{
		ChainId:             testChainId,
		LotteryUseCase:      lotteryUC,
		NotificationUseCase: notificationUC,
		Market:              market,
	})
	err := h.HandleLog(ctx, testRef, &types.Log{
		Topics: []common.Hash{marketCompletedSig},
	})
	req.NoError(err)
	notificationUC.AssertNotCalled(t, "SendSaleCompleteNotification", mock.Anything, mock.Anything, mock.Anything)
}
