package poller

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/domain"
	"github.com/waffle-market/goapi/domain/lottery"
	lotteryMocks "github.com/waffle-market/goapi/domain/lottery/mocks"
	"github.com/waffle-market/goapi/domain/mocks"
	notificationMocks "github.com/waffle-market/goapi/domain/notification/mocks"
	contractMocks "github.com/waffle-market/goapi/service/chain/contract/mocks"
)

type stubHandler struct {
	topic   common.Hash
	handled []types.Log
	refs    []*lottery.ContractRef
	err     error
	started chan struct{}
	gate    chan struct{}
}

func (h *stubHandler) Topic() common.Hash { return h.topic }

func (h *stubHandler) HandleLog(c bCtx.Ctx, ref *lottery.ContractRef, l *types.Log) error {
	if h.started != nil {
		h.started <- struct{}{}
	}
	if h.gate != nil {
		<-h.gate
	}
	h.handled = append(h.handled, *l)
	h.refs = append(h.refs, ref)
	return h.err
}

func newTestPoller(client *mocks.EthClientRepo, uc *lotteryMocks.UseCase, lookback uint64, handlers ...EventHandler) *Poller {
	return NewPoller(&PollerCfg{
		ChainId:        480,
		Client:         client,
		LotteryUseCase: uc,
		Handlers:       handlers,
		Interval:       1,
		LookbackBlocks: lookback,
	})
}

func TestPollOnce_initCursorWithLookback(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	client := new(mocks.EthClientRepo)
	uc := new(lotteryMocks.UseCase)
	client.On("BlockNumber", mock.Anything).Return(uint64(5000), nil)
	uc.On("ListActiveContracts", mock.Anything).Return(nil, nil)

	p := newTestPoller(client, uc, 100)
	res := p.PollOnce(ctx)
	req.False(res.Skipped)
	req.Equal(uint64(4901), res.FromBlock)
	req.Equal(uint64(5000), res.ToBlock)
	req.Equal(uint64(5000), p.LastProcessedBlock())
}

func TestPollOnce_lookbackClampedAtGenesis(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	client := new(mocks.EthClientRepo)
	uc := new(lotteryMocks.UseCase)
	client.On("BlockNumber", mock.Anything).Return(uint64(50), nil)
	uc.On("ListActiveContracts", mock.Anything).Return(nil, nil)

	p := newTestPoller(client, uc, 100)
	res := p.PollOnce(ctx)
	req.False(res.Skipped)
	req.Equal(uint64(1), res.FromBlock)
	req.Equal(uint64(50), res.ToBlock)
}

func TestPollOnce_noNewBlocks(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	client := new(mocks.EthClientRepo)
	uc := new(lotteryMocks.UseCase)
	client.On("BlockNumber", mock.Anything).Return(uint64(5000), nil)
	uc.On("ListActiveContracts", mock.Anything).Return(nil, nil)

	p := newTestPoller(client, uc, 100)
	req.False(p.PollOnce(ctx).Skipped)

	res := p.PollOnce(ctx)
	req.True(res.Skipped)
	req.Equal("no new blocks", res.SkipReason)
}

func TestPollOnce_chainClientUnavailable(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	uc := new(lotteryMocks.UseCase)
	p := NewPoller(&PollerCfg{
		ChainId:        480,
		LotteryUseCase: uc,
		Interval:       1,
		LookbackBlocks: 100,
	})
	res := p.PollOnce(ctx)
	req.True(res.Skipped)
	req.Equal("chain client unavailable", res.SkipReason)
}

func TestPollOnce_blockNumberFailure(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	client := new(mocks.EthClientRepo)
	uc := new(lotteryMocks.UseCase)
	client.On("BlockNumber", mock.Anything).Return(uint64(0), errors.New("rpc down"))

	p := newTestPoller(client, uc, 100)
	res := p.PollOnce(ctx)
	req.True(res.Skipped)
	req.Equal("block number unavailable", res.SkipReason)
	uc.AssertNotCalled(t, "ListActiveContracts", mock.Anything)
}

func TestPollOnce_singleFlight(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	addr := common.BigToAddress(big.NewInt(1))
	ref := &lottery.ContractRef{Id: "lot-1", ContractAddress: toDomainAddress(addr)}

	client := new(mocks.EthClientRepo)
	uc := new(lotteryMocks.UseCase)
	client.On("BlockNumber", mock.Anything).Return(uint64(200), nil)
	uc.On("ListActiveContracts", mock.Anything).Return([]*lottery.ContractRef{ref}, nil)

	h := &stubHandler{
		topic:   winnerSelectedSig,
		started: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	client.On("FilterLogs", mock.Anything, mock.Anything).Return([]types.Log{
		{Address: addr, Topics: []common.Hash{h.topic}, BlockNumber: 150, Index: 0},
	}, nil)

	p := newTestPoller(client, uc, 100, h)

	firstDone := make(chan *PollResult)
	go func() {
		firstDone <- p.PollOnce(ctx)
	}()
	<-h.started

	overlapped := p.PollOnce(ctx)
	req.True(overlapped.Skipped)
	req.Equal("previous cycle still running", overlapped.SkipReason)
	close(h.gate)

	first := <-firstDone
	req.False(first.Skipped)
	req.Equal(1, first.Logs)
}

func TestPollOnce_cursorAdvancesOnHandlerError(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	addr := common.BigToAddress(big.NewInt(2))
	ref := &lottery.ContractRef{Id: "lot-2", ContractAddress: toDomainAddress(addr)}

	client := new(mocks.EthClientRepo)
	uc := new(lotteryMocks.UseCase)
	client.On("BlockNumber", mock.Anything).Return(uint64(300), nil)
	uc.On("ListActiveContracts", mock.Anything).Return([]*lottery.ContractRef{ref}, nil)

	h := &stubHandler{topic: marketFailedSig, err: errors.New("handler boom")}
	client.On("FilterLogs", mock.Anything, mock.Anything).Return([]types.Log{
		{Address: addr, Topics: []common.Hash{h.topic}, BlockNumber: 250, Index: 1},
	}, nil)

	p := newTestPoller(client, uc, 100, h)
	res := p.PollOnce(ctx)
	req.False(res.Skipped)
	req.Equal(1, res.Errors)
	req.Equal(0, res.Logs)
	req.Equal(uint64(300), p.LastProcessedBlock())
}

func TestPollOnce_logsOrderedByBlockAndIndex(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	addr := common.BigToAddress(big.NewInt(3))
	ref := &lottery.ContractRef{Id: "lot-3", ContractAddress: toDomainAddress(addr)}

	client := new(mocks.EthClientRepo)
	uc := new(lotteryMocks.UseCase)
	client.On("BlockNumber", mock.Anything).Return(uint64(400), nil)
	uc.On("ListActiveContracts", mock.Anything).Return([]*lottery.ContractRef{ref}, nil)

	h := &stubHandler{topic: marketCompletedSig}
	client.On("FilterLogs", mock.Anything, mock.Anything).Return([]types.Log{
		{Address: addr, Topics: []common.Hash{h.topic}, BlockNumber: 370, Index: 5},
		{Address: addr, Topics: []common.Hash{h.topic}, BlockNumber: 350, Index: 2},
		{Address: addr, Topics: []common.Hash{h.topic}, BlockNumber: 350, Index: 1},
		{Address: addr, Topics: []common.Hash{h.topic}, BlockNumber: 360, Index: 0},
	}, nil)

	p := newTestPoller(client, uc, 100, h)
	res := p.PollOnce(ctx)
	req.False(res.Skipped)
	req.Equal(4, res.Logs)
	req.Len(h.handled, 4)

	type pos struct {
		blk uint64
		idx uint
	}
	got := make([]pos, 0, len(h.handled))
	for _, l := range h.handled {
		got = append(got, pos{l.BlockNumber, l.Index})
	}
	req.Equal([]pos{{350, 1}, {350, 2}, {360, 0}, {370, 5}}, got)
}

func TestPollOnce_contractFailureIsolated(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	addrBad := common.BigToAddress(big.NewInt(4))
	addrOk := common.BigToAddress(big.NewInt(5))
	refs := []*lottery.ContractRef{
		{Id: "lot-bad", ContractAddress: toDomainAddress(addrBad)},
		{Id: "lot-ok", ContractAddress: toDomainAddress(addrOk)},
	}

	client := new(mocks.EthClientRepo)
	uc := new(lotteryMocks.UseCase)
	client.On("BlockNumber", mock.Anything).Return(uint64(10), nil)
	uc.On("ListActiveContracts", mock.Anything).Return(refs, nil)

	h := &stubHandler{topic: winnerSelectedSig}
	client.On("FilterLogs", mock.Anything, mock.MatchedBy(func(q ethereum.FilterQuery) bool {
		return q.Addresses[0] == addrBad
	})).Return(nil, errors.New("rpc error"))
	client.On("FilterLogs", mock.Anything, mock.MatchedBy(func(q ethereum.FilterQuery) bool {
		return q.Addresses[0] == addrOk
	})).Return([]types.Log{
		{Address: addrOk, Topics: []common.Hash{h.topic}, BlockNumber: 8, Index: 0},
	}, nil)

	p := newTestPoller(client, uc, 5, h)
	res := p.PollOnce(ctx)
	req.False(res.Skipped)
	req.Equal(1, res.Logs)
	req.Equal(1, res.Errors)
	req.Len(h.refs, 1)
	req.Equal("lot-ok", h.refs[0].Id)
	req.Equal(uint64(10), p.LastProcessedBlock())
}

func TestPollOnce_noActiveContracts(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	client := new(mocks.EthClientRepo)
	uc := new(lotteryMocks.UseCase)
	client.On("BlockNumber", mock.Anything).Return(uint64(600), nil)
	uc.On("ListActiveContracts", mock.Anything).Return([]*lottery.ContractRef{}, nil)

	h := &stubHandler{topic: winnerSelectedSig}
	p := newTestPoller(client, uc, 100, h)
	res := p.PollOnce(ctx)
	req.False(res.Skipped)
	req.Equal(0, res.Contracts)
	req.Equal(uint64(600), p.LastProcessedBlock())
	client.AssertNotCalled(t, "FilterLogs", mock.Anything, mock.Anything)
}

func TestPollOnce_marketCompletedEndToEnd(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	addr := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	ref := &lottery.ContractRef{Id: "L1", ContractAddress: toDomainAddress(addr)}
	seller := domain.Address("0x00000000000000000000000000000000000000b1")

	client := new(mocks.EthClientRepo)
	uc := new(lotteryMocks.UseCase)
	notificationUC := new(notificationMocks.UseCase)
	market := new(contractMocks.WaffleMarketContract)

	client.On("BlockNumber", mock.Anything).Return(uint64(1000), nil).Once()
	client.On("BlockNumber", mock.Anything).Return(uint64(950), nil)
	uc.On("ListActiveContracts", mock.Anything).Return([]*lottery.ContractRef{ref}, nil)
	uc.On("AdvanceStatus", mock.Anything, "L1", lottery.StatusCompleted).Return(nil)
	market.On("Seller", mock.Anything, int32(testChainId), ref.ContractAddress.ToLowerStr()).Return(seller, nil)
	notificationUC.On("SendSaleCompleteNotification", mock.Anything, seller, "L1").Return()
	client.On("FilterLogs", mock.Anything, mock.Anything).Return([]types.Log{
		{Address: addr, Topics: []common.Hash{marketCompletedSig}, BlockNumber: 920, Index: 0},
	}, nil)

	h := NewMarketCompletedHandler(&MarketCompletedHandlerCfg{
		ChainId:             testChainId,
		LotteryUseCase:      uc,
		NotificationUseCase: notificationUC,
		Market:              market,
	})
	p := newTestPoller(client, uc, 100, h)
	p.Init(ctx)
	req.Equal(uint64(900), p.LastProcessedBlock())

	res := p.PollOnce(ctx)
	req.False(res.Skipped)
	req.Equal(uint64(901), res.FromBlock)
	req.Equal(uint64(950), res.ToBlock)
	req.Equal(1, res.Logs)
	req.Equal(uint64(950), p.LastProcessedBlock())
	notificationUC.AssertNumberOfCalls(t, "SendSaleCompleteNotification", 1)
}

func TestPollOnce_activeContractSetUnavailable(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	client := new(mocks.EthClientRepo)
	uc := new(lotteryMocks.UseCase)
	client.On("BlockNumber", mock.Anything).Return(uint64(5000), nil)
	uc.On("ListActiveContracts", mock.Anything).Return(nil, errors.New("mongo down"))

	p := newTestPoller(client, uc, 100)
	res := p.PollOnce(ctx)
	req.True(res.Skipped)
	req.Equal("active contract set unavailable", res.SkipReason)
}

