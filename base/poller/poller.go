package poller

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/log"
	"github.com/waffle-market/goapi/base/metrics"
	"github.com/waffle-market/goapi/domain"
	"github.com/waffle-market/goapi/domain/lottery"
)

var metOnce sync.Once
var met metrics.Service

const filterLogsTimeout = 30 * time.Second

// EventHandler reacts to a single contract log. Handlers must tolerate
// replayed logs: delivery is at-least-once, the block cursor is held in
// memory only and rewinds on restart.
type EventHandler interface {
	Topic() common.Hash
	HandleLog(c bCtx.Ctx, ref *lottery.ContractRef, l *types.Log) error
}

type PollerCfg struct {
	ChainId        int64
	Client         domain.EthClientRepo
	LotteryUseCase lottery.UseCase
	Handlers       []EventHandler
	Interval       time.Duration
	LookbackBlocks uint64
}

// Poller periodically scans active drawing contracts for new logs and feeds
// them to its handlers. A cycle never runs concurrently with itself.
type Poller struct {
	chainId            int64
	client             domain.EthClientRepo
	lotteryUseCase     lottery.UseCase
	handlers           []EventHandler
	interval           time.Duration
	lookbackBlocks     uint64
	lastProcessedBlock uint64
	initialized        bool
	inFlight           int32
	stoppedCh          chan interface{}
}

// PollResult summarizes one cycle, mostly for logging and tests.
type PollResult struct {
	Skipped    bool
	SkipReason string
	FromBlock  uint64
	ToBlock    uint64
	Contracts  int
	Logs       int
	Errors     int
}

func NewPoller(cfg *PollerCfg) *Poller {
	metOnce.Do(func() {
		met = metrics.New("poller")
	})
	return &Poller{
		chainId:        cfg.ChainId,
		client:         cfg.Client,
		lotteryUseCase: cfg.LotteryUseCase,
		handlers:       cfg.Handlers,
		interval:       cfg.Interval,
		lookbackBlocks: cfg.LookbackBlocks,
		stoppedCh:      make(chan interface{}),
	}
}

// Init sets the block cursor to current - lookback. Failure is absorbed:
// the first successful cycle initializes the cursor instead.
func (p *Poller) Init(ctx bCtx.Ctx) {
	if p.client == nil {
		ctx.Warn("chain client unavailable, poller will skip cycles")
		return
	}
	current, err := p.client.BlockNumber(ctx)
	if err != nil {
		ctx.WithField("err", err).Warn("client.BlockNumber failed, defer cursor init")
		return
	}
	p.setCursor(ctx, current)
}

func (p *Poller) setCursor(ctx bCtx.Ctx, current uint64) {
	if current > p.lookbackBlocks {
		p.lastProcessedBlock = current - p.lookbackBlocks
	} else {
		p.lastProcessedBlock = 0
	}
	p.initialized = true
	ctx.WithFields(log.Fields{
		"chainId":      p.chainId,
		"currentBlock": current,
		"cursor":       p.lastProcessedBlock,
	}).Info("poller cursor initialized")
}

// LastProcessedBlock returns the in-memory block cursor.
func (p *Poller) LastProcessedBlock() uint64 {
	return p.lastProcessedBlock
}

func (p *Poller) Start(ctx bCtx.Ctx) {
	go func() {
		defer close(p.stoppedCh)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res := p.PollOnce(ctx)
				if res.Skipped {
					ctx.WithField("reason", res.SkipReason).Debug("poll cycle skipped")
				}
			}
		}
	}()
}

func (p *Poller) Wait() {
	<-p.stoppedCh
}

// PollOnce runs a single reconciliation cycle. Per-contract and per-log
// errors are absorbed and counted; the cursor still advances to the scanned
// head so one poisoned contract cannot wedge the pipeline.
func (p *Poller) PollOnce(ctx bCtx.Ctx) *PollResult {
	if !atomic.CompareAndSwapInt32(&p.inFlight, 0, 1) {
		return &PollResult{Skipped: true, SkipReason: "previous cycle still running"}
	}
	defer atomic.StoreInt32(&p.inFlight, 0)
	defer met.BumpTime("time", "func", "pollOnce").End()

	if p.client == nil {
		return &PollResult{Skipped: true, SkipReason: "chain client unavailable"}
	}

	current, err := p.client.BlockNumber(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.BlockNumber failed")
		return &PollResult{Skipped: true, SkipReason: "block number unavailable"}
	}
	met.BumpAvg("blockchain.lastBlock", float64(current), "chainId", fmt.Sprint(p.chainId))

	if !p.initialized {
		p.setCursor(ctx, current)
	}

	if current <= p.lastProcessedBlock {
		return &PollResult{Skipped: true, SkipReason: "no new blocks"}
	}

	refs, err := p.lotteryUseCase.ListActiveContracts(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("lotteryUseCase.ListActiveContracts failed")
		return &PollResult{Skipped: true, SkipReason: "active contract set unavailable"}
	}

	res := &PollResult{
		FromBlock: p.lastProcessedBlock + 1,
		ToBlock:   current,
		Contracts: len(refs),
	}
	for _, ref := range refs {
		logs, errs := p.processContract(ctx, ref, res.FromBlock, res.ToBlock)
		res.Logs += logs
		res.Errors += errs
	}

	// cursor advances even when handlers failed, matching at-least-once
	// semantics: a failed handler is not retried, a restarted process
	// replays the lookback window instead
	p.lastProcessedBlock = current
	met.BumpAvg("poller.cursor", float64(p.lastProcessedBlock), "chainId", fmt.Sprint(p.chainId))
	met.BumpSum("poller.logs", float64(res.Logs), "chainId", fmt.Sprint(p.chainId))
	if res.Errors > 0 {
		met.BumpSum("poller.errors", float64(res.Errors), "chainId", fmt.Sprint(p.chainId))
	}
	ctx.WithFields(log.Fields{
		"chainId":   p.chainId,
		"fromBlock": res.FromBlock,
		"toBlock":   res.ToBlock,
		"contracts": res.Contracts,
		"logs":      res.Logs,
		"errors":    res.Errors,
	}).Info("poll cycle done")
	return res
}

func (p *Poller) processContract(ctx bCtx.Ctx, ref *lottery.ContractRef, from, to uint64) (processed, failed int) {
	addr := common.HexToAddress(ref.ContractAddress.ToLowerStr())
	for _, h := range p.handlers {
		logs, err := p.filterLogs(ctx, addr, h.Topic(), from, to)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":       err,
				"lotteryId": ref.Id,
				"contract":  ref.ContractAddress,
				"topic":     h.Topic().Hex(),
			}).Error("filterLogs failed")
			failed++
			continue
		}
		sort.SliceStable(logs, func(i, j int) bool {
			if logs[i].BlockNumber != logs[j].BlockNumber {
				return logs[i].BlockNumber < logs[j].BlockNumber
			}
			return logs[i].Index < logs[j].Index
		})
		for i := range logs {
			l := logs[i]
			if err := h.HandleLog(ctx, ref, &l); err != nil {
				ctx.WithFields(log.Fields{
					"err":       err,
					"lotteryId": ref.Id,
					"contract":  ref.ContractAddress,
					"block":     l.BlockNumber,
					"logIndex":  l.Index,
				}).Error("handler.HandleLog failed")
				failed++
				continue
			}
			processed++
		}
	}
	return processed, failed
}

// filterLogs splits the range in halves when the node rejects it, the same
// way large backfills are handled.
func (p *Poller) filterLogs(ctx bCtx.Ctx, addr common.Address, topic common.Hash, from, to uint64) ([]types.Log, error) {
	var collected []types.Log
	ranges := []*blockRange{newBlockRange(from, to)}
	for len(ranges) > 0 {
		idx := len(ranges) - 1
		r := ranges[idx]
		ranges = ranges[:idx]
		filter := ethereum.FilterQuery{
			Addresses: []common.Address{addr},
			Topics:    [][]common.Hash{{topic}},
			FromBlock: r.begin,
			ToBlock:   r.end,
		}
		tCtx, cancel := bCtx.WithTimeout(ctx, filterLogsTimeout)
		logs, err := p.client.FilterLogs(tCtx, filter)
		cancel()
		if err != nil {
			if r.begin.Cmp(r.end) == 0 {
				ctx.WithFields(log.Fields{
					"err":     err,
					"begin":   r.begin.String(),
					"end":     r.end.String(),
					"chainId": p.chainId,
				}).Error("failed to get logs within one block")
				return nil, err
			}
			r1, r2 := r.split()
			ranges = append(ranges, r2, r1)
			ctx.WithFields(log.Fields{
				"chainId":       p.chainId,
				"originalRange": r.String(),
				"range1":        r1.String(),
				"range2":        r2.String(),
			}).Info("splitting blockRange")
			continue
		}
		collected = append(collected, logs...)
	}
	return collected, nil
}
