package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var WaffleMarketABI abi.ABI

var waffleMarketABI = `[{"type":"event","anonymous":false,"name":"Entered","inputs":[{"type":"address","name":"participant","indexed":true}]},{"type":"event","anonymous":false,"name":"MarketOpen","inputs":[]},{"type":"event","anonymous":false,"name":"MarketCompleted","inputs":[]},{"type":"event","anonymous":false,"name":"MarketFailed","inputs":[{"type":"string","name":"reason","indexed":false}]},{"type":"event","anonymous":false,"name":"WinnerSelected","inputs":[{"type":"address[]","name":"winners","indexed":false}]},{"type":"function","name":"seller","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"address"}]},{"type":"function","name":"getParticipants","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"address[]"}]},{"type":"function","name":"getWinners","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"address[]"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(waffleMarketABI))
	if err != nil {
		panic("Failed to parse waffle market abi")
	}
	WaffleMarketABI = _abi
}

// DefaultFailureReason is used when a MarketFailed log carries no reason
const DefaultFailureReason = "Unknown"

type EnteredLog struct {
	Participant common.Address // indexed
}

type MarketFailedLog struct {
	Reason string
}

type WinnerSelectedLog struct {
	Winners []common.Address
}

func ToEnteredLog(log *types.Log) (*EnteredLog, error) {
	var entered EnteredLog
	entered.Participant = common.BytesToAddress(log.Topics[1].Bytes())
	return &entered, nil
}

// ToMarketFailedLog never fails: a missing or undecodable reason falls back
// to DefaultFailureReason, matching the contract's optional reason field.
func ToMarketFailedLog(log *types.Log) *MarketFailedLog {
	if len(log.Data) == 0 {
		return &MarketFailedLog{Reason: DefaultFailureReason}
	}
	var failed MarketFailedLog
	if err := WaffleMarketABI.UnpackIntoInterface(&failed, "MarketFailed", log.Data); err != nil {
		return &MarketFailedLog{Reason: DefaultFailureReason}
	}
	if failed.Reason == "" {
		failed.Reason = DefaultFailureReason
	}
	return &failed
}

func ToWinnerSelectedLog(log *types.Log) (*WinnerSelectedLog, error) {
	var selected WinnerSelectedLog
	if err := WaffleMarketABI.UnpackIntoInterface(&selected, "WinnerSelected", log.Data); err != nil {
		return nil, err
	}
	return &selected, nil
}
