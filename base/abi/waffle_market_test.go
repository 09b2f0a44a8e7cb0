package abi

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

func TestToWinnerSelectedLog(t *testing.T) {
	req := require.New(t)
	winners := []common.Address{
		common.HexToAddress("0x5324a98b506F3265c500f978F3943A1fC6A55fa4"),
		common.HexToAddress("0x9438c455b9fC72A71Ad3225e8625Ec66Eb74CfAD"),
	}
	data, err := WaffleMarketABI.Events["WinnerSelected"].Inputs.Pack(winners)
	req.NoError(err)

	l := &types.Log{
		Topics: []common.Hash{WaffleMarketABI.Events["WinnerSelected"].ID},
		Data:   data,
	}
	parsed, err := ToWinnerSelectedLog(l)
	req.NoError(err)
	req.Equal(winners, parsed.Winners)
}

func TestToWinnerSelectedLog_empty(t *testing.T) {
	req := require.New(t)
	data, err := WaffleMarketABI.Events["WinnerSelected"].Inputs.Pack([]common.Address{})
	req.NoError(err)

	l := &types.Log{
		Topics: []common.Hash{WaffleMarketABI.Events["WinnerSelected"].ID},
		Data:   data,
	}
	parsed, err := ToWinnerSelectedLog(l)
	req.NoError(err)
	req.Empty(parsed.Winners)
}

func TestToMarketFailedLog(t *testing.T) {
	req := require.New(t)
	data, err := WaffleMarketABI.Events["MarketFailed"].Inputs.Pack("goal not reached")
	req.NoError(err)

	l := &types.Log{
		Topics: []common.Hash{WaffleMarketABI.Events["MarketFailed"].ID},
		Data:   data,
	}
	parsed := ToMarketFailedLog(l)
	req.Equal("goal not reached", parsed.Reason)
}

func TestToMarketFailedLog_missingReason(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		desc string
		data []byte
	}{
		{desc: "no data", data: nil},
		{desc: "garbage data", data: []byte{0x01, 0x02}},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			l := &types.Log{
				Topics: []common.Hash{WaffleMarketABI.Events["MarketFailed"].ID},
				Data:   tt.data,
			}
			parsed := ToMarketFailedLog(l)
			req.Equal(DefaultFailureReason, parsed.Reason)
		})
	}
}

func TestToEnteredLog(t *testing.T) {
	req := require.New(t)
	participant := common.HexToAddress("0x5324a98b506F3265c500f978F3943A1fC6A55fa4")
	l := &types.Log{
		Topics: []common.Hash{
			WaffleMarketABI.Events["Entered"].ID,
			common.BytesToHash(participant.Bytes()),
		},
	}
	parsed, err := ToEnteredLog(l)
	req.NoError(err)
	req.Equal(participant, parsed.Participant)
}
