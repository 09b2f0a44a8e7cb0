package contract

import (
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	baseabi "github.com/waffle-market/goapi/base/abi"
	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/domain"
	"github.com/waffle-market/goapi/service/chain"
)

// WaffleMarketContract reads the drawing contract's view functions.
type WaffleMarketContract interface {
	Seller(ctx bCtx.Ctx, chainId int32, addr string) (domain.Address, error)
	GetParticipants(ctx bCtx.Ctx, chainId int32, addr string) ([]domain.Address, error)
	GetWinners(ctx bCtx.Ctx, chainId int32, addr string) ([]domain.Address, error)
}

type WaffleMarket struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewWaffleMarket(chainService chain.Client) WaffleMarketContract {
	return &WaffleMarket{
		abi:          baseabi.WaffleMarketABI,
		chainService: chainService,
	}
}

func (w *WaffleMarket) Seller(ctx bCtx.Ctx, chainId int32, addr string) (domain.Address, error) {
	method := "seller"
	unpacked, err := w.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, w.abi, method)
	if err != nil {
		return "", err
	}
	seller, ok := first(unpacked).(common.Address)
	if !ok {
		return "", xerrors.Errorf("unexpected %s result", method)
	}
	return domain.Address(seller.Hex()).ToLower(), nil
}

func (w *WaffleMarket) GetParticipants(ctx bCtx.Ctx, chainId int32, addr string) ([]domain.Address, error) {
	return w.callAddressList(ctx, chainId, addr, "getParticipants")
}

func (w *WaffleMarket) GetWinners(ctx bCtx.Ctx, chainId int32, addr string) ([]domain.Address, error) {
	return w.callAddressList(ctx, chainId, addr, "getWinners")
}

func (w *WaffleMarket) callAddressList(ctx bCtx.Ctx, chainId int32, addr string, method string) ([]domain.Address, error) {
	unpacked, err := w.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, w.abi, method)
	if err != nil {
		return nil, err
	}
	addrs, ok := first(unpacked).([]common.Address)
	if !ok {
		return nil, xerrors.Errorf("unexpected %s result", method)
	}
	var res []domain.Address
	for _, a := range addrs {
		res = append(res, domain.Address(a.Hex()).ToLower())
	}
	return res, nil
}

func first(unpacked []interface{}) interface{} {
	if len(unpacked) == 0 {
		return nil
	}
	return unpacked[0]
}
