package domain

import (
	"strings"
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type BlockNumber uint64

type TxHash string

type BlockHash string

// Table is the mongo collection name
type Table string

const (
	TableLotteries     Table = "lotteries"
	TableNotifications Table = "notifications"
	TableHealthChecks  Table = "health_checks"
)
