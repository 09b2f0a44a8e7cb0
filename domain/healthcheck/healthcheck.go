package healthcheck

import (
	"github.com/waffle-market/goapi/base/ctx"
)

type HealthCheckRepo interface {
	PingDB(c ctx.Ctx) error
}

type HealthCheckUsecase interface {
	Check(c ctx.Ctx) error
}
