package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/delivery"
	"github.com/waffle-market/goapi/base/validator"
	"github.com/waffle-market/goapi/domain"
	dNotification "github.com/waffle-market/goapi/domain/notification"
)

type handler struct {
	notification dNotification.UseCase
}

func New(e *echo.Echo, uc dNotification.UseCase) {
	h := &handler{uc}
	g := e.Group("/notifications/:wallet")
	g.GET("", h.list)
	g.POST("/read", h.markRead)
	g.POST("/read-all", h.markAllRead)
}

func (h *handler) list(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Wallet string `param:"wallet"`
		Page   int    `query:"page"`
		Limit  int    `query:"limit"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if !validator.IsValidAddress(p.Wallet) {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid wallet address")
	}

	res, err := h.notification.FindByWallet(ctx, domain.Address(p.Wallet).ToLower(), p.Page, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) markRead(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Wallet string   `param:"wallet"`
		Ids    []string `json:"ids"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if !validator.IsValidAddress(p.Wallet) {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid wallet address")
	}
	if len(p.Ids) == 0 {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "ids required")
	}

	if err := h.notification.MarkRead(ctx, domain.Address(p.Wallet).ToLower(), p.Ids); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) markAllRead(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Wallet string `param:"wallet"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if !validator.IsValidAddress(p.Wallet) {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid wallet address")
	}

	if err := h.notification.MarkAllRead(ctx, domain.Address(p.Wallet).ToLower()); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}
