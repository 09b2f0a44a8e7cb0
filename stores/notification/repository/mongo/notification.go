package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/log"
	"github.com/waffle-market/goapi/domain"
	"github.com/waffle-market/goapi/domain/notification"
	"github.com/waffle-market/goapi/service/query"
)

type notificationMongoRepo struct {
	m query.Mongo
}

func NewNotificationMongoRepo(mCon query.Mongo) notification.Repo {
	return &notificationMongoRepo{m: mCon}
}

func (r *notificationMongoRepo) Append(ctx bCtx.Ctx, n *notification.Notification) error {
	if err := r.m.Insert(ctx, domain.TableNotifications, n); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"id":     n.Id,
			"wallet": n.WalletAddress,
		}).Error("failed to insert notification")
		return err
	}
	return nil
}

func (r *notificationMongoRepo) FindByWallet(ctx bCtx.Ctx, wallet domain.Address, offset, limit int) ([]*notification.Notification, error) {
	qry := bson.M{"walletAddress": wallet.ToLower()}
	var res []*notification.Notification
	if err := r.m.Search(ctx, domain.TableNotifications, offset, limit, "-createdAt", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"wallet": wallet,
		}).Error("failed to Search notifications")
		return nil, err
	}
	return res, nil
}

func (r *notificationMongoRepo) Count(ctx bCtx.Ctx, wallet domain.Address) (int, error) {
	qry := bson.M{"walletAddress": wallet.ToLower()}
	n, err := r.m.Count(ctx, domain.TableNotifications, qry)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"wallet": wallet,
		}).Error("failed to Count notifications")
		return 0, err
	}
	return n, nil
}

func (r *notificationMongoRepo) MarkRead(ctx bCtx.Ctx, wallet domain.Address, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	selector := bson.M{
		"walletAddress": wallet.ToLower(),
		"id":            bson.M{"$in": ids},
	}
	err := r.m.Patch(ctx, domain.TableNotifications, selector, bson.M{"isRead": true}, query.WithPatchMany(true))
	if err == query.ErrNotFound {
		// already read or unknown ids, marking is idempotent
		return nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"wallet": wallet,
			"ids":    ids,
		}).Error("failed to mark notifications read")
		return err
	}
	return nil
}

func (r *notificationMongoRepo) MarkAllRead(ctx bCtx.Ctx, wallet domain.Address) error {
	selector := bson.M{
		"walletAddress": wallet.ToLower(),
		"isRead":        false,
	}
	err := r.m.Patch(ctx, domain.TableNotifications, selector, bson.M{"isRead": true}, query.WithPatchMany(true))
	if err == query.ErrNotFound {
		return nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"wallet": wallet,
		}).Error("failed to mark all notifications read")
		return err
	}
	return nil
}
