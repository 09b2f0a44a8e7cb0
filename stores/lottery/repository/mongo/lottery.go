package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/log"
	"github.com/waffle-market/goapi/domain"
	"github.com/waffle-market/goapi/domain/lottery"
	"github.com/waffle-market/goapi/service/query"
)

type lotteryMongoRepo struct {
	m query.Mongo
}

func NewLotteryMongoRepo(mCon query.Mongo) lottery.Repo {
	return &lotteryMongoRepo{m: mCon}
}

func (r *lotteryMongoRepo) FindOne(ctx bCtx.Ctx, id string) (*lottery.Lottery, error) {
	res := &lottery.Lottery{}
	if err := r.m.FindOne(ctx, domain.TableLotteries, bson.M{"id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to FindOne")
		return nil, err
	}
	return res, nil
}

func (r *lotteryMongoRepo) FindActiveContracts(ctx bCtx.Ctx) ([]*lottery.ContractRef, error) {
	qry := bson.M{
		"contractAddress": bson.M{
			"$exists": true,
			"$nin":    bson.A{"", nil},
		},
	}
	var res []*lottery.ContractRef
	if err := r.m.Search(ctx, domain.TableLotteries, 0, 0, "", qry, &res); err != nil {
		ctx.WithField("err", err).Error("failed to Search active contracts")
		return nil, err
	}
	return res, nil
}

func (r *lotteryMongoRepo) FindByContractAddress(ctx bCtx.Ctx, addr domain.Address) (*lottery.Lottery, error) {
	res := &lottery.Lottery{}
	qry := bson.M{"contractAddress": addr.ToLower()}
	if err := r.m.FindOne(ctx, domain.TableLotteries, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":             err,
			"contractAddress": addr,
		}).Error("failed to FindOne by contract address")
		return nil, err
	}
	return res, nil
}

func (r *lotteryMongoRepo) UpdateStatus(ctx bCtx.Ctx, id string, status lottery.Status) error {
	if err := r.m.Patch(ctx, domain.TableLotteries, bson.M{"id": id}, bson.M{"status": status}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"id":     id,
			"status": status,
		}).Error("failed to update status")
		return err
	}
	return nil
}

func (r *lotteryMongoRepo) IncrementSoldTickets(ctx bCtx.Ctx, id string, count int) (*lottery.Lottery, error) {
	// guard against upserting a stub document for an unknown id
	if _, err := r.FindOne(ctx, id); err != nil {
		return nil, err
	}
	res := &lottery.Lottery{}
	if err := r.m.Increment(ctx, domain.TableLotteries, bson.M{"id": id}, res, "soldTickets", count); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"id":    id,
			"count": count,
		}).Error("failed to increment soldTickets")
		return nil, err
	}
	return res, nil
}
