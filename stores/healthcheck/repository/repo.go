package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/database/mongoclient"
	"github.com/waffle-market/goapi/base/env"
	"github.com/waffle-market/goapi/domain"
	hcdomain "github.com/waffle-market/goapi/domain/healthcheck"
	"github.com/waffle-market/goapi/service/query"
)

type impl struct {
	mgoClient *mongoclient.Client
	q         query.Mongo
}

// New creates new healthCheck repo
func New(mgoClient *mongoclient.Client, q query.Mongo) hcdomain.HealthCheckRepo {
	return &impl{
		mgoClient: mgoClient,
		q:         q,
	}
}

func (im *impl) PingDB(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()
	if err := im.mgoClient.Ping(ctx, readpref.Primary()); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return err
	}

	// heartbeat doubles as a write-path check
	selector := bson.M{"pod": env.PodName()}
	update := bson.M{
		"pod":       env.PodName(),
		"app":       env.AppName(),
		"heartbeat": time.Now(),
	}
	if err := im.q.Upsert(ctx, domain.TableHealthChecks, selector, update); err != nil {
		context.WithField("err", err).Error("heartbeat upsert failed")
		return err
	}
	return nil
}
