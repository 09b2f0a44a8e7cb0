package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/database/mongoclient"
	"github.com/waffle-market/goapi/base/ethereum"
	"github.com/waffle-market/goapi/base/log"
	"github.com/waffle-market/goapi/base/poller"
	"github.com/waffle-market/goapi/domain"
	mmiddleware "github.com/waffle-market/goapi/middleware"
	"github.com/waffle-market/goapi/service/chain"
	"github.com/waffle-market/goapi/service/chain/contract"
	"github.com/waffle-market/goapi/service/pushgateway"
	"github.com/waffle-market/goapi/service/query"
	hcDelivery "github.com/waffle-market/goapi/stores/healthcheck/delivery/http"
	hcRepo "github.com/waffle-market/goapi/stores/healthcheck/repository"
	hcUsecase "github.com/waffle-market/goapi/stores/healthcheck/usecase"
	lotteryRepo "github.com/waffle-market/goapi/stores/lottery/repository/mongo"
	lotteryUsecase "github.com/waffle-market/goapi/stores/lottery/usecase"
	notificationRepo "github.com/waffle-market/goapi/stores/notification/repository/mongo"
	notificationUsecase "github.com/waffle-market/goapi/stores/notification/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/poller/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}

	// secrets come from the environment, not the config file
	viper.BindEnv("pushGateway.apikey", "PUSH_GATEWAY_APIKEY")
}

func main() {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())

	ctxTimeout := viper.GetDuration("context.timeout")
	pollInterval := viper.GetDuration("poller.interval")
	lookbackBlocks := viper.GetUint64("poller.lookbackBlocks")
	activeNetwork := viper.GetString("activeNetwork")
	networkInfo := viper.Sub(fmt.Sprintf("networks.%s", activeNetwork))
	chainId := networkInfo.GetInt64("chainId")
	rpcUrl := networkInfo.GetString("rpcUrl")

	ctx.WithFields(log.Fields{
		"network":        activeNetwork,
		"chainId":        chainId,
		"rpcUrl":         rpcUrl,
		"pollInterval":   pollInterval,
		"lookbackBlocks": lookbackBlocks,
	}).Info("config")

	ctx.Info("init mongo")
	mongoClient, q := initMongo()

	startEchoServer(mongoClient, q)

	lotteryUC := lotteryUsecase.NewLotteryUseCase(lotteryRepo.NewLotteryMongoRepo(q), ctxTimeout)

	pushClient := pushgateway.NewClient(&pushgateway.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    viper.GetDuration("pushGateway.timeout"),
		AppId:      viper.GetString("pushGateway.appId"),
		Apikey:     viper.GetString("pushGateway.apikey"),
	})
	if !pushClient.Enabled() {
		ctx.Warn("push gateway credentials missing, notifications persist without push")
	}
	notificationUC := notificationUsecase.NewNotificationUseCase(notificationRepo.NewNotificationMongoRepo(q), pushClient, ctxTimeout)

	// a dead rpc endpoint must not take the pod down with it. the poller skips
	// cycles until the next deploy brings a working endpoint
	var ethClientRepo domain.EthClientRepo
	if rpcClient, err := ethclient.DialContext(ctx, rpcUrl); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"url": rpcUrl,
		}).Error("failed to connect rpc, poller will skip cycles")
	} else {
		ethClientRepo = ethereum.NewThrottledClient(rpcClient, 100)
	}

	chainService, err := chain.NewClient(ctx, &chain.ClientCfg{
		RpcUrls: map[int32]string{
			int32(chainId): rpcUrl,
		},
	})
	if err != nil {
		ctx.WithField("err", err).Warn("chain service degraded")
	}
	market := contract.NewWaffleMarket(chainService)

	handlers := []poller.EventHandler{
		poller.NewWinnerSelectedHandler(&poller.WinnerSelectedHandlerCfg{
			ChainId:             chainId,
			NotificationUseCase: notificationUC,
			Market:              market,
		}),
		poller.NewMarketFailedHandler(&poller.MarketFailedHandlerCfg{
			ChainId:             chainId,
			LotteryUseCase:      lotteryUC,
			NotificationUseCase: notificationUC,
			Market:              market,
		}),
		poller.NewMarketCompletedHandler(&poller.MarketCompletedHandlerCfg{
			ChainId:             chainId,
			LotteryUseCase:      lotteryUC,
			NotificationUseCase: notificationUC,
			Market:              market,
		}),
	}

	p := poller.NewPoller(&poller.PollerCfg{
		ChainId:        chainId,
		Client:         ethClientRepo,
		LotteryUseCase: lotteryUC,
		Handlers:       handlers,
		Interval:       pollInterval,
		LookbackBlocks: lookbackBlocks,
	})
	p.Init(ctx)
	p.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	ctx.WithField("signal", sig).Info("received signal")
	cancel()
	p.Wait()
	ctx.Info("poller drained, exiting")
}

func initMongo() (*mongoclient.Client, query.Mongo) {
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	return mongoClient, query.New(mongoClient, checkIndex)
}

func startEchoServer(mongoClient *mongoclient.Client, q query.Mongo) {
	context := bCtx.Background()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())

	hcDelivery.New(e, hcUsecase.New(hcRepo.New(mongoClient, q)))

	address := viper.GetString("server.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.WithField("err", err).Error("shutting down the server")
		}
	}()
}
