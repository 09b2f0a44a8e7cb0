package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/database/mongoclient"
	"github.com/waffle-market/goapi/base/log"
	bValidator "github.com/waffle-market/goapi/base/validator"
	mmiddleware "github.com/waffle-market/goapi/middleware"
	"github.com/waffle-market/goapi/service/pushgateway"
	"github.com/waffle-market/goapi/service/query"
	hcDelivery "github.com/waffle-market/goapi/stores/healthcheck/delivery/http"
	hcRepo "github.com/waffle-market/goapi/stores/healthcheck/repository"
	hcUsecase "github.com/waffle-market/goapi/stores/healthcheck/usecase"
	notificationDelivery "github.com/waffle-market/goapi/stores/notification/delivery/http"
	notificationRepo "github.com/waffle-market/goapi/stores/notification/repository/mongo"
	notificationUsecase "github.com/waffle-market/goapi/stores/notification/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/api/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}

	viper.BindEnv("pushGateway.apikey", "PUSH_GATEWAY_APIKEY")
}

func main() {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := bCtx.Background()

	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	ctxTimeout := viper.GetDuration("context.timeout")

	pushClient := pushgateway.NewClient(&pushgateway.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    viper.GetDuration("pushGateway.timeout"),
		AppId:      viper.GetString("pushGateway.appId"),
		Apikey:     viper.GetString("pushGateway.apikey"),
	})
	notificationUC := notificationUsecase.NewNotificationUseCase(notificationRepo.NewNotificationMongoRepo(q), pushClient, ctxTimeout)

	notificationDelivery.New(e, notificationUC)
	hcDelivery.New(e, hcUsecase.New(hcRepo.New(mongoClient, q)))

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := bCtx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
