package pushgateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/base/log"
	"github.com/waffle-market/goapi/domain"
)

const (
	apiEndpoint    = "https://developer.worldcoin.org/api/v2/minikit/send-notification"
	defaultTimeout = 10 * time.Second
)

type sendRequest struct {
	AppId           string         `json:"app_id"`
	WalletAddresses []string       `json:"wallet_addresses"`
	MiniAppPath     string         `json:"mini_app_path"`
	Localisations   []Localisation `json:"localisations"`
}

type client struct {
	client  http.Client
	timeout time.Duration
	appId   string
	apikey  string
	apiUrl  string
}

func NewClient(cfg *ClientCfg) Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	apiUrl := cfg.ApiUrl
	if apiUrl == "" {
		apiUrl = apiEndpoint
	}
	return &client{
		client:  cfg.HttpClient,
		timeout: timeout,
		appId:   cfg.AppId,
		apikey:  cfg.Apikey,
		apiUrl:  apiUrl,
	}
}

func (c *client) Enabled() bool {
	return c.appId != "" && c.apikey != ""
}

func (c *client) Send(ctx bCtx.Ctx, wallets []domain.Address, miniAppPath string, localisations []Localisation) error {
	if !c.Enabled() {
		ctx.Debug("push gateway disabled, skip sending")
		return nil
	}
	if len(wallets) == 0 {
		return nil
	}
	if len(wallets) > MaxAddressesPerRequest {
		return ErrTooManyAddresses
	}

	addrs := make([]string, 0, len(wallets))
	for _, w := range wallets {
		addrs = append(addrs, w.ToLowerStr())
	}
	payload := sendRequest{
		AppId:           c.appId,
		WalletAddresses: addrs,
		MiniAppPath:     miniAppPath,
		Localisations:   localisations,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		ctx.WithField("err", err).Error("json.Marshal failed")
		return err
	}

	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "POST", c.apiUrl, bytes.NewReader(body))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": c.apiUrl,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apikey))

	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": c.apiUrl,
			"err": err,
		}).Error("client.Do failed")
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        c.apiUrl,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return ErrStatusCodeNotOk
	}
	return nil
}
