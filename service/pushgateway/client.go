package pushgateway

import (
	"errors"
	"net/http"
	"time"

	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/domain"
)

var (
	ErrStatusCodeNotOk  = errors.New("http.status != 200")
	ErrTooManyAddresses = errors.New("too many wallet addresses per request")
)

// MaxAddressesPerRequest is the gateway's hard cap on recipients per call.
// Callers must split larger recipient sets themselves.
const MaxAddressesPerRequest = 1000

// Localisation is a per-language rendering of a push message.
type Localisation struct {
	Language string `json:"language"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// Client delivers push notifications through the mini-app gateway.
type Client interface {
	// Enabled reports whether gateway credentials were configured. When false,
	// Send is a no-op.
	Enabled() bool
	Send(c bCtx.Ctx, wallets []domain.Address, miniAppPath string, localisations []Localisation) error
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	AppId      string
	Apikey     string
	// ApiUrl overrides the production gateway endpoint, for tests
	ApiUrl string
}
