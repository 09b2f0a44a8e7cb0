package pushgateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/domain"
)

func TestSend(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	var gotAuth string
	var gotBody sendRequest
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotAuth = r.Header.Get("Authorization")
		req.NoError(json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{
		AppId:  "app_waffle",
		Apikey: "secret",
		ApiUrl: srv.URL,
	})

	err := c.Send(ctx, []domain.Address{"0xABCDEF0000000000000000000000000000000001"}, "/lottery/lot-1", []Localisation{
		{Language: "ko", Title: "제목", Message: "내용"},
		{Language: "en", Title: "title", Message: "message"},
	})
	req.NoError(err)
	req.Equal(1, calls)
	req.Equal("Bearer secret", gotAuth)
	req.Equal("app_waffle", gotBody.AppId)
	req.Equal([]string{"0xabcdef0000000000000000000000000000000001"}, gotBody.WalletAddresses)
	req.Equal("/lottery/lot-1", gotBody.MiniAppPath)
	req.Len(gotBody.Localisations, 2)
	req.Equal("ko", gotBody.Localisations[0].Language)
}

func TestSend_disabled(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{ApiUrl: srv.URL})
	req.False(c.Enabled())

	err := c.Send(ctx, []domain.Address{"0x1"}, "/lottery/lot-1", nil)
	req.NoError(err)
	req.Equal(0, calls)
}

func TestSend_tooManyAddresses(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	wallets := make([]domain.Address, MaxAddressesPerRequest+1)
	c := NewClient(&ClientCfg{AppId: "app", Apikey: "key"})
	err := c.Send(ctx, wallets, "/lottery/lot-1", nil)
	req.ErrorIs(err, ErrTooManyAddresses)
}

func TestSend_non200(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{AppId: "app", Apikey: "bad", ApiUrl: srv.URL})
	err := c.Send(ctx, []domain.Address{"0x1"}, "/lottery/lot-1", nil)
	req.ErrorIs(err, ErrStatusCodeNotOk)
}

func TestSend_emptyRecipients(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{AppId: "app", Apikey: "key", ApiUrl: srv.URL})
	err := c.Send(ctx, nil, "/lottery/lot-1", nil)
	req.NoError(err)
	req.Equal(0, calls)
}
