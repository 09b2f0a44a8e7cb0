package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/waffle-market/goapi/base/ctx"
	"github.com/waffle-market/goapi/domain"
	"github.com/waffle-market/goapi/domain/notification"
	"github.com/waffle-market/goapi/domain/notification/mocks"
)

const testWallet = "0x5324a98b506F3265c500f978F3943A1fC6A55fa4"

func newTestServer(uc notification.UseCase) *echo.Echo {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", bCtx.Background())
			return next(c)
		}
	})
	New(e, uc)
	return e
}

func TestList(t *testing.T) {
	req := require.New(t)

	uc := new(mocks.UseCase)
	uc.On("FindByWallet", mock.Anything, domain.Address(testWallet).ToLower(), 2, 10).
		Return(&notification.ListResult{
			Items:      []*notification.Notification{{Id: "n-1"}},
			Page:       2,
			Limit:      10,
			Total:      11,
			TotalPages: 2,
		}, nil)

	e := newTestServer(uc)
	r := httptest.NewRequest(http.MethodGet, "/notifications/"+testWallet+"?page=2&limit=10", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
	var body struct {
		Status string                  `json:"status"`
		Data   notification.ListResult `json:"data"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	req.Equal("success", body.Status)
	req.Equal(2, body.Data.Page)
	req.Len(body.Data.Items, 1)
}

func TestList_invalidWallet(t *testing.T) {
	req := require.New(t)

	uc := new(mocks.UseCase)
	e := newTestServer(uc)
	r := httptest.NewRequest(http.MethodGet, "/notifications/not-an-address", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	req.Equal(http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "FindByWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkRead(t *testing.T) {
	req := require.New(t)

	uc := new(mocks.UseCase)
	uc.On("MarkRead", mock.Anything, domain.Address(testWallet).ToLower(), []string{"n-1", "n-2"}).Return(nil)

	e := newTestServer(uc)
	r := httptest.NewRequest(http.MethodPost, "/notifications/"+testWallet+"/read", strings.NewReader(`{"ids":["n-1","n-2"]}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
	uc.AssertCalled(t, "MarkRead", mock.Anything, domain.Address(testWallet).ToLower(), []string{"n-1", "n-2"})
}

func TestMarkRead_missingIds(t *testing.T) {
	req := require.New(t)

	uc := new(mocks.UseCase)
	e := newTestServer(uc)
	r := httptest.NewRequest(http.MethodPost, "/notifications/"+testWallet+"/read", strings.NewReader(`{}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	req.Equal(http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkAllRead(t *testing.T) {
	req := require.New(t)

	uc := new(mocks.UseCase)
	uc.On("MarkAllRead", mock.Anything, domain.Address(testWallet).ToLower()).Return(nil)

	e := newTestServer(uc)
	r := httptest.NewRequest(http.MethodPost, "/notifications/"+testWallet+"/read-all", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
	uc.AssertCalled(t, "MarkAllRead", mock.Anything, domain.Address(testWallet).ToLower())
}
