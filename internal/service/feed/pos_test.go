package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"skusync/config"
	"skusync/internal/telemetry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posService(t *testing.T, srv *httptest.Server) *POSService {
	t.Helper()
	conf := &config.Configuration{}
	conf.Source.POS.BaseURL = srv.URL
	conf.Source.POS.Token = "pos-token"
	conf.Source.POS.PageSize = 2
	return NewPOSService(conf, &telemetry.Trace{}, srv.Client())
}

func TestPOSFetchPaginates(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		page := r.URL.Query().Get("page")
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		switch page {
		case "1":
			fmt.Fprint(w, `[
				{"sku":"A-1","name":"Alpha","vendor":"Acme","barcode":"111","price":"10.00","stock_on_hand":5},
				{"sku":"A-2","name":"Beta","price":7.5,"stock_on_hand":0}
			]`)
		case "2":
			fmt.Fprint(w, `[{"sku":"A-3","name":"Gamma","price":"3.00","stock_on_hand":9}]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	}))
	defer srv.Close()

	var rows []Row
	err := posService(t, srv).Fetch(context.Background(), func(r Row) error {
		rows = append(rows, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Bearer pos-token", gotAuth)
	assert.Equal(t, "A-1", rows[0].SKU)
	assert.Equal(t, "Alpha", rows[0].Title)
	assert.True(t, rows[0].Price.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 5, rows[0].Quantity)
	// 第二頁只有一筆，短頁即收尾
	assert.Equal(t, "A-3", rows[2].SKU)
	assert.Equal(t, 3, rows[2].Line)
}

func TestPOSFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := posService(t, srv).Fetch(context.Background(), func(Row) error { return nil })
	require.Error(t, err)
}

func TestPOSFetchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not":"a list"}`)
	}))
	defer srv.Close()

	err := posService(t, srv).Fetch(context.Background(), func(Row) error { return nil })
	require.Error(t, err)
}

func TestPOSFetchEmitErrorStops(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `[{"sku":"A-1","price":"1.00","stock_on_hand":1},{"sku":"A-2","price":"1.00","stock_on_hand":1}]`)
	}))
	defer srv.Close()

	wantErr := fmt.Errorf("stop")
	err := posService(t, srv).Fetch(context.Background(), func(Row) error { return wantErr })
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}
