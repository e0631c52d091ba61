package courier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danialmy/go-ship-einvoice/courier/model"
)

func sampleOrder() CreateOrder {
	amount := decimal.NewFromInt(100)
	return CreateOrder{
		ServiceLevel: model.ServiceStandard,
		Sender: model.Contact{
			Name:        "John Doe",
			PhoneNumber: "81234567",
			Email:       "john.doe@example.com",
			Address: model.Address{
				Address1: "17 Lorong Jambu 3",
				Area:     "Taman Sri Delima",
				City:     "Simpang Ampat",
				State:    "Pulau Pinang",
				Country:  "MY",
				Postcode: "51200",
			},
		},
		Recipient: model.Contact{
			Name:        "Jane Doe",
			PhoneNumber: "98765432",
			Email:       "jane.doe@example.com",
			Address: model.Address{
				Address1: "Jalan PJU 8/8",
				Area:     "Damansara Perdana",
				City:     "Petaling Jaya",
				State:    "Selangor",
				Country:  "MY",
				Postcode: "47820",
			},
		},
		Parcel: model.Parcel{
			Dimensions: model.Dimensions{Weight: 2.5, Width: 30, Height: 20, Depth: 10, Size: "L"},
			Items:      []model.Item{{ItemDescription: "Electronics", Quantity: 1}},
		},
		COD: &model.COD{Amount: amount, Currency: "MYR"},
	}
}

// vendor stands in for the courier API: a token endpoint plus an orders and
// waybill endpoint whose behavior the test controls.
type vendor struct {
	tokenCalls int32
	orderCalls int32
	ordersFunc func(w http.ResponseWriter, r *http.Request, attempt int32)
}

func (v *vendor) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/2.0/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&v.tokenCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.TokenResponse{AccessToken: "tok", ExpiresIn: 3600})
	})
	mux.HandleFunc("/4.2/orders", func(w http.ResponseWriter, r *http.Request) {
		attempt := atomic.AddInt32(&v.orderCalls, 1)
		v.ordersFunc(w, r, attempt)
	})
	return httptest.NewServer(mux)
}

func TestCreateOrder_BuildsExpectedPayload(t *testing.T) {
	v := &vendor{}
	v.ordersFunc = func(w http.ResponseWriter, r *http.Request, _ int32) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req model.OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Parcel", req.ServiceType)
		assert.Equal(t, model.ServiceStandard, req.ServiceLevel)
		assert.Equal(t, "John Doe", req.From.Name)
		assert.Equal(t, "Jane Doe", req.To.Name)
		require.NotNil(t, req.ParcelJob.CashOnDelivery)
		assert.True(t, req.ParcelJob.CashOnDelivery.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, "MYR", req.ParcelJob.CashOnDeliveryCurrency)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.OrderResponse{TrackingNumber: "NVSG-12345"})
	}
	srv := v.server(t)
	defer srv.Close()

	client := New(srv.URL)
	svc := NewOrderService(client, NewTokenProvider(client, "id", "secret"), 1)

	tracking, err := svc.CreateOrder(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, "NVSG-12345", tracking)
	assert.EqualValues(t, 1, v.orderCalls)
}

func TestCreateOrder_RefreshesTokenOn401(t *testing.T) {
	v := &vendor{}
	v.ordersFunc = func(w http.ResponseWriter, r *http.Request, attempt int32) {
		if attempt == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.OrderResponse{TrackingNumber: "NVSG-67890"})
	}
	srv := v.server(t)
	defer srv.Close()

	client := New(srv.URL)
	svc := NewOrderService(client, NewTokenProvider(client, "id", "secret"), 1)

	tracking, err := svc.CreateOrder(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, "NVSG-67890", tracking)
	assert.EqualValues(t, 2, v.orderCalls)
	assert.EqualValues(t, 2, v.tokenCalls, "401 should force a token refresh")
}

func TestCreateOrder_RetriesExhausted(t *testing.T) {
	v := &vendor{}
	v.ordersFunc = func(w http.ResponseWriter, r *http.Request, _ int32) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	srv := v.server(t)
	defer srv.Close()

	client := New(srv.URL)
	svc := NewOrderService(client, NewTokenProvider(client, "id", "secret"), 1)

	_, err := svc.CreateOrder(context.Background(), sampleOrder())
	assert.Error(t, err)
	assert.EqualValues(t, 2, v.orderCalls, "one retry means two attempts")
}

func TestCreateOrder_ValidationFailsBeforeNetwork(t *testing.T) {
	v := &vendor{}
	v.ordersFunc = func(w http.ResponseWriter, r *http.Request, _ int32) {
		t.Fatal("no request should reach the API")
	}
	srv := v.server(t)
	defer srv.Close()

	client := New(srv.URL)
	svc := NewOrderService(client, NewTokenProvider(client, "id", "secret"), 1)

	bad := sampleOrder()
	bad.Parcel.Dimensions.Weight = 51

	_, err := svc.CreateOrder(context.Background(), bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "weight", verr.Field)
	assert.EqualValues(t, 0, v.tokenCalls)
}

func TestDownloadLabel(t *testing.T) {
	labelBytes := []byte("%PDF-1.4 fake label")

	mux := http.NewServeMux()
	mux.HandleFunc("/2.0/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.TokenResponse{AccessToken: "tok", ExpiresIn: 3600})
	})
	mux.HandleFunc("/2.0/reports/waybill", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "NVSG-12345", r.URL.Query().Get("tid"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write(labelBytes)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := New(srv.URL)
	svc := NewOrderService(client, NewTokenProvider(client, "id", "secret"), 0)

	path := filepath.Join(t.TempDir(), "label.pdf")
	require.NoError(t, svc.DownloadLabel(context.Background(), "NVSG-12345", path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, labelBytes, written)
}

func TestDownloadLabel_BadTrackingNumber(t *testing.T) {
	client := New("http://unused")
	svc := NewOrderService(client, NewTokenProvider(client, "id", "secret"), 0)

	err := svc.DownloadLabel(context.Background(), "ab", "label.pdf")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tracking_number", verr.Field)
}
