package courier

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/danialmy/go-ship-einvoice/courier/model"
)

var logger = logrus.WithField("component", "courier")

const (
	ordersEndpoint  = "/4.2/orders"
	waybillEndpoint = "/2.0/reports/waybill?tid=%s"

	retryPause = time.Second
)

// CreateOrder describes a shipment to be booked with the courier.
type CreateOrder struct {
	ServiceLevel model.ServiceLevel
	Sender       model.Contact
	Recipient    model.Contact
	Parcel       model.Parcel
	COD          *model.COD
}

type OrderService interface {
	// CreateOrder validates the shipment, posts it and returns the
	// tracking number assigned by the courier.
	CreateOrder(ctx context.Context, req CreateOrder) (string, error)

	// DownloadLabel fetches the waybill for a tracking number and writes
	// the bytes verbatim to path.
	DownloadLabel(ctx context.Context, trackingNumber, path string) error
}

type orders struct {
	client  Client
	tokens  *TokenProvider
	retries int
	clock   clockwork.Clock
}

// NewOrderService wires an order service over the given client and token
// provider. retries is the number of extra attempts after the first one.
func NewOrderService(client Client, tokens *TokenProvider, retries int) OrderService {
	if retries < 0 {
		retries = 0
	}
	return &orders{client: client, tokens: tokens, retries: retries, clock: clockwork.NewRealClock()}
}

func (o *orders) CreateOrder(ctx context.Context, req CreateOrder) (string, error) {

	payload, err := buildOrderRequest(req)
	if err != nil {
		return "", err
	}

	var tracking string
	err = o.withRetry(ctx, "create order", func(token string) error {
		res := &model.OrderResponse{}
		if err := o.client.PostJSON(ctx, ordersEndpoint, token, payload, res); err != nil {
			return err
		}
		if res.TrackingNumber == "" {
			return errors.New("no tracking number in response")
		}
		tracking = res.TrackingNumber
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Infof("order created, tracking number %s", tracking)
	return tracking, nil
}

func (o *orders) DownloadLabel(ctx context.Context, trackingNumber, path string) error {

	if err := ValidateTrackingNumber(trackingNumber); err != nil {
		return err
	}

	endpoint := fmt.Sprintf(waybillEndpoint, trackingNumber)

	var label []byte
	err := o.withRetry(ctx, "download label", func(token string) error {
		body, err := o.client.GetBytes(ctx, endpoint, token)
		if err != nil {
			return err
		}
		if len(body) == 0 {
			return errors.New("empty response when downloading label")
		}
		label = body
		return nil
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, label, 0644); err != nil {
		return errors.Wrap(err, "write label file")
	}

	logger.Infof("shipping label downloaded to %s", path)
	return nil
}

// withRetry runs call with a fresh bearer token, refreshing the token and
// retrying on 401, and pausing before retrying transport or server errors.
// The retry budget counts extra attempts beyond the first.
func (o *orders) withRetry(ctx context.Context, op string, call func(token string) error) error {

	force := false
	for attempt := 0; ; attempt++ {
		token, err := o.tokens.Token(ctx, force)
		if err != nil {
			return errors.Wrap(err, op)
		}
		force = false

		err = call(token)
		if err == nil {
			return nil
		}

		if attempt >= o.retries {
			return errors.Wrap(err, op)
		}

		if errors.Is(err, ErrUnauthorized) {
			logger.Warnf("%s: unauthorized, refreshing token and retrying", op)
			force = true
			continue
		}

		logger.Warnf("%s: attempt %d/%d failed: %v", op, attempt+1, o.retries+1, err)
		o.clock.Sleep(retryPause)
	}
}

func buildOrderRequest(req CreateOrder) (*model.OrderRequest, error) {

	if err := validateContact("sender", req.Sender); err != nil {
		return nil, err
	}
	if err := validateContact("recipient", req.Recipient); err != nil {
		return nil, err
	}
	if err := ValidateServiceLevel(req.ServiceLevel); err != nil {
		return nil, err
	}
	if err := ValidateWeight(req.Parcel.Dimensions.Weight); err != nil {
		return nil, err
	}
	if err := ValidateDimensions(req.Parcel.Dimensions); err != nil {
		return nil, err
	}

	payload := &model.OrderRequest{
		ServiceType:  "Parcel",
		ServiceLevel: req.ServiceLevel,
		From:         req.Sender,
		To:           req.Recipient,
		ParcelJob:    model.ParcelJob{Parcel: req.Parcel},
	}

	if req.COD != nil {
		if err := ValidateCOD(*req.COD); err != nil {
			return nil, err
		}
		amount := req.COD.Amount
		payload.ParcelJob.CashOnDelivery = &amount
		payload.ParcelJob.CashOnDeliveryCurrency = req.COD.Currency
	}

	return payload, nil
}
