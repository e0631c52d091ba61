package model

import "github.com/shopspring/decimal"

type ServiceLevel string

const (
	ServiceStandard ServiceLevel = "Standard"
	ServiceExpress  ServiceLevel = "Express"
	ServiceParcel   ServiceLevel = "Parcel"
	ServiceSameDay  ServiceLevel = "Same Day"
)

// Address is the courier wire format for a street address.
type Address struct {
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	Area        string `json:"area"`
	City        string `json:"city"`
	State       string `json:"state"`
	AddressType string `json:"address_type"`
	Country     string `json:"country"`
	Postcode    string `json:"postcode"`
}

// Contact describes the sender or recipient of a shipment.
type Contact struct {
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phone_number"`
	Email       string  `json:"email"`
	Address     Address `json:"address"`
}

type Dimensions struct {
	Weight float64 `json:"weight"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
	Size   string  `json:"size,omitempty"`
}

type Item struct {
	ItemDescription string `json:"item_description"`
	Quantity        int    `json:"quantity"`
}

type Timeslot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
}

type Parcel struct {
	Dimensions        Dimensions `json:"dimensions"`
	Items             []Item     `json:"items"`
	IsPickupRequired  bool       `json:"is_pickup_required"`
	DeliveryStartDate string     `json:"delivery_start_date,omitempty"`
	DeliveryTimeslot  *Timeslot  `json:"delivery_timeslot,omitempty"`
}

// COD is a cash-on-delivery instruction attached to an order.
type COD struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ParcelJob is the parcel section of the order payload, with optional
// cash-on-delivery fields flattened in the way the courier API expects.
type ParcelJob struct {
	Parcel
	CashOnDelivery         *decimal.Decimal `json:"cash_on_delivery,omitempty"`
	CashOnDeliveryCurrency string           `json:"cash_on_delivery_currency,omitempty"`
}

type OrderRequest struct {
	ServiceType  string       `json:"service_type"`
	ServiceLevel ServiceLevel `json:"service_level"`
	From         Contact      `json:"from"`
	To           Contact      `json:"to"`
	ParcelJob    ParcelJob    `json:"parcel_job"`
}

type OrderResponse struct {
	TrackingNumber string `json:"tracking_number"`
}

type TokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in"`
}
