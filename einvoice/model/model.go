package model

import "github.com/shopspring/decimal"

// PartyAddress is the address block of the seller or buyer section.
type PartyAddress struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	State    string `json:"state"`
	Country  string `json:"country"`
}

// Party is the seller or buyer section of the document.
type Party struct {
	Name                 string       `json:"name"`
	IdentificationNumber string       `json:"identificationNumber"`
	IdentificationType   string       `json:"identificationType"`
	Address              PartyAddress `json:"address"`
	ContactPerson        string       `json:"contactPerson"`
	Email                string       `json:"email"`
	PhoneNumber          string       `json:"phoneNumber"`
}

type LineItem struct {
	ItemNumber  int             `json:"itemNumber"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type PaymentInfo struct {
	Method  string `json:"method"`
	DueDate string `json:"dueDate"`
	Terms   string `json:"terms"`
}

// Document is the structured e-invoice payload submitted to the tax
// authority and the unit of record for status polling and PDF retrieval.
type Document struct {
	DocumentType            string          `json:"documentType"`
	DocumentNumber          string          `json:"documentNumber"`
	DocumentDate            string          `json:"documentDate"`
	Currency                string          `json:"currency"`
	Seller                  Party           `json:"seller"`
	Buyer                   Party           `json:"buyer"`
	Items                   []LineItem      `json:"items"`
	PaymentInfo             PaymentInfo     `json:"paymentInfo"`
	TotalAmountExcludingTax decimal.Decimal `json:"totalAmountExcludingTax"`
	TotalTaxAmount          decimal.Decimal `json:"totalTaxAmount"`
	TotalAmountIncludingTax decimal.Decimal `json:"totalAmountIncludingTax"`
}

// FlatItem is a line item as provided by the caller, before tax math.
type FlatItem struct {
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	TaxRate     decimal.Decimal
}

// FlatParty holds seller or buyer input fields.
type FlatParty struct {
	Name          string
	ID            string
	IDType        string
	AddressLine1  string
	AddressLine2  string
	City          string
	Postcode      string
	State         string
	Country       string
	ContactPerson string
	Email         string
	Phone         string
}

// FlatInvoice is the flat field set turned into a Document by
// einvoice.BuildDocument.
type FlatInvoice struct {
	DocumentType   string // defaults to INVOICE
	InvoiceNumber  string // generated when empty
	InvoiceDate    string // YYYY-MM-DD, defaults to today
	Currency       string // defaults to MYR
	Seller         FlatParty
	Buyer          FlatParty
	PaymentMethod  string
	PaymentDueDate string
	PaymentTerms   string
	Items          []FlatItem
}

type SubmitResponse struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// SubmissionResult pairs the vendor's reply with the submitted document
// number.
type SubmissionResult struct {
	Success      bool
	InvoiceID    string
	SubmissionID string
	Status       string
	Message      string
}

type StatusResponse struct {
	Status         string `json:"status"`
	DocumentNumber string `json:"documentNumber"`
	SubmissionDate string `json:"submissionDate"`
	DocumentStatus string `json:"documentStatus"`
	Message        string `json:"message"`
}

type DocumentDetails struct {
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	DocumentDate   string `json:"documentDate"`
	Status         string `json:"status"`
}

type CancelRequest struct {
	DocumentNumber   string `json:"documentNumber"`
	Reason           string `json:"reason"`
	CancellationDate string `json:"cancellationDate"`
}

type CancelResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in"`
}
