package einvoice

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danialmy/go-ship-einvoice/einvoice/model"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// BuildDocument turns flat invoice fields into the structured document the
// tax authority expects: document number and date filled in when absent,
// line tax and totals computed per item, and the three document totals
// summed up.
func BuildDocument(flat model.FlatInvoice) (*model.Document, error) {

	number := flat.InvoiceNumber
	if number == "" {
		number = generateDocumentNumber()
	}

	date := flat.InvoiceDate
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, errors.Wrapf(err, "invoice date %q must be YYYY-MM-DD", date)
	}

	docType := flat.DocumentType
	if docType == "" {
		docType = "INVOICE"
	}
	currency := flat.Currency
	if currency == "" {
		currency = "MYR"
	}

	doc := &model.Document{
		DocumentType:   docType,
		DocumentNumber: number,
		DocumentDate:   date,
		Currency:       currency,
		Seller:         partyFromFlat(flat.Seller),
		Buyer:          partyFromFlat(flat.Buyer),
		Items:          make([]model.LineItem, 0, len(flat.Items)),
		PaymentInfo: model.PaymentInfo{
			Method:  flat.PaymentMethod,
			DueDate: flat.PaymentDueDate,
			Terms:   flat.PaymentTerms,
		},
	}

	for idx, item := range flat.Items {
		lineAmount := item.Price.Mul(item.Quantity)
		taxAmount := lineAmount.Mul(item.TaxRate).Div(hundred)

		doc.Items = append(doc.Items, model.LineItem{
			ItemNumber:  idx + 1,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			TaxRate:     item.TaxRate,
			TaxAmount:   taxAmount,
			TotalAmount: lineAmount.Add(taxAmount),
		})

		doc.TotalAmountExcludingTax = doc.TotalAmountExcludingTax.Add(lineAmount)
		doc.TotalTaxAmount = doc.TotalTaxAmount.Add(taxAmount)
	}
	doc.TotalAmountIncludingTax = doc.TotalAmountExcludingTax.Add(doc.TotalTaxAmount)

	return doc, nil
}

func partyFromFlat(p model.FlatParty) model.Party {
	idType := p.IDType
	if idType == "" {
		idType = "Business Registration"
	}
	country := p.Country
	if country == "" {
		country = "MY"
	}
	return model.Party{
		Name:                 p.Name,
		IdentificationNumber: p.ID,
		IdentificationType:   idType,
		Address: model.PartyAddress{
			Line1:    p.AddressLine1,
			Line2:    p.AddressLine2,
			City:     p.City,
			Postcode: p.Postcode,
			State:    p.State,
			Country:  country,
		},
		ContactPerson: p.ContactPerson,
		Email:         p.Email,
		PhoneNumber:   p.Phone,
	}
}

func generateDocumentNumber() string {
	id := uuid.New()
	return "INV-" + strings.ToUpper(hex.EncodeToString(id[:4]))
}
