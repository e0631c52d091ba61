package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danialmy/go-ship-einvoice/courier"
	couriermodel "github.com/danialmy/go-ship-einvoice/courier/model"
	"github.com/danialmy/go-ship-einvoice/einvoice"
	einvoicemodel "github.com/danialmy/go-ship-einvoice/einvoice/model"
	"github.com/danialmy/go-ship-einvoice/einvoice/qr"
	"github.com/danialmy/go-ship-einvoice/einvoice/sign"
	"github.com/danialmy/go-ship-einvoice/internal/config"
)

var rootCmd = &cobra.Command{
	Use:     "shipvoice",
	Short:   "Courier shipping and e-invoice submission clients",
	Version: version,
}

var shipCmd = &cobra.Command{
	Use:   "ship",
	Short: "Create a sample shipment and download its label",
	RunE:  runShip,
}

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Build and submit a sample e-invoice, then fetch its PDF",
	RunE:  runInvoice,
}

var e2eCmd = &cobra.Command{
	Use:   "e2e",
	Short: "Run the full flow: shipment, label, invoice, status, PDF",
	RunE:  runE2E,
}

func init() {
	rootCmd.AddCommand(shipCmd, invoiceCmd, e2eCmd)
}

func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(level)

	return cfg, nil
}

func runShip(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	_, err = ship(cmd.Context(), cfg)
	return err
}

func runInvoice(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	return invoice(cmd.Context(), cfg)
}

func runE2E(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	if _, err := ship(cmd.Context(), cfg); err != nil {
		return err
	}
	return invoice(cmd.Context(), cfg)
}

func ship(ctx context.Context, cfg *config.Config) (string, error) {
	client := courier.New(cfg.CourierEnv.BaseURL(cfg.CourierCountryCode))
	tokens := courier.NewTokenProvider(client, cfg.CourierClientID, cfg.CourierClientSecret)
	svc := courier.NewOrderService(client, tokens, cfg.CourierRetries)

	tracking, err := svc.CreateOrder(ctx, sampleShipment())
	if err != nil {
		return "", err
	}

	if err := svc.DownloadLabel(ctx, tracking, cfg.LabelPath); err != nil {
		return "", err
	}
	return tracking, nil
}

func invoice(ctx context.Context, cfg *config.Config) error {
	signer := sign.New(cfg.EInvoiceClientID, cfg.EInvoiceClientSecret)
	client := einvoice.New(cfg.EInvoiceEnv.BaseURL(), signer)
	tokens := einvoice.NewTokenProvider(client, cfg.EInvoiceEnv.TokenURL(), cfg.EInvoiceClientID, cfg.EInvoiceClientSecret)
	svc := einvoice.NewInvoiceService(client, tokens)

	doc, err := einvoice.BuildDocument(sampleInvoice())
	if err != nil {
		return err
	}

	res, err := svc.Submit(ctx, doc)
	if err != nil {
		return err
	}

	status, err := svc.Status(ctx, res.SubmissionID)
	if err != nil {
		return err
	}
	logrus.Infof("submission %s status: %s (%s)", res.SubmissionID, status.Status, status.DocumentStatus)

	pdfPath := filepath.Join(cfg.PDFDir, doc.DocumentNumber+".pdf")
	if err := svc.DownloadPDF(ctx, doc.DocumentNumber, pdfPath); err != nil {
		return err
	}

	return writeVerificationQR(cfg, doc)
}

func writeVerificationQR(cfg *config.Config, doc *einvoicemodel.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	issueDate, err := time.Parse("2006-01-02", doc.DocumentDate)
	if err != nil {
		return err
	}

	link, err := qr.VerificationLink(cfg.EInvoiceEnv, doc.DocumentNumber, issueDate, payload)
	if err != nil {
		return err
	}
	logrus.Infof("verification link: %s", link)

	png, err := qr.PNG(link)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cfg.PDFDir, doc.DocumentNumber+"-qr.png"), png, 0644)
}

func sampleShipment() courier.CreateOrder {
	codAmount := decimal.NewFromInt(100)
	return courier.CreateOrder{
		ServiceLevel: couriermodel.ServiceStandard,
		Sender: couriermodel.Contact{
			Name:        "John Doe",
			PhoneNumber: "81234567",
			Email:       "john.doe@example.com",
			Address: couriermodel.Address{
				Address1:    "17 Lorong Jambu 3",
				Area:        "Taman Sri Delima",
				City:        "Simpang Ampat",
				State:       "Pulau Pinang",
				AddressType: "office",
				Country:     "MY",
				Postcode:    "51200",
			},
		},
		Recipient: couriermodel.Contact{
			Name:        "Jane Doe",
			PhoneNumber: "98765432",
			Email:       "jane.doe@example.com",
			Address: couriermodel.Address{
				Address1:    "Jalan PJU 8/8",
				Area:        "Damansara Perdana",
				City:        "Petaling Jaya",
				State:       "Selangor",
				AddressType: "home",
				Country:     "MY",
				Postcode:    "47820",
			},
		},
		Parcel: couriermodel.Parcel{
			Dimensions: couriermodel.Dimensions{
				Weight: 2.5,
				Width:  30,
				Height: 20,
				Depth:  10,
				Size:   "L",
			},
			Items: []couriermodel.Item{
				{ItemDescription: "Electronics", Quantity: 1},
			},
			DeliveryStartDate: time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
			DeliveryTimeslot: &couriermodel.Timeslot{
				StartTime: "09:00",
				EndTime:   "12:00",
				Timezone:  "Asia/Kuala_Lumpur",
			},
		},
		COD: &couriermodel.COD{Amount: codAmount, Currency: "MYR"},
	}
}

func sampleInvoice() einvoicemodel.FlatInvoice {
	return einvoicemodel.FlatInvoice{
		DocumentType: "INVOICE",
		Currency:     "MYR",
		Seller: einvoicemodel.FlatParty{
			Name:          "ABC Sdn Bhd",
			ID:            "123456789",
			AddressLine1:  "123 Jalan Bukit Bintang",
			City:          "Kuala Lumpur",
			Postcode:      "50200",
			State:         "Wilayah Persekutuan",
			Country:       "MY",
			ContactPerson: "John Doe",
			Email:         "accounts@abccompany.example",
			Phone:         "+60312345678",
		},
		Buyer: einvoicemodel.FlatParty{
			Name:          "XYZ Corporation",
			ID:            "987654321",
			AddressLine1:  "456 Jalan Ampang",
			City:          "Kuala Lumpur",
			Postcode:      "50450",
			State:         "Wilayah Persekutuan",
			Country:       "MY",
			ContactPerson: "Jane Smith",
			Email:         "finance@xyzcorp.example",
			Phone:         "+60323456789",
		},
		PaymentMethod:  "BANK_TRANSFER",
		PaymentDueDate: time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		PaymentTerms:   "30 days",
		Items: []einvoicemodel.FlatItem{
			{Description: "Office Desk", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(1200), TaxRate: decimal.NewFromInt(6)},
			{Description: "Office Chair", Quantity: decimal.NewFromInt(4), Price: decimal.NewFromInt(450), TaxRate: decimal.NewFromInt(6)},
		},
	}
}
