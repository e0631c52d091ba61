package einvoice

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/danialmy/go-ship-einvoice/einvoice/model"
)

var logger = logrus.WithField("component", "einvoice")

const (
	submitEndpoint   = "/einvoice/document/submit"
	statusEndpoint   = "/einvoice/submission/%s"
	documentEndpoint = "/einvoice/document/%s"
	pdfEndpoint      = "/einvoice/document/%s/pdf"
	cancelEndpoint   = "/einvoice/document/cancel"
)

type InvoiceService interface {
	// Submit sends the document to the tax authority and returns the
	// submission id used for status polling.
	Submit(ctx context.Context, doc *model.Document) (*model.SubmissionResult, error)

	// Status checks a previously submitted document by its submission id.
	Status(ctx context.Context, submissionID string) (*model.StatusResponse, error)

	// GetPDF fetches the document details and the rendered PDF bytes.
	GetPDF(ctx context.Context, documentNumber string) ([]byte, *model.DocumentDetails, error)

	// DownloadPDF fetches the rendered PDF and writes it verbatim to path.
	DownloadPDF(ctx context.Context, documentNumber, path string) error

	// Cancel revokes a previously issued document.
	Cancel(ctx context.Context, documentNumber, reason string) (*model.CancelResponse, error)
}

type invoice struct {
	client Client
	tokens *TokenProvider
}

func NewInvoiceService(client Client, tokens *TokenProvider) InvoiceService {
	return &invoice{client: client, tokens: tokens}
}

func (i *invoice) Submit(ctx context.Context, doc *model.Document) (*model.SubmissionResult, error) {

	token, err := i.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "marshal document")
	}

	res := &model.SubmitResponse{}
	if err := i.client.PostSigned(ctx, submitEndpoint, token, payload, res); err != nil {
		return nil, errors.Wrap(err, "submit invoice")
	}

	logger.Infof("invoice %s submitted, transaction %s", doc.DocumentNumber, res.TransactionID)

	return &model.SubmissionResult{
		Success:      true,
		InvoiceID:    doc.DocumentNumber,
		SubmissionID: res.TransactionID,
		Status:       res.Status,
		Message:      res.Message,
	}, nil
}

func (i *invoice) Status(ctx context.Context, submissionID string) (*model.StatusResponse, error) {

	token, err := i.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	res := &model.StatusResponse{}
	endpoint := fmt.Sprintf(statusEndpoint, submissionID)
	if err := i.client.GetSigned(ctx, endpoint, token, res); err != nil {
		return nil, errors.Wrap(err, "invoice status")
	}
	return res, nil
}

func (i *invoice) GetPDF(ctx context.Context, documentNumber string) ([]byte, *model.DocumentDetails, error) {

	token, err := i.tokens.Token(ctx)
	if err != nil {
		return nil, nil, err
	}

	details := &model.DocumentDetails{}
	if err := i.client.GetSigned(ctx, fmt.Sprintf(documentEndpoint, documentNumber), token, details); err != nil {
		return nil, nil, errors.Wrap(err, "document details")
	}

	pdf, err := i.client.GetSignedBytes(ctx, fmt.Sprintf(pdfEndpoint, documentNumber), token, "application/pdf")
	if err != nil {
		return nil, nil, errors.Wrap(err, "document pdf")
	}
	if len(pdf) == 0 {
		return nil, nil, errors.New("empty pdf response")
	}

	return pdf, details, nil
}

func (i *invoice) DownloadPDF(ctx context.Context, documentNumber, path string) error {

	pdf, _, err := i.GetPDF(ctx, documentNumber)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return errors.Wrap(err, "write pdf file")
	}

	logger.Infof("invoice pdf downloaded to %s", path)
	return nil
}

func (i *invoice) Cancel(ctx context.Context, documentNumber, reason string) (*model.CancelResponse, error) {

	token, err := i.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(model.CancelRequest{
		DocumentNumber:   documentNumber,
		Reason:           reason,
		CancellationDate: time.Now().Format(dateLayout),
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal cancel request")
	}

	res := &model.CancelResponse{}
	if err := i.client.PostSigned(ctx, cancelEndpoint, token, payload, res); err != nil {
		return nil, errors.Wrap(err, "cancel invoice")
	}
	return res, nil
}
