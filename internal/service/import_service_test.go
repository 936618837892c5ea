package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/api/request"
	"github.com/investiai/portfolio-backend/internal/model"
	"github.com/investiai/portfolio-backend/internal/testutil"
)

// stubParser returns a fixed batch, standing in for the AI extractor.
type stubParser struct {
	batch  model.ImportBatch
	err    error
	called bool
}

func (p *stubParser) ParseImportData(_ context.Context, _, _ string, _ []byte) (model.ImportBatch, error) {
	p.called = true
	return p.batch, p.err
}

func TestImportCSVTextSkipsAIParser(t *testing.T) {
	portfolio, db := newTestPortfolioService(t)
	parser := &stubParser{}
	service := NewImportService(portfolio, parser)

	summary, err := service.Import(context.Background(), request.ImportRequest{
		Text: "TICKER;TIPO;QTD;PRECO\nPETR4;ACAO;100;32.50\nHGLG11;FII;15;160.00",
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if parser.called {
		t.Error("structured CSV must not reach the AI parser")
	}
	if summary.AssetsCreated != 2 {
		t.Errorf("expected 2 assets created, got %+v", summary)
	}
	testutil.AssertRowCount(t, db, "asset", 2)
}

func TestImportFreeformFallsBackToParser(t *testing.T) {
	portfolio, db := newTestPortfolioService(t)

	ticker := "VALE3"
	quantity := decimal.RequireFromString("30")
	parser := &stubParser{batch: model.ImportBatch{
		Assets: []model.AssetCandidate{{Ticker: &ticker, Quantity: &quantity}},
	}}
	service := NewImportService(portfolio, parser)

	summary, err := service.Import(context.Background(), request.ImportRequest{
		Text: "comprei 30 acoes da Vale no mes passado",
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if !parser.called {
		t.Error("freeform text must go through the AI parser")
	}
	if summary.AssetsCreated != 1 {
		t.Errorf("expected 1 asset created, got %+v", summary)
	}
	testutil.AssertRowCount(t, db, "asset", 1)
}

func TestImportWithoutParserRejectsFreeform(t *testing.T) {
	portfolio, db := newTestPortfolioService(t)
	service := NewImportService(portfolio, nil)

	_, err := service.Import(context.Background(), request.ImportRequest{
		Text: "no structure here at all",
	})
	if !errors.Is(err, apperrors.ErrEmptyImport) {
		t.Fatalf("expected ErrEmptyImport, got %v", err)
	}
	testutil.AssertRowCount(t, db, "asset", 0)
}

func TestImportEmptyParserResultFails(t *testing.T) {
	portfolio, _ := newTestPortfolioService(t)
	parser := &stubParser{}
	service := NewImportService(portfolio, parser)

	_, err := service.Import(context.Background(), request.ImportRequest{
		Text: "nothing extractable",
	})
	if !errors.Is(err, apperrors.ErrEmptyImport) {
		t.Fatalf("expected ErrEmptyImport, got %v", err)
	}
}
