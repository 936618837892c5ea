package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/investiai/portfolio-backend/internal/api/request"
	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/importer"
	"github.com/investiai/portfolio-backend/internal/model"
)

// ImportParser extracts an import batch from unstructured content.
type ImportParser interface {
	ParseImportData(ctx context.Context, text, mimeType string, fileData []byte) (model.ImportBatch, error)
}

// ImportService turns raw import input into ledger records. Pasted text is
// first tried against the structured CSV layout; anything the CSV parser
// cannot read, and all file uploads, go through the AI parser when one is
// configured.
type ImportService struct {
	portfolio *PortfolioService
	parser    ImportParser
}

// NewImportService creates a new ImportService. parser may be nil, in which
// case only structured CSV text imports are accepted.
func NewImportService(portfolio *PortfolioService, parser ImportParser) *ImportService {
	return &ImportService{portfolio: portfolio, parser: parser}
}

// Import parses the request content into a batch and merges it into the
// ledger. Inputs yielding no usable rows fail with ErrEmptyImport and leave
// the ledger untouched.
func (s *ImportService) Import(ctx context.Context, req request.ImportRequest) (ImportSummary, error) {
	batch, err := s.parse(ctx, req)
	if err != nil {
		return ImportSummary{}, err
	}
	return s.portfolio.MergeImport(batch)
}

func (s *ImportService) parse(ctx context.Context, req request.ImportRequest) (model.ImportBatch, error) {
	if !req.HasFile() && req.Text != "" {
		if batch := importer.ParseCSV(req.Text); !batch.Empty() {
			return batch, nil
		}
		log.Printf("Import text did not match the CSV layout, trying AI extraction")
	}

	if s.parser == nil {
		return model.ImportBatch{}, apperrors.ErrEmptyImport
	}

	var fileData []byte
	if req.HasFile() {
		decoded, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return model.ImportBatch{}, fmt.Errorf("invalid base64 payload: %w", err)
		}
		fileData = decoded
	}

	batch, err := s.parser.ParseImportData(ctx, req.Text, req.MimeType, fileData)
	if err != nil {
		return model.ImportBatch{}, err
	}
	return batch, nil
}
