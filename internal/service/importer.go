package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"storefront/internal/domain"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ImportRecord is one product in the bulk import file. The file's "id" is ignored.
type ImportRecord struct {
	Name                    string            `json:"name"`
	Price                   decimal.Decimal   `json:"price"`
	ShortDescription        string            `json:"shortDescription"`
	FullDescription         string            `json:"fullDescription"`
	Images                  []string          `json:"images"`
	TechnicalSpecifications map[string]string `json:"technicalSpecifications"`
	StockQuantity           int               `json:"stockQuantity"`
	Category                string            `json:"category"`
}

// Source yields the raw import document
type Source interface {
	Open() (io.ReadCloser, error)
}

// FileSource reads the import document from a path on disk
type FileSource string

// Open opens the file; a missing or forbidden file is ErrImportSourceUnavailable
func (f FileSource) Open() (io.ReadCloser, error) {
	fh, err := os.Open(string(f))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return nil, errors.WithMessage(domain.ErrImportSourceUnavailable, err.Error())
		}
		return nil, errors.Wrap(err, "open import source")
	}
	return fh, nil
}

// toProduct converts a record, adopting the first image as the primary one
func (r ImportRecord) toProduct() (domain.Product, error) {
	in := domain.ProductInput{
		Name:             r.Name,
		ShortDescription: r.ShortDescription,
		FullDescription:  r.FullDescription,
		Price:            r.Price,
		StockQuantity:    r.StockQuantity,
		Category:         r.Category,
		Images:           r.Images,
	}
	if len(r.Images) > 0 {
		in.ImageURL = r.Images[0]
	}
	if len(r.TechnicalSpecifications) > 0 {
		specs, err := json.MarshalToString(r.TechnicalSpecifications)
		if err != nil {
			return domain.Product{}, errors.Wrap(err, "encode specifications")
		}
		in.TechnicalSpecifications = specs
	}
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}
	var p domain.Product
	in.Apply(&p)
	return p, nil
}

// DecodeImport parses and validates a whole import document before anything is written
func DecodeImport(r io.Reader) ([]domain.Product, error) {
	var records []ImportRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, domain.Invalid(fmt.Sprintf("malformed import document: %v", err))
	}
	products := make([]domain.Product, 0, len(records))
	for i, rec := range records {
		p, err := rec.toProduct()
		if err != nil {
			return nil, errors.WithMessagef(err, "record %d", i)
		}
		products = append(products, p)
	}
	return products, nil
}

// Reload replaces the catalog with the contents of src in one transaction.
// Bootstrap seeding calls this directly; callers on behalf of users go through BulkImport.
func (s *CatalogService) Reload(ctx context.Context, src Source) (int, error) {
	rc, err := src.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	products, err := DecodeImport(rc)
	if err != nil {
		return 0, err
	}
	if err := s.products.ReplaceAll(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

// BulkImport replaces the whole catalog from src; malformed input leaves the catalog untouched
func (s *CatalogService) BulkImport(ctx context.Context, p domain.Principal, src Source) (int, error) {
	if err := requireAdmin(p); err != nil {
		return 0, err
	}
	n, err := s.Reload(ctx, src)
	if err != nil {
		logrus.WithFields(logrus.Fields{"by": p.Username, "error": err.Error()}).Error("Catalog import failed")
		return 0, err
	}
	logrus.WithFields(logrus.Fields{"count": n, "by": p.Username}).Info("Catalog imported")
	return n, nil
}
