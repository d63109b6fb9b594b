package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
	pkgAuth "github.com/ebiblio/storefront/internal/pkg/auth"
	"github.com/ebiblio/storefront/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLibraryForTest(orders *test.OrderRepositoryStub, books *test.BookRepositoryStub) *LibraryUseCase {
	signer := pkgAuth.NewHMACStrategy("library-test-secret", pkgAuth.Options{})
	return NewLibraryUseCase(orders, books, signer, discardLogger(), 200*time.Millisecond, time.Minute)
}

func shelfOrders(createdAt time.Time) []model.Order {
	return []model.Order{
		{
			ID: 1, UserID: 7, Number: "AB12CD34", CreatedAt: createdAt,
			Lines: []model.OrderLine{
				{BookID: 10, Kind: model.LineKindRental, Format: model.FormatDigital, RentalDurationDays: 14},
				{BookID: 11, Kind: model.LineKindPurchase, Format: model.FormatPaper},
			},
		},
		{
			ID: 2, UserID: 7, Number: "EF56AB78", CreatedAt: createdAt,
			Lines: []model.OrderLine{
				{BookID: 12, Kind: model.LineKindPurchase, Format: model.FormatDigital, PDFURL: "https://cdn/shelf-12.pdf"},
			},
		},
	}
}

func TestShelfSkipsPhysicalPurchases(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	orders := &test.OrderRepositoryStub{Orders: shelfOrders(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))}
	books := &test.BookRepositoryStub{Books: map[int64]*model.Book{}}

	items, err := newLibraryForTest(orders, books).Shelf(context.Background(), 7, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 digital items, got %d", len(items))
	}
	for _, item := range items {
		if item.BookID == 11 {
			t.Fatal("physical purchase must not reach the shelf")
		}
	}
}

func TestShelfBackfillsMissingLocators(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	orders := &test.OrderRepositoryStub{Orders: shelfOrders(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))}
	books := &test.BookRepositoryStub{Books: map[int64]*model.Book{
		10: {ID: 10, PDFURL: "https://cdn/catalog-10.pdf"},
	}}

	items, err := newLibraryForTest(orders, books).Shelf(context.Background(), 7, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byBook := make(map[int64]model.LibraryItem, len(items))
	for _, item := range items {
		byBook[item.BookID] = item
	}

	if byBook[10].PDFURL != "https://cdn/catalog-10.pdf" {
		t.Fatalf("expected backfilled locator, got %q", byBook[10].PDFURL)
	}
	if byBook[12].PDFURL != "https://cdn/shelf-12.pdf" {
		t.Fatalf("embedded locator must survive, got %q", byBook[12].PDFURL)
	}
}

func TestShelfBackfillNeverOverwrites(t *testing.T) {
	now := time.Now()
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{
			ID: 1, UserID: 7, CreatedAt: now,
			Lines: []model.OrderLine{
				{BookID: 5, Kind: model.LineKindRental, PDFURL: "A"},
			},
		},
	}}
	books := &test.BookRepositoryStub{Books: map[int64]*model.Book{
		5: {ID: 5, PDFURL: "B"},
	}}

	items, err := newLibraryForTest(orders, books).Shelf(context.Background(), 7, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].PDFURL != "A" {
		t.Fatalf("catalog lookup must not replace an embedded locator, got %q", items[0].PDFURL)
	}
}

func TestShelfBackfillIsolatesFailures(t *testing.T) {
	now := time.Now()
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{
			ID: 1, UserID: 7, CreatedAt: now,
			Lines: []model.OrderLine{
				{BookID: 100, Kind: model.LineKindRental},
				{BookID: 200, Kind: model.LineKindRental},
			},
		},
	}}
	books := &test.BookRepositoryStub{GetByIDFn: func(_ context.Context, id int64) (*model.Book, error) {
		if id == 100 {
			return nil, errors.New("catalog down")
		}
		return &model.Book{ID: id, PDFURL: "https://cdn/ok.pdf"}, nil
	}}

	items, err := newLibraryForTest(orders, books).Shelf(context.Background(), 7, now)
	if err != nil {
		t.Fatalf("a failed lookup must not fail the batch: %v", err)
	}

	for _, item := range items {
		switch item.BookID {
		case 100:
			if item.PDFURL != "" {
				t.Fatalf("failed lookup left a locator %q", item.PDFURL)
			}
		case 200:
			if item.PDFURL != "https://cdn/ok.pdf" {
				t.Fatalf("expected locator for healthy lookup, got %q", item.PDFURL)
			}
		}
	}
}

func TestShelfBackfillOneLookupPerDistinctBook(t *testing.T) {
	now := time.Now()
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{ID: 1, UserID: 7, CreatedAt: now, Lines: []model.OrderLine{{BookID: 42, Kind: model.LineKindRental}}},
		{ID: 2, UserID: 7, CreatedAt: now, Lines: []model.OrderLine{{BookID: 42, Kind: model.LineKindRental}}},
	}}

	var calls atomic.Int64
	books := &test.BookRepositoryStub{GetByIDFn: func(_ context.Context, id int64) (*model.Book, error) {
		calls.Add(1)
		return &model.Book{ID: id, PDFURL: "https://cdn/shared.pdf"}, nil
	}}

	items, err := newLibraryForTest(orders, books).Shelf(context.Background(), 7, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one lookup for the shared book, got %d", got)
	}
	for _, item := range items {
		if item.PDFURL != "https://cdn/shared.pdf" {
			t.Fatalf("every item of the shared book gets the locator, got %q", item.PDFURL)
		}
	}
}

func TestShelfSynthesizesDataURI(t *testing.T) {
	now := time.Now()
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{ID: 1, UserID: 7, CreatedAt: now, Lines: []model.OrderLine{{BookID: 8, Kind: model.LineKindRental}}},
	}}
	books := &test.BookRepositoryStub{Books: map[int64]*model.Book{
		8: {ID: 8, PDFData: "JVBERi0xLjQ="},
	}}

	items, err := newLibraryForTest(orders, books).Shelf(context.Background(), 7, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "data:application/pdf;base64,JVBERi0xLjQ="; items[0].PDFURL != want {
		t.Fatalf("expected synthesized data URI, got %q", items[0].PDFURL)
	}
}

func TestOpenRefusesExpiredEvenWithLocator(t *testing.T) {
	orderedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{
			ID: 3, UserID: 7, CreatedAt: orderedAt,
			Lines: []model.OrderLine{
				{BookID: 4, Kind: model.LineKindRental, RentalDurationDays: 14, PDFURL: "https://cdn/whatever.pdf"},
			},
		},
	}}
	books := &test.BookRepositoryStub{GetByIDFn: func(context.Context, int64) (*model.Book, error) {
		t.Fatal("expired items must be refused before any lookup")
		return nil, nil
	}}

	if _, err := newLibraryForTest(orders, books).Open(context.Background(), 7, "3-4", now); !errors.Is(err, domainErrors.ErrAccessExpired) {
		t.Fatalf("expected ErrAccessExpired, got %v", err)
	}
}

func TestOpenDeclinesMissingLocator(t *testing.T) {
	now := time.Now()
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{ID: 3, UserID: 7, CreatedAt: now, Lines: []model.OrderLine{{BookID: 4, Kind: model.LineKindRental}}},
	}}
	books := &test.BookRepositoryStub{Books: map[int64]*model.Book{4: {ID: 4}}}

	if _, err := newLibraryForTest(orders, books).Open(context.Background(), 7, "3-4", now); !errors.Is(err, domainErrors.ErrContentUnavailable) {
		t.Fatalf("expected ErrContentUnavailable, got %v", err)
	}
}

func TestOpenIssuesBoundGrant(t *testing.T) {
	now := time.Now()
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{
			ID: 3, UserID: 7, CreatedAt: now,
			Lines: []model.OrderLine{
				{BookID: 4, Kind: model.LineKindRental, RentalDurationDays: 14, PDFURL: "https://cdn/book.pdf"},
			},
		},
	}}
	uc := newLibraryForTest(orders, &test.BookRepositoryStub{})

	grant, err := uc.Open(context.Background(), 7, "3-4", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grant.URL != "https://cdn/book.pdf" {
		t.Fatalf("unexpected locator %q", grant.URL)
	}
	if grant.ItemID != "3-4" {
		t.Fatalf("unexpected item id %q", grant.ItemID)
	}
	if err := uc.Redeem(grant.Token, "3-4"); err != nil {
		t.Fatalf("grant must redeem for its own item: %v", err)
	}
	if err := uc.Redeem(grant.Token, "3-5"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("grant must be bound to one item, got %v", err)
	}
}

func TestOpenHidesForeignOrders(t *testing.T) {
	now := time.Now()
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{ID: 3, UserID: 8, CreatedAt: now, Lines: []model.OrderLine{{BookID: 4, Kind: model.LineKindRental, PDFURL: "x"}}},
	}}

	if _, err := newLibraryForTest(orders, &test.BookRepositoryStub{}).Open(context.Background(), 7, "3-4", now); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign order, got %v", err)
	}
}

func TestOpenRejectsMalformedItemID(t *testing.T) {
	uc := newLibraryForTest(&test.OrderRepositoryStub{}, &test.BookRepositoryStub{})
	for _, id := range []string{"", "abc", "1", "1-x", "x-1"} {
		if _, err := uc.Open(context.Background(), 7, id, time.Now()); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for %q, got %v", id, err)
		}
	}
}

func TestShelfStatusLabelsStayFrench(t *testing.T) {
	orderedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{
			ID: 1, UserID: 7, CreatedAt: orderedAt,
			Lines: []model.OrderLine{
				{BookID: 1, Kind: model.LineKindPurchase, Format: model.FormatDigital, PDFURL: "a"},
				{BookID: 2, Kind: model.LineKindRental, RentalDurationDays: 14, PDFURL: "b"},
			},
		},
	}}

	items, err := newLibraryForTest(orders, &test.BookRepositoryStub{}).Shelf(context.Background(), 7, orderedAt.Add(9*24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, item := range items {
		switch item.BookID {
		case 1:
			if item.StatusLabel != model.LabelPermanent {
				t.Fatalf("unexpected purchase label %q", item.StatusLabel)
			}
		case 2:
			if !strings.HasPrefix(item.StatusLabel, "Accès autorisé · ") {
				t.Fatalf("unexpected rental label %q", item.StatusLabel)
			}
		}
	}
}
