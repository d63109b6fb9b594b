package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
	"github.com/ebiblio/storefront/internal/domain/repository"
	pkgAuth "github.com/ebiblio/storefront/internal/pkg/auth"
)

// LibraryUseCase derives the digital shelf from order history and gates
// reading access to its content.
type LibraryUseCase struct {
	orders repository.OrderRepository
	books  repository.BookRepository
	grants pkgAuth.GrantSigner
	logger *slog.Logger

	lookupTimeout time.Duration
	grantTTL      time.Duration
}

// NewLibraryUseCase constructs LibraryUseCase.
func NewLibraryUseCase(orders repository.OrderRepository, books repository.BookRepository, grants pkgAuth.GrantSigner, logger *slog.Logger, lookupTimeout, grantTTL time.Duration) *LibraryUseCase {
	return &LibraryUseCase{
		orders:        orders,
		books:         books,
		grants:        grants,
		logger:        logger,
		lookupTimeout: lookupTimeout,
		grantTTL:      grantTTL,
	}
}

// Shelf builds the user's digital shelf at the given instant. Every rental
// and every digital purchase across all orders yields one item; physical
// purchases are skipped. Items whose stored snapshot lacks a content locator
// are backfilled from the catalog before returning.
func (u *LibraryUseCase) Shelf(ctx context.Context, userID int64, now time.Time) ([]model.LibraryItem, error) {
	orders, err := u.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]model.LibraryItem, 0)
	for _, order := range orders {
		for _, line := range order.Lines {
			if !line.IsDigital() {
				continue
			}
			items = append(items, model.NewLibraryItem(order, line, now))
		}
	}

	u.backfillLocators(ctx, items)
	return items, nil
}

// backfillLocators looks up the catalog for every distinct book whose items
// miss a locator, concurrently, one lookup per book. A failed or slow lookup
// affects only its own items; locators already present are never replaced.
func (u *LibraryUseCase) backfillLocators(ctx context.Context, items []model.LibraryItem) {
	missing := make(map[int64][]int)
	for i, item := range items {
		if item.PDFURL != "" || item.BookID == 0 {
			continue
		}
		missing[item.BookID] = append(missing[item.BookID], i)
	}
	if len(missing) == 0 {
		return
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for bookID, indexes := range missing {
		wg.Add(1)
		go func(bookID int64, indexes []int) {
			defer wg.Done()

			lookupCtx, cancel := context.WithTimeout(ctx, u.lookupTimeout)
			defer cancel()

			locator, err := u.lookupLocator(lookupCtx, bookID)
			if err != nil {
				u.logger.Warn("catalog backfill failed",
					slog.Int64("book", bookID), slog.String("error", err.Error()))
				return
			}
			if locator == "" {
				return
			}

			mu.Lock()
			for _, i := range indexes {
				if items[i].PDFURL == "" {
					items[i].PDFURL = locator
				}
			}
			mu.Unlock()
		}(bookID, indexes)
	}
	wg.Wait()
}

// lookupLocator resolves a readable locator for a catalog entry: the hosted
// URL when one exists, else a data URI synthesized from the stored payload.
func (u *LibraryUseCase) lookupLocator(ctx context.Context, bookID int64) (string, error) {
	book, err := u.books.GetByID(ctx, bookID)
	if err != nil {
		return "", err
	}
	if book.PDFURL != "" {
		return book.PDFURL, nil
	}
	if book.PDFData != "" {
		return "data:application/pdf;base64," + book.PDFData, nil
	}
	return "", nil
}

// Open gates reading access to one shelf item. The access window is checked
// before anything else: an expired rental is refused even when a locator is
// at hand. A missing locator after backfill is declined, never a broken
// read. On success the caller receives the locator plus a one-shot grant.
func (u *LibraryUseCase) Open(ctx context.Context, userID int64, itemID string, now time.Time) (*model.ContentGrant, error) {
	orderID, bookID, err := splitItemID(itemID)
	if err != nil {
		return nil, domainErrors.ErrNotFound
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}

	var line *model.OrderLine
	for i := range order.Lines {
		if order.Lines[i].BookID == bookID && order.Lines[i].IsDigital() {
			line = &order.Lines[i]
			break
		}
	}
	if line == nil {
		return nil, domainErrors.ErrNotFound
	}

	item := model.NewLibraryItem(*order, *line, now)
	if item.Expired {
		return nil, domainErrors.ErrAccessExpired
	}

	locator := item.PDFURL
	if locator == "" && bookID != 0 {
		lookupCtx, cancel := context.WithTimeout(ctx, u.lookupTimeout)
		defer cancel()

		locator, err = u.lookupLocator(lookupCtx, bookID)
		if err != nil {
			u.logger.Warn("locator lookup failed on open",
				slog.String("item", itemID), slog.String("error", err.Error()))
			locator = ""
		}
	}
	if locator == "" {
		return nil, domainErrors.ErrContentUnavailable
	}

	token, err := u.grants.IssueGrant(item.ID, u.grantTTL)
	if err != nil {
		return nil, err
	}

	return &model.ContentGrant{
		ItemID:    item.ID,
		URL:       locator,
		Token:     token,
		ExpiresAt: now.Add(u.grantTTL),
	}, nil
}

// Redeem verifies a previously issued grant against the item it was bound to.
func (u *LibraryUseCase) Redeem(token, itemID string) error {
	subject, err := u.grants.ParseGrant(token)
	if err != nil {
		return domainErrors.ErrForbidden
	}
	if subject != itemID {
		return domainErrors.ErrForbidden
	}
	return nil
}

func splitItemID(itemID string) (orderID, bookID int64, err error) {
	parts := strings.SplitN(itemID, "-", 2)
	if len(parts) != 2 {
		return 0, 0, errors.New("malformed shelf item id")
	}
	if orderID, err = strconv.ParseInt(parts[0], 10, 64); err != nil {
		return 0, 0, fmt.Errorf("malformed shelf item id: %w", err)
	}
	if bookID, err = strconv.ParseInt(parts[1], 10, 64); err != nil {
		return 0, 0, fmt.Errorf("malformed shelf item id: %w", err)
	}
	return orderID, bookID, nil
}
