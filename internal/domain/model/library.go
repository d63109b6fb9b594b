package model

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultRentalDays applies when a rental line carries no explicit duration.
	DefaultRentalDays = 14
	// PermanentWindowDays is the sentinel window for outright digital
	// purchases, wide enough that day-count math never branches on "no end".
	PermanentWindowDays = 3650

	// Status labels shown to the user, kept in French as the storefront is.
	LabelPermanent = "Accès permanent"
	LabelExpired   = "Accès expiré"
)

// AccessWindow is the fully resolved interval during which a digital holding
// is readable. Both bounds are always populated.
type AccessWindow struct {
	Start time.Time
	End   time.Time
}

// DaysLeft returns ceil((End-now)/24h). Negative once the window has passed.
func (w AccessWindow) DaysLeft(now time.Time) int {
	return int(math.Ceil(w.End.Sub(now).Hours() / 24))
}

// ResolveAccessWindow normalizes the scattered optional rental fields of a
// line into a populated window. An explicit rental end wins; otherwise the
// window is start plus duration, where start falls back from the line's
// rental start to the owning order's creation time to now.
func ResolveAccessWindow(line OrderLine, orderedAt, now time.Time) AccessWindow {
	start := now
	switch {
	case line.RentalStartAt != nil:
		start = *line.RentalStartAt
	case !orderedAt.IsZero():
		start = orderedAt
	}

	days := PermanentWindowDays
	if line.Kind.IsRental() {
		days = line.RentalDurationDays
		if days <= 0 {
			days = DefaultRentalDays
		}
	}

	end := start.Add(time.Duration(days) * 24 * time.Hour)
	if line.Kind.IsRental() && line.RentalEndAt != nil {
		end = *line.RentalEndAt
	}

	return AccessWindow{Start: start, End: end}
}

// LibraryItem is the per-render view of one digital line's access status.
// Instances are derived fresh from order data on every request and have no
// identity beyond the current pass.
type LibraryItem struct {
	ID          string
	OrderNumber string
	BookID      int64
	Title       string
	Author      string
	Image       string
	Kind        LineKind
	Window      AccessWindow
	DaysLeft    int
	Expired     bool
	StatusLabel string
	PDFURL      string
}

// NewLibraryItem builds the derived view for a digital line at the given
// wall-clock instant. Callers must not cache DaysLeft or Expired across
// renders.
func NewLibraryItem(order Order, line OrderLine, now time.Time) LibraryItem {
	window := ResolveAccessWindow(line, order.CreatedAt, now)
	daysLeft := window.DaysLeft(now)
	expired := line.Kind.IsRental() && daysLeft < 0

	label := LabelPermanent
	if line.Kind.IsRental() {
		if expired {
			label = LabelExpired
		} else {
			label = fmt.Sprintf("Accès autorisé · %d j restants", daysLeft)
		}
	}

	pdfURL := line.PDFURL
	if pdfURL == "" {
		pdfURL = line.Book.PDFURL
	}

	return LibraryItem{
		ID:          fmt.Sprintf("%d-%d", order.ID, line.BookID),
		OrderNumber: order.Number,
		BookID:      line.BookID,
		Title:       line.Book.Title,
		Author:      line.Book.Author,
		Image:       line.Book.Image,
		Kind:        line.Kind,
		Window:      window,
		DaysLeft:    daysLeft,
		Expired:     expired,
		StatusLabel: label,
		PDFURL:      pdfURL,
	}
}

// IsDigital reports whether a line belongs on the digital shelf: every
// rental does, and so does any outright purchase of a digital edition.
// Physical purchases never appear.
func (l OrderLine) IsDigital() bool {
	return l.Kind.IsRental() || l.Format == FormatDigital
}

// ContentGrant is a short-lived, signed permission to read one digital
// holding. The token is bound to the shelf item and expires on its own; no
// teardown call exists.
type ContentGrant struct {
	ItemID    string
	URL       string
	Token     string
	ExpiresAt time.Time
}
