package model

import "time"

// BookFormat tells whether a catalog entry is a paper or a digital edition.
type BookFormat string

const (
	FormatPaper   BookFormat = "papier"
	FormatDigital BookFormat = "numerique"
)

// ParseBookFormat normalizes the free-text format carried by legacy catalog
// records. Anything that is not explicitly digital is treated as paper.
func ParseBookFormat(raw string) BookFormat {
	if raw == string(FormatDigital) {
		return FormatDigital
	}
	return FormatPaper
}

// Book describes a catalog entry.
type Book struct {
	ID          int64
	Title       string
	Author      string
	Description string
	CategoryID  *int64
	Category    string
	Format      BookFormat
	Price       float64
	RentPrice   *float64
	Image       string
	PDFURL      string
	PDFData     string // base64 payload for entries stored without a hosted URL
	Stock       int
	CreatedAt   time.Time
}

// Category groups catalog entries for browsing and admin curation.
type Category struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}

// BookFilter narrows catalog listings.
type BookFilter struct {
	Search     string
	Category   string
	CategoryID *int64
	Format     string
	Sort       string
	Order      string
	Page       int
	Limit      int
}
