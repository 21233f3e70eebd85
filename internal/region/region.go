package region

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/krankenhaus/internal/browser"
	"github.com/go-scripts/krankenhaus/pkg/common"
)

// ListingPath is the URL path of a region's hospital listing, without the region
const ListingPath = "/app/suche/bundesland/"

// LocationsVar is the page-global variable holding the listed hospitals
const LocationsVar = "locations"

// Lister reads the hospital stubs of a region listing page
type Lister struct {
	page    browser.Page
	baseURL string
	delay   time.Duration
}

// NewLister creates a Lister. delay is waited after navigation so the page
// can render its client-side data.
func NewLister(page browser.Page, baseURL string, delay time.Duration) *Lister {
	return &Lister{
		page:    page,
		baseURL: strings.TrimRight(baseURL, "/"),
		delay:   delay,
	}
}

// URL returns the listing URL of region
func (l *Lister) URL(region string) string {
	return l.baseURL + ListingPath + region
}

// List returns the hospitals of region in page order.
// Any failure yields an empty list.
func (l *Lister) List(ctx context.Context, region string) []common.HospitalStub {
	listingURL := l.URL(region)

	if err := l.page.Navigate(ctx, listingURL); err != nil {
		log.Debug("Region listing failed", "region", region, "url", listingURL, "error", err)
		return nil
	}

	if err := l.page.Sleep(ctx, l.delay); err != nil {
		log.Debug("Region listing interrupted", "region", region, "error", err)
		return nil
	}

	var stubs []common.HospitalStub
	if err := l.page.ScriptValue(ctx, LocationsVar, &stubs); err != nil {
		log.Debug("No hospital locations on page", "region", region, "url", listingURL, "error", err)
		return nil
	}

	// Entries missing a name or path would load the wrong page
	for i, stub := range stubs {
		if stub.Name == "" || stub.Path == "" {
			log.Debug("Malformed hospital location", "region", region, "index", i, "name", stub.Name, "path", stub.Path)
			return nil
		}
	}

	log.Debug("Region listed", "region", region, "hospitals", len(stubs))
	return stubs
}
