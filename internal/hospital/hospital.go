package hospital

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/krankenhaus/internal/browser"
	"github.com/go-scripts/krankenhaus/pkg/common"
)

// Selectors of the contact anchors on a hospital detail page
const (
	PhoneSelector   = `a[href^="tel:"]`
	EmailSelector   = `a[href^="mailto:"]`
	WebsiteSelector = `a.url[href]:not([href=""])`
)

// Fetcher extracts the contact details of a hospital
type Fetcher struct {
	page         browser.Page
	baseURL      string
	fieldTimeout time.Duration
}

// NewFetcher creates a Fetcher that waits at most fieldTimeout for each field
func NewFetcher(page browser.Page, baseURL string, fieldTimeout time.Duration) *Fetcher {
	return &Fetcher{
		page:         page,
		baseURL:      strings.TrimRight(baseURL, "/"),
		fieldTimeout: fieldTimeout,
	}
}

// Fetch loads the detail page of stub and reads phone, email and website.
// Fields that cannot be read are set to common.NotFound.
func (f *Fetcher) Fetch(ctx context.Context, stub common.HospitalStub) common.HospitalRecord {
	detailURL := f.baseURL + stub.Path

	if err := f.page.Navigate(ctx, detailURL); err != nil {
		// The tab may still show the previous hospital, so nothing is read from it
		log.Debug("Detail page navigation failed", "hospital", stub.Name, "url", detailURL, "error", err)
		return common.HospitalRecord{
			Name:    stub.Name,
			Phone:   common.NotFound,
			Email:   common.NotFound,
			Website: common.NotFound,
		}
	}

	return common.HospitalRecord{
		Name:    stub.Name,
		Phone:   f.field(ctx, stub, PhoneSelector).OrNotFound(),
		Email:   f.field(ctx, stub, EmailSelector).OrNotFound(),
		Website: f.field(ctx, stub, WebsiteSelector).OrNotFound(),
	}
}

// field reads the text of the first element matching selector
func (f *Fetcher) field(ctx context.Context, stub common.HospitalStub, selector string) common.Field {
	text, err := f.page.FirstText(ctx, selector, f.fieldTimeout)
	if err != nil {
		log.Debug("Field not found", "hospital", stub.Name, "selector", selector, "error", err)
		return common.Field{}
	}
	return common.FoundField(text)
}
