package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// SnapshotPage replays saved HTML pages from a file system.
//
// A URL path maps to "<path>.html" relative to the root of fsys, so
// https://host/app/suche/bundesland/bremen is read from
// app/suche/bundesland/bremen.html. Page-global values are read from inline
// <script> assignments of the form `var name = <json>;`.
type SnapshotPage struct {
	fsys fs.FS
	doc  *goquery.Document
}

// NewSnapshotPage creates a page backed by fsys
func NewSnapshotPage(fsys fs.FS) *SnapshotPage {
	return &SnapshotPage{fsys: fsys}
}

// SnapshotFile returns the file that holds the snapshot of rawURL
func SnapshotFile(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	name := strings.Trim(u.Path, "/")
	if name == "" {
		name = "index"
	}
	return name + ".html", nil
}

// Navigate loads the snapshot for url
func (p *SnapshotPage) Navigate(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.doc = nil

	name, err := SnapshotFile(rawURL)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", rawURL, err)
	}

	f, err := p.fsys.Open(name)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", rawURL, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}

	p.doc = doc
	return nil
}

// Sleep only honours cancellation; snapshots need no render time
func (p *SnapshotPage) Sleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

// ScriptValue decodes the JSON assigned to name in an inline script
func (p *SnapshotPage) ScriptValue(ctx context.Context, name string, out any) error {
	if p.doc == nil {
		return fmt.Errorf("%w: %s: no page loaded", ErrExtraction, name)
	}

	assign := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*=\s*`)

	var decodeErr error
	found := false
	p.doc.Find("script").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		src := sel.Text()
		loc := assign.FindStringIndex(src)
		if loc == nil {
			return true
		}

		found = true
		// The decoder stops after the first complete JSON value
		decodeErr = json.NewDecoder(strings.NewReader(src[loc[1]:])).Decode(out)
		return false
	})

	if !found {
		return fmt.Errorf("%w: %s is not defined", ErrExtraction, name)
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: %s: %v", ErrExtraction, name, decodeErr)
	}
	return nil
}

// FirstText returns the trimmed text of the first element matching selector
func (p *SnapshotPage) FirstText(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	if p.doc == nil {
		return "", fmt.Errorf("%w: %s: no page loaded", ErrNotFound, selector)
	}

	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, selector)
	}
	return strings.TrimSpace(sel.Text()), nil
}
