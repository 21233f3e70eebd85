package crawler

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/krankenhaus/internal/browser"
	"github.com/go-scripts/krankenhaus/internal/gender"
	"github.com/go-scripts/krankenhaus/internal/hospital"
	"github.com/go-scripts/krankenhaus/internal/progress"
	"github.com/go-scripts/krankenhaus/internal/queue"
	"github.com/go-scripts/krankenhaus/internal/region"
	"github.com/go-scripts/krankenhaus/internal/transform"
	"github.com/go-scripts/krankenhaus/internal/writer"
	"github.com/go-scripts/krankenhaus/pkg/common"
)

// Crawler runs the scrape: every region, every hospital, then transform and export
type Crawler struct {
	config      common.Configuration
	queue       *queue.Queue
	lister      *region.Lister
	fetcher     *hospital.Fetcher
	transformer *transform.Transformer
	sinks       []writer.Sink
	progress    *progress.Tracker
	release     func()
}

// New creates a Crawler that drives page. release is called once scraping
// is over, before the table is transformed; it may be nil.
func New(config common.Configuration, page browser.Page, release func(), out io.Writer) *Crawler {
	q := queue.New(config.Regions...)

	sinks := []writer.Sink{writer.NewCSVWriter(config.OutputFile)}
	if config.DBPath != "" {
		sinks = append(sinks, writer.NewSQLiteWriter(config.DBPath))
	}

	return &Crawler{
		config:      config,
		queue:       q,
		lister:      region.NewLister(page, config.BaseURL, config.ListingDelay),
		fetcher:     hospital.NewFetcher(page, config.BaseURL, config.FieldTimeout),
		transformer: transform.New(gender.NewDetector()),
		sinks:       sinks,
		progress:    progress.New(out, q.Total()),
		release:     release,
	}
}

// Run scrapes all configured regions and writes the transformed table to
// every sink. Nothing is written when ctx is cancelled before the export.
func (c *Crawler) Run(ctx context.Context) ([]common.HospitalRecord, error) {
	records, err := c.scrape(ctx)
	c.releaseBrowser()
	if err != nil {
		return nil, err
	}

	records = c.transformer.Apply(records)

	for _, sink := range c.sinks {
		if err := sink.Write(ctx, records); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", sink.Name(), err)
		}
		log.Debug("Table written", "sink", sink.Name(), "rows", len(records))
	}

	c.progress.Summary("Data saved to %s", c.config.OutputFile)
	return records, nil
}

// scrape collects one record per listed hospital, region by region
func (c *Crawler) scrape(ctx context.Context) ([]common.HospitalRecord, error) {
	var records []common.HospitalRecord

	for {
		regionID, ok := c.queue.Next()
		if !ok {
			break
		}

		c.progress.StartRegion(regionID)
		stubs := c.lister.List(ctx, regionID)

		c.progress.StartHospitals(len(stubs))
		for i, stub := range stubs {
			records = append(records, c.fetcher.Fetch(ctx, stub))
			c.progress.Hospital(i+1, len(stubs), stub.Name)
		}
		c.progress.FinishRegion()

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scrape interrupted in %s: %w", regionID, err)
		}
		log.Debug("Region done", "region", regionID, "hospitals", len(stubs), "total", len(records))
	}

	return records, nil
}

func (c *Crawler) releaseBrowser() {
	if c.release != nil {
		c.release()
		c.release = nil
	}
}
