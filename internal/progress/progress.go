package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

var summaryStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("86")).
	Bold(true)

// Tracker reports scraping progress: one line per region on out and a
// spinner on stderr while the region's hospitals are fetched.
type Tracker struct {
	out          io.Writer
	bar          progress.Model
	spinner      *spinner.Spinner
	totalRegions int
	doneRegions  int
}

// New creates a Tracker for totalRegions regions writing to out
func New(out io.Writer, totalRegions int) *Tracker {
	return &Tracker{
		out:          out,
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
		spinner:      spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriterFile(os.Stderr)),
		totalRegions: totalRegions,
	}
}

// StartRegion prints the progress line of region
func (p *Tracker) StartRegion(region string) {
	fmt.Fprintf(p.out, "Scraping %s... %s %d/%d\n", region, p.bar.ViewAs(p.Fraction()), p.doneRegions+1, p.totalRegions)
}

// StartHospitals starts the spinner for a region with count hospitals
func (p *Tracker) StartHospitals(count int) {
	if count == 0 {
		return
	}
	p.setSuffix(fmt.Sprintf(" 0/%d hospitals", count))
	p.spinner.Start()
}

// Hospital updates the spinner after hospital n of count was fetched
func (p *Tracker) Hospital(n, count int, name string) {
	p.setSuffix(fmt.Sprintf(" %d/%d %s", n, count, name))
}

// setSuffix updates the spinner text; the spinner goroutine reads it under the same lock
func (p *Tracker) setSuffix(suffix string) {
	p.spinner.Lock()
	defer p.spinner.Unlock()
	p.spinner.Suffix = suffix
}

// FinishRegion stops the spinner and counts the region as done
func (p *Tracker) FinishRegion() {
	p.spinner.Stop()
	p.doneRegions++
}

// Fraction returns the share of regions completed
func (p *Tracker) Fraction() float64 {
	if p.totalRegions == 0 {
		return 0
	}
	return float64(p.doneRegions) / float64(p.totalRegions)
}

// Summary prints the closing line of the run
func (p *Tracker) Summary(format string, args ...any) {
	fmt.Fprintln(p.out, summaryStyle.Render(fmt.Sprintf(format, args...)))
}
