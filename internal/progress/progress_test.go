package progress

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerRegionLines(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, 2)

	p.StartRegion("bremen")
	p.StartHospitals(2)
	p.Hospital(1, 2, "Klinikum A")
	p.Hospital(2, 2, "Klinikum B")
	p.FinishRegion()
	assert.Equal(t, 0.5, p.Fraction())

	p.StartRegion("hamburg")
	p.StartHospitals(0)
	p.FinishRegion()
	assert.Equal(t, 1.0, p.Fraction())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.True(t, strings.HasPrefix(lines[0], "Scraping bremen..."))
		assert.True(t, strings.HasSuffix(lines[0], "1/2"))
		assert.True(t, strings.HasPrefix(lines[1], "Scraping hamburg..."))
		assert.True(t, strings.HasSuffix(lines[1], "2/2"))
	}
}

func TestTrackerSummary(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, 0)

	assert.Equal(t, 0.0, p.Fraction())
	p.Summary("Data saved to %s", "german_hospitals.csv")
	assert.Contains(t, out.String(), "Data saved to german_hospitals.csv")
}

func TestTrackerSpinnerWritesToStderr(t *testing.T) {
	p := New(&bytes.Buffer{}, 1)

	// The terminal check and the frames both use stderr
	assert.Equal(t, os.Stderr, p.spinner.WriterFile)
	assert.Equal(t, os.Stderr, p.spinner.Writer)
}

func TestTrackerSuffixUpdatesAreLocked(t *testing.T) {
	p := New(&bytes.Buffer{}, 1)
	p.StartHospitals(50)
	defer p.FinishRegion()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			p.Hospital(n, 50, fmt.Sprintf("Klinikum %d", n))

			p.spinner.Lock()
			suffix := p.spinner.Suffix
			p.spinner.Unlock()
			assert.Contains(t, suffix, "/50 Klinikum")
		}(i)
	}
	wg.Wait()
}
