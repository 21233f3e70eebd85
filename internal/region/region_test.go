package region

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/go-scripts/krankenhaus/internal/browser"
	"github.com/go-scripts/krankenhaus/pkg/common"
)

func listing(script string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("<html><head><script>" + script + "</script></head><body></body></html>")}
}

func TestListerURL(t *testing.T) {
	l := NewLister(nil, "https://example.org/", time.Second)
	assert.Equal(t, "https://example.org/app/suche/bundesland/bremen", l.URL("bremen"))
}

func TestListerList(t *testing.T) {
	fsys := fstest.MapFS{
		"app/suche/bundesland/bremen.html":  listing(`var locations = [{"name":"Klinikum A","path":"/a"},{"name":"Dr. Praxis B","path":"/b"},{"name":"Klinikum A","path":"/a"}];`),
		"app/suche/bundesland/hamburg.html": listing(`var locations = [];`),
		"app/suche/bundesland/berlin.html":  listing(`var somethingElse = [];`),
		"app/suche/bundesland/bayern.html":  listing(`var locations = [{"name": "broken"`),
		"app/suche/bundesland/hessen.html":  listing(`var locations = [{"name":"Klinikum A","path":"/a"},{"name":"X"}];`),
		"app/suche/bundesland/sachsen.html": listing(`var locations = [{"path":"/a"}];`),
		"app/suche/bundesland/bayern2.html": listing(`var locations = [{"name":"","path":"/a"},{"name":"Klinikum B","path":""}];`),
	}

	l := NewLister(browser.NewSnapshotPage(fsys), "https://example.org", 2*time.Second)
	ctx := context.Background()

	tests := []struct {
		region string
		want   []common.HospitalStub
	}{
		{
			region: "bremen",
			// Duplicates are kept as listed
			want: []common.HospitalStub{
				{Name: "Klinikum A", Path: "/a"},
				{Name: "Dr. Praxis B", Path: "/b"},
				{Name: "Klinikum A", Path: "/a"},
			},
		},
		{region: "hamburg", want: []common.HospitalStub{}},
		{region: "berlin", want: nil},
		{region: "bayern", want: nil},
		{region: "saarland", want: nil},
		// One incomplete entry drops the whole listing
		{region: "hessen", want: nil},
		{region: "sachsen", want: nil},
		{region: "bayern2", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			got := l.List(ctx, tt.region)
			assert.Len(t, got, len(tt.want))
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestListerListCancelled(t *testing.T) {
	fsys := fstest.MapFS{
		"app/suche/bundesland/bremen.html": listing(`var locations = [{"name":"Klinikum A","path":"/a"}];`),
	}
	l := NewLister(browser.NewSnapshotPage(fsys), "https://example.org", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, l.List(ctx, "bremen"))
}
