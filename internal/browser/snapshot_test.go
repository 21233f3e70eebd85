package browser

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><head>
<script>var other = 1;</script>
<script>
  var locations = [{"name": "Klinikum A", "path": "/a", "lat": 53.1}, {"name": "Dr. Praxis B", "path": "/b"}];
  initMap(locations);
</script>
</head><body></body></html>`

const detailHTML = `<html><body>
<a href="tel:+49421123">  0421 123  </a>
<a href="mailto:ed.a-mukinilk@ofni">ed.a-mukinilk@ofni</a>
<a class="btn url" href="https://klinikum-a.de">www.klinikum-a.de</a>
</body></html>`

type location struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func TestSnapshotFile(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://host/app/suche/bundesland/bremen", want: "app/suche/bundesland/bremen.html"},
		{url: "https://host/a/", want: "a.html"},
		{url: "https://host", want: "index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := SnapshotFile(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshotPageScriptValue(t *testing.T) {
	fsys := fstest.MapFS{
		"list.html":   {Data: []byte(listingHTML)},
		"empty.html":  {Data: []byte(`<html><script>var x = 2;</script></html>`)},
		"broken.html": {Data: []byte(`<html><script>var locations = {oops;</script></html>`)},
		"object.html": {Data: []byte(`<html><script>var locations = {"name": "x"};</script></html>`)},
	}
	page := NewSnapshotPage(fsys)
	ctx := context.Background()

	require.NoError(t, page.Navigate(ctx, "https://host/list"))
	var got []location
	require.NoError(t, page.ScriptValue(ctx, "locations", &got))
	assert.Equal(t, []location{{"Klinikum A", "/a"}, {"Dr. Praxis B", "/b"}}, got)

	for _, name := range []string{"empty", "broken", "object"} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, page.Navigate(ctx, "https://host/"+name))
			var out []location
			err := page.ScriptValue(ctx, "locations", &out)
			assert.ErrorIs(t, err, ErrExtraction)
		})
	}
}

func TestSnapshotPageFirstText(t *testing.T) {
	page := NewSnapshotPage(fstest.MapFS{"a.html": {Data: []byte(detailHTML)}})
	ctx := context.Background()
	require.NoError(t, page.Navigate(ctx, "https://host/a"))

	text, err := page.FirstText(ctx, `a[href^="tel:"]`, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "0421 123", text)

	text, err = page.FirstText(ctx, `a.url[href]:not([href=""])`, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "www.klinikum-a.de", text)

	_, err = page.FirstText(ctx, `a[href^="fax:"]`, time.Second)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotPageMissingFile(t *testing.T) {
	page := NewSnapshotPage(fstest.MapFS{})
	ctx := context.Background()

	assert.Error(t, page.Navigate(ctx, "https://host/missing"))

	// A failed navigation leaves no document behind
	var out []location
	assert.ErrorIs(t, page.ScriptValue(ctx, "locations", &out), ErrExtraction)
	_, err := page.FirstText(ctx, "a", time.Second)
	assert.ErrorIs(t, err, ErrNotFound)
}
