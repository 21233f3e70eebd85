package queue

// Queue is an ordered queue of region identifiers. An identifier is only
// accepted once, so a region listed twice in the configuration is scraped once.
type Queue struct {
	regions []string
	seen    map[string]bool
}

// New creates a Queue holding regions in order
func New(regions ...string) *Queue {
	q := &Queue{
		regions: make([]string, 0, len(regions)),
		seen:    make(map[string]bool),
	}
	for _, r := range regions {
		q.Add(r)
	}
	return q
}

// Add appends region unless it was added before
func (q *Queue) Add(region string) bool {
	if region == "" || q.seen[region] {
		return false
	}

	q.seen[region] = true
	q.regions = append(q.regions, region)
	return true
}

// Next returns the next region to process
func (q *Queue) Next() (string, bool) {
	if len(q.regions) == 0 {
		return "", false
	}

	region := q.regions[0]
	q.regions = q.regions[1:]
	return region, true
}

// Len returns the number of regions still queued
func (q *Queue) Len() int {
	return len(q.regions)
}

// Total returns the number of distinct regions ever added
func (q *Queue) Total() int {
	return len(q.seen)
}
