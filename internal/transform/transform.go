package transform

import (
	"strings"

	"github.com/go-scripts/krankenhaus/internal/gender"
	"github.com/go-scripts/krankenhaus/pkg/common"
)

// Salutations written to the Anrede column
const (
	Herr           = "Herr"
	Frau           = "Frau"
	DamenUndHerren = "Damen und Herren"
)

// UnknownName is the cleaned name of a hospital name without usable tokens
const UnknownName = "unknown"

// titleTokens are dropped from names before picking the first name
var titleTokens = map[string]bool{
	"Dr.":   true,
	"Prof.": true,
	"Dipl.": true,
	"MBA":   true,
	"PhD":   true,
	"BSc":   true,
	"MSc":   true,
}

// FlipEmail reverses the character order of an email address.
// The directory publishes addresses reversed to keep harvesters away.
func FlipEmail(email string) string {
	runes := []rune(email)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// CleanName strips titles and degrees and returns the first remaining word
func CleanName(name string) string {
	for _, token := range strings.Fields(name) {
		if !titleTokens[token] {
			return token
		}
	}
	return UnknownName
}

// Salutation maps a gender classification to a German salutation
func Salutation(g gender.Gender) string {
	switch g {
	case gender.Male, gender.MostlyMale:
		return Herr
	case gender.Female, gender.MostlyFemale:
		return Frau
	default:
		return DamenUndHerren
	}
}

// Transformer post-processes the scraped hospital table
type Transformer struct {
	classifier gender.Classifier
}

// New creates a Transformer using classifier for the salutation guess
func New(classifier gender.Classifier) *Transformer {
	return &Transformer{classifier: classifier}
}

// Anrede guesses the salutation for a hospital name
func (t *Transformer) Anrede(name string) string {
	return Salutation(t.classifier.Gender(CleanName(name)))
}

// Apply returns a copy of records with the email flipped and Anrede set
func (t *Transformer) Apply(records []common.HospitalRecord) []common.HospitalRecord {
	out := make([]common.HospitalRecord, len(records))
	for i, r := range records {
		r.Email = FlipEmail(r.Email)
		r.Anrede = t.Anrede(r.Name)
		out[i] = r
	}
	return out
}
