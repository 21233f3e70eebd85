// Package gender guesses the gender of a first name from a small embedded
// table of common German first names. Names outside that table, including
// many common non-German first names such as John or Mohammed, classify as
// Unknown, which the transform step turns into the "Damen und Herren"
// salutation. LoadDetector accepts a larger table in the same format.
package gender

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Gender is the classification of a first name
type Gender string

const (
	Male         Gender = "male"
	MostlyMale   Gender = "mostly_male"
	Female       Gender = "female"
	MostlyFemale Gender = "mostly_female"
	// Andy marks names used equally for both genders
	Andy    Gender = "andy"
	Unknown Gender = "unknown"
)

//go:embed names.tsv
var defaultNames string

// Classifier guesses the gender of a first name
type Classifier interface {
	Gender(name string) Gender
}

// Detector looks first names up in a table, ignoring case
type Detector struct {
	names map[string]Gender
}

// NewDetector returns a detector over the built-in name table
func NewDetector() *Detector {
	d, err := LoadDetector(strings.NewReader(defaultNames))
	if err != nil {
		// The embedded table is part of the binary
		panic(err)
	}
	return d
}

// LoadDetector reads a table of "name<TAB>classification" lines.
// Blank lines and lines starting with # are skipped.
func LoadDetector(r io.Reader) (*Detector, error) {
	d := &Detector{names: make(map[string]Gender)}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		name, class, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected name and classification", line)
		}

		g := Gender(strings.TrimSpace(class))
		switch g {
		case Male, MostlyMale, Female, MostlyFemale, Andy:
		default:
			return nil, fmt.Errorf("line %d: unknown classification %q", line, class)
		}
		d.names[fold(name)] = g
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read name table: %w", err)
	}

	return d, nil
}

// Gender classifies name. Hyphenated names that are not in the table are
// classified by their first part.
func (d *Detector) Gender(name string) Gender {
	key := fold(name)
	if key == "" {
		return Unknown
	}
	if g, ok := d.names[key]; ok {
		return g
	}

	if first, _, ok := strings.Cut(key, "-"); ok && first != "" {
		if g, ok := d.names[first]; ok {
			return g
		}
	}
	return Unknown
}

func fold(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}
