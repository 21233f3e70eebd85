package common

import (
	"time"
)

// NotFound is written in place of a detail field that could not be extracted
const NotFound = "Not found"

// CSVHeader is the column order of the exported hospital table
var CSVHeader = []string{"Hospital Name", "Phone", "Email", "Website", "Anrede"}

// DefaultRegions lists the 16 German federal states in the order they are scraped
var DefaultRegions = []string{
	"bremen", "hamburg", "berlin", "bayern", "baden-wuerttemberg", "saarland",
	"rheinland-pfalz", "hessen", "thueringen", "sachsen", "brandenburg", "sachsen-anhalt",
	"niedersachsen", "nordrhein-westfalen", "schleswig-holstein", "mecklenburg-vorpommern",
}

// HospitalStub is a listing entry pointing at a hospital detail page
type HospitalStub struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Field is the outcome of a single detail lookup
type Field struct {
	Text  string
	Found bool
}

// FoundField wraps extracted text
func FoundField(text string) Field {
	return Field{Text: text, Found: true}
}

// OrNotFound returns the extracted text or the NotFound sentinel
func (f Field) OrNotFound() string {
	if !f.Found {
		return NotFound
	}
	return f.Text
}

// HospitalRecord represents one row of the hospital table
type HospitalRecord struct {
	Name    string `json:"hospital_name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
	Anrede  string `json:"anrede,omitempty"`
}

// Row returns the record's values in CSVHeader order
func (r HospitalRecord) Row() []string {
	return []string{r.Name, r.Phone, r.Email, r.Website, r.Anrede}
}

// Configuration holds the scraper configuration
type Configuration struct {
	BaseURL      string        `yaml:"base_url"`
	Regions      []string      `yaml:"regions"`
	OutputFile   string        `yaml:"output_file"`
	DBPath       string        `yaml:"db_path"`
	ListingDelay time.Duration `yaml:"listing_delay"`
	FieldTimeout time.Duration `yaml:"field_timeout"`
	WindowWidth  int           `yaml:"window_width"`
	WindowHeight int           `yaml:"window_height"`
	Headless     bool          `yaml:"headless"`
	SnapshotDir  string        `yaml:"snapshot_dir"`
}

// DefaultConfiguration returns the settings used when nothing is configured
func DefaultConfiguration() Configuration {
	return Configuration{
		BaseURL:      "https://www.deutsches-krankenhaus-verzeichnis.de",
		Regions:      append([]string(nil), DefaultRegions...),
		OutputFile:   "german_hospitals.csv",
		ListingDelay: 2 * time.Second,
		FieldTimeout: 2 * time.Second,
		WindowWidth:  1920,
		WindowHeight: 1080,
		Headless:     true,
	}
}
