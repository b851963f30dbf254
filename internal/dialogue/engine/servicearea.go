package engine

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"exterior_chat_backend/platform/apperr"
)

// Sentinel gate failures. Malformed means no 5-digit run was found at all;
// out-of-area means a well-formed ZIP we do not serve.
var (
	ErrMalformedZip     = apperr.Validation("no 5-digit ZIP code found")
	ErrOutOfServiceArea = apperr.Validation("ZIP code outside the service area")
)

var zipPattern = regexp.MustCompile(`\b\d{5}\b`)

// ServiceArea is the set of ZIP codes we accept work in.
type ServiceArea struct {
	zips map[string]struct{}
}

// defaultZips covers the Seattle eastside territory.
var defaultZips = []string{
	"98004", "98005", "98006", "98007", "98008",
	"98011", "98012", "98021", "98026", "98027",
	"98028", "98029", "98033", "98034", "98036",
	"98037", "98038", "98039", "98040", "98043",
	"98052", "98053", "98056", "98059", "98072",
	"98074", "98075", "98077", "98092", "98155",
}

// NewServiceArea builds the default registry.
func NewServiceArea() *ServiceArea {
	return newServiceArea(defaultZips)
}

// LoadServiceArea builds a registry from a YAML file with a top-level "zips"
// list. An empty path falls back to the defaults.
func LoadServiceArea(path string) (*ServiceArea, error) {
	if path == "" {
		return NewServiceArea(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading service area file: %w", err)
	}

	var doc struct {
		Zips []string `yaml:"zips"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing service area file: %w", err)
	}
	if len(doc.Zips) == 0 {
		return nil, fmt.Errorf("service area file %s lists no zips", path)
	}

	return newServiceArea(doc.Zips), nil
}

func newServiceArea(zips []string) *ServiceArea {
	set := make(map[string]struct{}, len(zips))
	for _, z := range zips {
		set[z] = struct{}{}
	}
	return &ServiceArea{zips: set}
}

// ExtractZIP pulls the first standalone 5-digit run out of the text.
func ExtractZIP(text string) (string, bool) {
	zip := zipPattern.FindString(text)
	return zip, zip != ""
}

// Check extracts a ZIP from the text and verifies it against the registry.
func (a *ServiceArea) Check(text string) (string, error) {
	zip, ok := ExtractZIP(text)
	if !ok {
		return "", ErrMalformedZip
	}
	if _, served := a.zips[zip]; !served {
		return zip, ErrOutOfServiceArea
	}
	return zip, nil
}

// Contains reports whether the ZIP is in the registry.
func (a *ServiceArea) Contains(zip string) bool {
	_, ok := a.zips[zip]
	return ok
}

// Size returns the number of registered ZIP codes.
func (a *ServiceArea) Size() int {
	return len(a.zips)
}
