package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// BIMLink points to an external building-information model
type BIMLink struct {
	Label  string `json:"label" yaml:"label"`
	URL    string `json:"url" yaml:"url"`
	Format string `json:"format,omitempty" yaml:"format"`
}

// Validate requires a label and an absolute http(s) URL
func (l BIMLink) Validate() error {
	if strings.TrimSpace(l.Label) == "" {
		return fmt.Errorf("BIM link label cannot be empty")
	}
	u, err := url.Parse(strings.TrimSpace(l.URL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("BIM link %q needs an http(s) URL", l.Label)
	}
	return nil
}

// ValidateBIMLinks checks every link in order, reporting the first problem
func ValidateBIMLinks(links []BIMLink) error {
	for i, l := range links {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("link %d: %w", i+1, err)
		}
	}
	return nil
}
