// Package profile holds the static content rendered on the portfolio page.
package profile

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

type Profile struct {
	Name         string     `yaml:"name"`
	Tagline      string     `yaml:"tagline"`
	Location     string     `yaml:"location"`
	Email        string     `yaml:"email"`
	Phone        string     `yaml:"phone"`
	Image        string     `yaml:"image"`
	About        string     `yaml:"about"`
	Tech         []string   `yaml:"tech"`
	Achievements []string   `yaml:"achievements"`
	Experience   []Position `yaml:"experience"`
	Projects     []Project  `yaml:"projects"`
	Links        []Link     `yaml:"links"`
}

type Position struct {
	Title      string   `yaml:"title"`
	Company    string   `yaml:"company"`
	Period     string   `yaml:"period"`
	Location   string   `yaml:"location"`
	Highlights []string `yaml:"highlights"`
}

type Project struct {
	Title      string   `yaml:"title"`
	Summary    string   `yaml:"summary"`
	Highlights []string `yaml:"highlights"`
}

type Link struct {
	Label    string `yaml:"label"`
	URL      string `yaml:"url"`
	External bool   `yaml:"external"`
}

// Load returns the embedded profile.
func Load() (*Profile, error) {
	return Parse(defaultProfile)
}

// MustLoad is Load that panics on a malformed embedded profile.
func MustLoad() *Profile {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

// Parse decodes a profile document. Name and email are required.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile: decode: %w", err)
	}
	if p.Name == "" {
		return nil, errors.New("profile: name is required")
	}
	if p.Email == "" {
		return nil, errors.New("profile: email is required")
	}
	return &p, nil
}
