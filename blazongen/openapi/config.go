package openapi

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config carries the document metadata the assembler stamps into the
// generated description.
type Config struct {
	// Title is the API title, e.g. "Fleet Admin API".
	Title string `validate:"required"`

	// Description is the info-level description of the API.
	Description string

	// Contact identifies who maintains the API.
	Contact Contact

	// License names the license the described API is provided under.
	License License

	// Version is the running build's version quadruple.
	Version Version
}

// Contact identifies the API maintainer.
type Contact struct {
	Name  string
	URL   string `validate:"omitempty,url"`
	Email string `validate:"omitempty,email"`
}

// License names the license and where to read it.
type License struct {
	Name string
	URL  string `validate:"omitempty,url"`
}

// Version is the build version quadruple rendered into the document as
// "{major}.{minor}.{revision}.{release}".
type Version struct {
	Major    int `validate:"gte=0"`
	Minor    int `validate:"gte=0"`
	Revision int `validate:"gte=0"`
	Release  int `validate:"gte=0"`
}

// String renders the quadruple.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Revision, v.Release)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config before a build.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid generator config: %w", err)
	}
	return nil
}
