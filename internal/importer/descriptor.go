package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"partsite/internal/catalog"
)

// DescriptorFile is the file name every part directory carries.
const DescriptorFile = "metadata.json"

var (
	// ErrMissingField reports a required descriptor key that is absent or null.
	ErrMissingField = errors.New("missing required field")
	// ErrMalformed reports a descriptor that is not a JSON object of the expected shape.
	ErrMalformed = errors.New("malformed descriptor")
)

// DescriptorError describes why a single descriptor was skipped.
type DescriptorError struct {
	Path string
	Key  catalog.NaturalKey
	Err  error
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("unable to load part %s: %v", e.Key, e.Err)
}

func (e *DescriptorError) Unwrap() error { return e.Err }

type rawDescriptor struct {
	Author      *string   `json:"author"`
	Class       *string   `json:"class"`
	Fits        *[]string `json:"fits"`
	License     *string   `json:"license"`
	Description *string   `json:"description"`
}

// ParseDescriptor decodes descriptor JSON into catalog attributes. All five
// keys are required; unknown keys are ignored. The fits list is normalized.
func ParseDescriptor(data []byte) (catalog.Attributes, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return catalog.Attributes{}, fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}

	var raw rawDescriptor
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return catalog.Attributes{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	missing := func(name string) error {
		return fmt.Errorf("%w: %q", ErrMissingField, name)
	}
	switch {
	case raw.Author == nil:
		return catalog.Attributes{}, missing("author")
	case raw.Class == nil:
		return catalog.Attributes{}, missing("class")
	case raw.Fits == nil:
		return catalog.Attributes{}, missing("fits")
	case raw.License == nil:
		return catalog.Attributes{}, missing("license")
	case raw.Description == nil:
		return catalog.Attributes{}, missing("description")
	}

	return catalog.Attributes{
		Author:      *raw.Author,
		Class:       *raw.Class,
		Fits:        catalog.NormalizeFits(*raw.Fits),
		License:     *raw.License,
		Description: *raw.Description,
	}, nil
}

// LoadDescriptor reads and parses the descriptor at path.
func LoadDescriptor(path string) (catalog.Attributes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Attributes{}, fmt.Errorf("read descriptor: %w", err)
	}
	return ParseDescriptor(data)
}
