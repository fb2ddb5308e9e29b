package validate

import (
	"encoding/json"
	"fmt"

	"github.com/dreamcanvas/server/internal/model"
)

const minDescriptionLen = 10

// fieldError carries a client-facing message and classifies as
// model.ErrValidation for errors.Is checks.
type fieldError struct{ msg string }

func (e fieldError) Error() string { return e.msg }
func (e fieldError) Unwrap() error { return model.ErrValidation }

func failf(format string, args ...interface{}) error {
	return fieldError{msg: fmt.Sprintf(format, args...)}
}

// GenerateDreamRequest validates the generate payload, reporting the
// first violated rule.
func GenerateDreamRequest(req model.GenerateDreamRequest) error {
	if err := Description(req.Description); err != nil {
		return err
	}
	if err := NonEmpty("style", req.Style); err != nil {
		return err
	}
	return NonEmpty("mood", req.Mood)
}

// DreamInsert validates the save payload. Server-assigned fields
// (id, user_id, created_at) are not the client's concern and are ignored.
func DreamInsert(d model.Dream) error {
	if err := NonEmpty("title", d.Title); err != nil {
		return err
	}
	if err := Description(d.Description); err != nil {
		return err
	}
	if err := NonEmpty("image_url", d.ImageURL); err != nil {
		return err
	}
	if err := NonEmpty("style", d.Style); err != nil {
		return err
	}
	if err := NonEmpty("mood", d.Mood); err != nil {
		return err
	}
	if len(d.Elements) > 5 {
		return failf("elements exceeds 5 entries")
	}
	return nil
}

// Description enforces the minimum description length.
func Description(v string) error {
	if len(v) < minDescriptionLen {
		return failf("description must be at least %d characters", minDescriptionLen)
	}
	return nil
}

// NonEmpty reports a missing required field.
func NonEmpty(field, v string) error {
	if v == "" {
		return failf("%s is required", field)
	}
	return nil
}

// Bool asserts that a raw JSON value carries a boolean, not null or a
// stringified or numeric stand-in.
func Bool(field string, raw json.RawMessage) (bool, error) {
	var b *bool
	if len(raw) == 0 || json.Unmarshal(raw, &b) != nil || b == nil {
		return false, failf("%s must be a boolean", field)
	}
	return *b, nil
}
