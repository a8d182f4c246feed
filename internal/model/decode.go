package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ParseError reports a CV file that is not valid JSON or does not have the
// CV document shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse cv document: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// Decode validates b against the CV schema and decodes it. Every failure is
// a *ParseError.
func Decode(b []byte) (*CVDocument, error) {
	if !json.Valid(b) {
		return nil, &ParseError{Err: fmt.Errorf("malformed JSON")}
	}
	if err := ValidateJSON(b); err != nil {
		return nil, &ParseError{Err: err}
	}
	var doc CVDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &doc, nil
}

// Encode renders the document as 2-space indented JSON, the export format.
func Encode(doc *CVDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalJSON accepts cv_id as a number or as a numeric string. Older
// dashboard exports wrote the hidden input's string value; "" and null
// both mean unsaved.
func (d *CVDocument) UnmarshalJSON(b []byte) error {
	type plain CVDocument
	aux := struct {
		*plain
		CVID json.RawMessage `json:"cv_id"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	id, err := parseCVID(aux.CVID)
	if err != nil {
		return err
	}
	d.CVID = id
	return nil
}

func parseCVID(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
	} else {
		s = string(raw)
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("cv_id: %w", err)
	}
	return &id, nil
}
