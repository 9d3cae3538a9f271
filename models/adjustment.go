// Package models provides core data structures for the enhancer system.
package models

import "fmt"

// Control bounds shared by every 0-100 adjustment.
const (
	ControlMin      = 0
	ControlMax      = 100
	ControlIdentity = 50 // Value at which an adjustment has no effect
)

// AdjustmentRequest holds the five user-facing picture controls.
//
// Each field is an integer in [0,100] where 50 means "no change". Values
// below 50 decrease the property and values above 50 increase it; the
// native scaling for each field is owned by the filters package.
//
// An AdjustmentRequest is built once from user input and never mutated.
type AdjustmentRequest struct {
	Brightness int `json:"brightness" yaml:"brightness"`
	Contrast   int `json:"contrast" yaml:"contrast"`
	Saturation int `json:"saturation" yaml:"saturation"`
	Sharpen    int `json:"sharpen" yaml:"sharpen"`
	Denoise    int `json:"denoise" yaml:"denoise"`
}

// NeutralAdjustments returns a request with every control at identity.
func NeutralAdjustments() AdjustmentRequest {
	return AdjustmentRequest{
		Brightness: ControlIdentity,
		Contrast:   ControlIdentity,
		Saturation: ControlIdentity,
		Sharpen:    ControlIdentity,
		Denoise:    ControlIdentity,
	}
}

// IsNeutral reports whether every control sits at the identity point.
func (r AdjustmentRequest) IsNeutral() bool {
	return r == NeutralAdjustments()
}

// Fields returns the controls in their canonical order, keyed by flag name.
func (r AdjustmentRequest) Fields() []NamedControl {
	return []NamedControl{
		{Name: "denoise", Value: r.Denoise},
		{Name: "sharpen", Value: r.Sharpen},
		{Name: "brightness", Value: r.Brightness},
		{Name: "contrast", Value: r.Contrast},
		{Name: "saturation", Value: r.Saturation},
	}
}

// NamedControl pairs a control name with its value.
type NamedControl struct {
	Name  string
	Value int
}

// Validate returns one FieldError per control outside [0,100].
func (r AdjustmentRequest) Validate() []FieldError {
	var problems []FieldError
	for _, c := range r.Fields() {
		if c.Value < ControlMin || c.Value > ControlMax {
			problems = append(problems, FieldError{
				Field:    c.Name,
				Value:    c.Value,
				Expected: fmt.Sprintf("integer between %d and %d", ControlMin, ControlMax),
			})
		}
	}
	return problems
}
