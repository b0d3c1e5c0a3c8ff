package parser

import (
	"math"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

// DefaultNullMarkers returns the text values treated as missing by default.
func DefaultNullMarkers() []string {
	return []string{
		"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
		"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
		"n/a", "nan", "null",
	}
}

// Normalizer maps every missing-value representation of a source to
// models.Null. Empty text and NaN floats are always missing; other text is
// missing when it equals one of the configured markers.
type Normalizer struct {
	markers map[string]struct{}
}

// NewNormalizer creates a Normalizer for the given markers.
func NewNormalizer(markers []string) Normalizer {
	n := Normalizer{markers: make(map[string]struct{}, len(markers))}
	for _, m := range markers {
		n.markers[m] = struct{}{}
	}
	return n
}

// IsNullText reports whether s denotes a missing value.
func (n Normalizer) IsNullText(s string) bool {
	if s == "" {
		return true
	}
	_, ok := n.markers[s]
	return ok
}

// Normalize returns models.Null for missing values and v otherwise.
func (n Normalizer) Normalize(v models.Value) models.Value {
	switch v.Kind() {
	case models.KindString:
		s, _ := v.AsString()
		if n.IsNullText(s) {
			return models.Null
		}
	case models.KindFloat:
		f, _ := v.AsFloat()
		if math.IsNaN(f) {
			return models.Null
		}
	}
	return v
}

// NormalizeRow rewrites every missing value of r to models.Null in place.
// It must only be used on rows that are still being built.
func (n Normalizer) NormalizeRow(r *models.Row) {
	for _, k := range r.Keys() {
		r.Set(k, n.Normalize(r.Value(k)))
	}
}

// WidenNumericColumns converts integer values to floats in every column that
// holds both integers and floats, so a numeric column has a single kind.
func WidenNumericColumns(d *Data) {
	for _, h := range d.Headers {
		values := make([]models.Value, len(d.Rows))
		for i, r := range d.Rows {
			values[i] = r.Value(h)
		}
		if models.InferKind(values) != models.KindFloat {
			continue
		}
		for i := range d.Rows {
			if n, ok := values[i].AsInt(); ok {
				d.Rows[i].Set(h, models.FloatValue(float64(n)))
			}
		}
	}
}
