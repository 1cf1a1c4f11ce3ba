package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"heartrisk/ml"
)

// FieldError reports a submitted value outside its field's domain.
type FieldError struct {
	Field ml.Field
	Value string
}

func (e *FieldError) Error() string {
	if e.Field.Kind == ml.KindCategorical {
		return fmt.Sprintf("%s must be one of %s, got %q", e.Field.Label, strings.Join(e.Field.Options, ", "), e.Value)
	}
	return fmt.Sprintf("%s must be a number between %s and %s, got %q", e.Field.Label, formatNumber(e.Field.Min), formatNumber(e.Field.Max), e.Value)
}

// parsePatientForm enforces the field bounds and option sets. The pipeline itself
// never checks ranges, so this is the only place they are applied.
func parsePatientForm(form url.Values) (ml.PatientInput, error) {
	var input ml.PatientInput
	for _, field := range ml.Fields() {
		raw := strings.TrimSpace(form.Get(field.Name))
		switch field.Kind {
		case ml.KindCategorical:
			if !field.Allows(raw) {
				return ml.PatientInput{}, &FieldError{Field: field, Value: raw}
			}
			setChoice(&input, field.Name, raw)
		case ml.KindInteger:
			v, err := strconv.Atoi(raw)
			if err != nil || !field.InRange(float64(v)) {
				return ml.PatientInput{}, &FieldError{Field: field, Value: raw}
			}
			setNumber(&input, field.Name, float64(v))
		case ml.KindFloat:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || !field.InRange(v) {
				return ml.PatientInput{}, &FieldError{Field: field, Value: raw}
			}
			setNumber(&input, field.Name, v)
		}
	}
	return input, nil
}

func setChoice(input *ml.PatientInput, name, value string) {
	switch name {
	case "anaemia":
		input.Anaemia = value
	case "diabetes":
		input.Diabetes = value
	case "high_blood_pressure":
		input.HighBloodPressure = value
	case "sex":
		input.Sex = value
	case "smoking":
		input.Smoking = value
	}
}

func setNumber(input *ml.PatientInput, name string, value float64) {
	switch name {
	case "age":
		input.Age = int(value)
	case "creatinine_phosphokinase":
		input.CreatininePhosphokinase = int(value)
	case "ejection_fraction":
		input.EjectionFraction = int(value)
	case "platelets":
		input.Platelets = value
	case "serum_creatinine":
		input.SerumCreatinine = value
	case "serum_sodium":
		input.SerumSodium = int(value)
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
