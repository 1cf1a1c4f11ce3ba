package ml

type FieldKind int

const (
	KindInteger FieldKind = iota
	KindFloat
	KindCategorical
)

// Field describes one form input: its bounds for numeric kinds, or its closed
// option set for categorical ones.
type Field struct {
	Name    string
	Label   string
	Kind    FieldKind
	Min     float64
	Max     float64
	Step    float64
	Default float64
	Options []string
	Choice  string
}

// InRange reports whether v lies inside the inclusive bounds.
func (f Field) InRange(v float64) bool {
	return v >= f.Min && v <= f.Max
}

// Allows reports whether value is one of the field's options.
func (f Field) Allows(value string) bool {
	for _, option := range f.Options {
		if option == value {
			return true
		}
	}
	return false
}

// Fields returns the form fields in feature order.
func Fields() []Field {
	return []Field{
		{Name: "age", Label: "Age", Kind: KindInteger, Min: 18, Max: 100, Step: 1, Default: 50},
		{Name: "anaemia", Label: "Anaemia", Kind: KindCategorical, Options: []string{No, Yes}, Choice: No},
		{Name: "creatinine_phosphokinase", Label: "Creatinine Phosphokinase", Kind: KindInteger, Min: 20, Max: 8000, Step: 1, Default: 250},
		{Name: "diabetes", Label: "Diabetes", Kind: KindCategorical, Options: []string{No, Yes}, Choice: No},
		{Name: "ejection_fraction", Label: "Ejection Fraction (%)", Kind: KindInteger, Min: 10, Max: 80, Step: 1, Default: 38},
		{Name: "high_blood_pressure", Label: "High Blood Pressure", Kind: KindCategorical, Options: []string{No, Yes}, Choice: No},
		{Name: "platelets", Label: "Platelets", Kind: KindFloat, Min: 25000.0, Max: 850000.0, Step: 0.01, Default: 250000.0},
		{Name: "serum_creatinine", Label: "Serum Creatinine", Kind: KindFloat, Min: 0.1, Max: 10.0, Step: 0.01, Default: 1.0},
		{Name: "serum_sodium", Label: "Serum Sodium", Kind: KindInteger, Min: 110, Max: 150, Step: 1, Default: 137},
		{Name: "sex", Label: "Gender", Kind: KindCategorical, Options: []string{Female, Male}, Choice: Female},
		{Name: "smoking", Label: "Smoking", Kind: KindCategorical, Options: []string{No, Yes}, Choice: No},
	}
}
