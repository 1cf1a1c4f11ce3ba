package ml

const FeatureCount = 11

const (
	Yes    = "Yes"
	No     = "No"
	Male   = "Male"
	Female = "Female"
)

// PatientInput holds one patient's raw clinical fields as collected by the form.
// Categorical fields keep their human-readable value until Vector encodes them.
type PatientInput struct {
	Age                     int
	Anaemia                 string
	CreatininePhosphokinase int
	Diabetes                string
	EjectionFraction        int
	HighBloodPressure       string
	Platelets               float64
	SerumCreatinine         float64
	SerumSodium             int
	Sex                     string
	Smoking                 string
}

func DefaultPatientInput() PatientInput {
	return PatientInput{
		Age:                     50,
		Anaemia:                 No,
		CreatininePhosphokinase: 250,
		Diabetes:                No,
		EjectionFraction:        38,
		HighBloodPressure:       No,
		Platelets:               250000.0,
		SerumCreatinine:         1.0,
		SerumSodium:             137,
		Sex:                     Female,
		Smoking:                 No,
	}
}

// Vector encodes the categorical fields and assembles the fixed-order feature vector.
func (p PatientInput) Vector() []float64 {
	return []float64{
		float64(p.Age),
		float64(EncodeYesNo(p.Anaemia)),
		float64(p.CreatininePhosphokinase),
		float64(EncodeYesNo(p.Diabetes)),
		float64(p.EjectionFraction),
		float64(EncodeYesNo(p.HighBloodPressure)),
		p.Platelets,
		p.SerumCreatinine,
		float64(p.SerumSodium),
		float64(EncodeSex(p.Sex)),
		float64(EncodeYesNo(p.Smoking)),
	}
}

func FeatureNames() []string {
	return []string{
		"age",
		"anaemia",
		"creatinine_phosphokinase",
		"diabetes",
		"ejection_fraction",
		"high_blood_pressure",
		"platelets",
		"serum_creatinine",
		"serum_sodium",
		"sex",
		"smoking",
	}
}

// Encode maps a two-valued categorical answer onto 0/1. Values outside
// {No, Yes, Female, Male} are not validated and encode as 0.
func Encode(value string) int {
	switch value {
	case Yes, Male:
		return 1
	default:
		return 0
	}
}

func EncodeYesNo(value string) int {
	return Encode(value)
}

func EncodeSex(value string) int {
	return Encode(value)
}
