package http

import (
	_ "embed"
	"html/template"
	"net/url"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"heartrisk/ml"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// leftColumn is the number of fields shown in the first form column.
const leftColumn = 6

type fieldView struct {
	ml.Field
	Value string
	Hint  string
}

func (f fieldView) IsSelect() bool {
	return f.Kind == ml.KindCategorical
}

func (f fieldView) MinAttr() string  { return formatNumber(f.Min) }
func (f fieldView) MaxAttr() string  { return formatNumber(f.Max) }
func (f fieldView) StepAttr() string { return formatNumber(f.Step) }

type resultView struct {
	HighRisk    bool
	Message     string
	Probability string
}

type pageView struct {
	Left   []fieldView
	Right  []fieldView
	Error  string
	Result *resultView
}

// newPageView fills the form from submitted values, falling back to field defaults.
func newPageView(values url.Values) pageView {
	var view pageView
	printer := message.NewPrinter(language.English)
	for i, field := range ml.Fields() {
		fv := fieldView{Field: field, Value: defaultValue(field)}
		if submitted := values.Get(field.Name); submitted != "" {
			fv.Value = submitted
		}
		if field.Kind != ml.KindCategorical {
			fv.Hint = printer.Sprintf("%v – %v", number.Decimal(field.Min), number.Decimal(field.Max))
		}
		if i < leftColumn {
			view.Left = append(view.Left, fv)
		} else {
			view.Right = append(view.Right, fv)
		}
	}
	return view
}

func newResultView(prediction ml.Prediction) *resultView {
	return &resultView{
		HighRisk:    prediction.HighRisk(),
		Message:     RiskMessage(prediction.Label),
		Probability: FormatProbability(prediction.Confidence()),
	}
}

func defaultValue(field ml.Field) string {
	switch field.Kind {
	case ml.KindCategorical:
		return field.Choice
	case ml.KindInteger:
		return strconv.Itoa(int(field.Default))
	default:
		return strconv.FormatFloat(field.Default, 'f', 2, 64)
	}
}
