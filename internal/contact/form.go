package contact

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ErrNotSubmittable is returned by Submit while any field is invalid.
var ErrNotSubmittable = errors.New("contact: form has invalid fields")

// FieldState is the live state of one input.
// Touched is false until the first Input call for the field.
type FieldState struct {
	Kind    Kind   `json:"field"`
	Text    string `json:"value"`
	Touched bool   `json:"touched"`
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// Invalid reports whether the field is currently marked invalid.
func (f FieldState) Invalid() bool { return f.Touched && !f.Valid }

// Form tracks every contact field and gates submission.
type Form struct {
	fields map[Kind]*FieldState
}

// NewForm returns a form with every field untouched.
func NewForm() *Form {
	f := &Form{fields: make(map[Kind]*FieldState, len(Kinds))}
	for _, k := range Kinds {
		f.fields[k] = &FieldState{Kind: k}
	}
	return f
}

// Input applies one input event. Phone text is replaced by its masked form.
func (f *Form) Input(kind Kind, raw string) FieldState {
	st, ok := f.fields[kind]
	if !ok {
		st = &FieldState{Kind: kind}
		f.fields[kind] = st
	}
	var r Result
	text := raw
	if kind == KindPhone {
		text, r = maskAndCheck(raw)
	} else {
		r = Validate(kind, raw)
	}
	st.Text = text
	st.Touched = true
	st.Valid = r.Valid
	st.Message = r.Message
	return *st
}

// Field returns the current state of kind.
func (f *Form) Field(kind Kind) FieldState {
	if st, ok := f.fields[kind]; ok {
		return *st
	}
	return FieldState{Kind: kind}
}

// Invalid lists the fields currently marked invalid, in display order.
func (f *Form) Invalid() []FieldState {
	var out []FieldState
	for _, k := range Kinds {
		if st := f.fields[k]; st.Invalid() {
			out = append(out, *st)
		}
	}
	return out
}

// SubmitEnabled is true iff no field is currently marked invalid.
func (f *Form) SubmitEnabled() bool { return len(f.Invalid()) == 0 }

// Band classifies an average rating.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

var bandColors = map[Band]string{
	BandLow:    "#dc091eff",
	BandMedium: "#f58413ff",
	BandHigh:   "#0b794bff",
}

// Line is one "Label: value" row of the results summary.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (l Line) String() string { return l.Label + ": " + l.Value }

// Summary is what the page renders after a successful submit.
type Summary struct {
	Lines   []Line `json:"lines"`
	Average string `json:"average"`
	Band    Band   `json:"band"`
	Color   string `json:"color"`
	Caption string `json:"caption"`
}

var summaryLabels = map[Kind]string{
	KindName:    "Name",
	KindSurname: "Surname",
	KindEmail:   "Email",
	KindPhone:   "Phone",
	KindAddress: "Address",
	KindMessage: "Message",
}

// Submit builds the results summary and the derived average of three ratings.
func (f *Form) Submit(ratings [3]float64) (Summary, error) {
	if !f.SubmitEnabled() {
		return Summary{}, ErrNotSubmittable
	}

	var s Summary
	for _, k := range Kinds {
		s.Lines = append(s.Lines, Line{Label: summaryLabels[k], Value: f.fields[k].Text})
	}

	s.Average = fixed1((ratings[0] + ratings[1] + ratings[2]) / 3)
	// Banding uses the rounded value, as displayed.
	avg, _ := strconv.ParseFloat(s.Average, 64)
	s.Band = bandFor(avg)
	s.Color = bandColors[s.Band]
	s.Caption = fmt.Sprintf("%s %s: %s", f.fields[KindName].Text, f.fields[KindSurname].Text, s.Average)
	return s, nil
}

// fixed1 renders x with one decimal, rounding the exact binary value half
// away from zero (0.25 -> "0.3", 0.35 -> "0.3" since 0.35 is stored below it).
func fixed1(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', 1, 64)
	}
	sign := ""
	if x < 0 {
		sign, x = "-", -x
	}
	f := new(big.Float).SetPrec(256).SetFloat64(x)
	f.Mul(f, big.NewFloat(10))
	f.Add(f, big.NewFloat(0.5))
	n, _ := f.Int(nil)
	digits := n.String()
	if len(digits) < 2 {
		digits = "0" + digits
	}
	return sign + digits[:len(digits)-1] + "." + digits[len(digits)-1:]
}

func bandFor(avg float64) Band {
	switch {
	case avg < 4:
		return BandLow
	case avg < 7:
		return BandMedium
	default:
		return BandHigh
	}
}

// Text renders the summary as plain lines.
func (s Summary) Text() string {
	var b strings.Builder
	for _, l := range s.Lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	b.WriteString(s.Caption)
	return b.String()
}
