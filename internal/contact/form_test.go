package contact

import (
	"errors"
	"testing"
)

func TestFormSubmitGate(t *testing.T) {
	f := NewForm()
	if !f.SubmitEnabled() {
		t.Fatalf("untouched form should be submittable")
	}

	f.Input(KindEmail, "nope")
	if f.SubmitEnabled() {
		t.Fatalf("invalid email must close the gate")
	}
	if inv := f.Invalid(); len(inv) != 1 || inv[0].Kind != KindEmail {
		t.Fatalf("Invalid() = %+v", inv)
	}

	f.Input(KindEmail, "nope@mail.lt")
	if !f.SubmitEnabled() {
		t.Fatalf("fixing the email must reopen the gate")
	}
}

func TestFormPhoneInputIsMasked(t *testing.T) {
	f := NewForm()
	st := f.Input(KindPhone, "(370) 612-34567")
	if st.Text != "+370 612 34567" || !st.Valid {
		t.Fatalf("Input(phone) = %+v", st)
	}
	st = f.Input(KindPhone, "612")
	if st.Text != "+370 612" || st.Valid || st.Message == "" {
		t.Fatalf("Input(phone partial) = %+v", st)
	}
	if f.Field(KindPhone).Text != "+370 612" {
		t.Fatalf("Field(phone) not updated")
	}
}

func TestFormSubmitSummary(t *testing.T) {
	f := NewForm()
	f.Input(KindName, "Ona")
	f.Input(KindSurname, "Kazlauskienė")
	f.Input(KindEmail, "ona@mail.lt")
	f.Input(KindPhone, "61234567")
	f.Input(KindAddress, "Vilniaus g. 5")
	f.Input(KindMessage, "Labas")

	s, err := f.Submit([3]float64{8, 7, 7})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(s.Lines) != 6 || s.Lines[0].String() != "Name: Ona" || s.Lines[3].String() != "Phone: +370 612 34567" {
		t.Fatalf("unexpected lines: %+v", s.Lines)
	}
	if s.Average != "7.3" || s.Band != BandHigh || s.Color != "#0b794bff" {
		t.Fatalf("unexpected rating: %+v", s)
	}
	if s.Caption != "Ona Kazlauskienė: 7.3" {
		t.Fatalf("Caption = %q", s.Caption)
	}
}

func TestFormSubmitRejectedWhileInvalid(t *testing.T) {
	f := NewForm()
	f.Input(KindName, "R2D2")
	if _, err := f.Submit([3]float64{1, 2, 3}); !errors.Is(err, ErrNotSubmittable) {
		t.Fatalf("Submit err = %v, want ErrNotSubmittable", err)
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		avg  float64
		want Band
	}{
		{1, BandLow},
		{3.9, BandLow},
		{4, BandMedium},
		{6.9, BandMedium},
		{7, BandHigh},
		{10, BandHigh},
	}
	for _, tt := range tests {
		if got := bandFor(tt.avg); got != tt.want {
			t.Fatalf("bandFor(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}

func TestFixed1RoundsTiesUp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{0.25, "0.3"},
		{2.25, "2.3"},
		{0.35, "0.3"}, // stored just below 0.35
		{22.0 / 3, "7.3"},
		{9.96, "10.0"},
		{-0.25, "-0.3"},
	}
	for _, tc := range tests {
		if got := fixed1(tc.in); got != tc.want {
			t.Fatalf("fixed1(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormSubmitAverageTie(t *testing.T) {
	f := NewForm()
	s, err := f.Submit([3]float64{0.25, 0.25, 0.25})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.Average != "0.3" || s.Band != BandLow {
		t.Fatalf("Average = %q band %q, want 0.3 low", s.Average, s.Band)
	}
}
