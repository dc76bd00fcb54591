package atmosphere

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/signalsfoundry/radar-geodesy/unit"
)

func TestSaturationVaporPressure(t *testing.T) {
	cases := []struct {
		name    string
		tempC   float64
		wantHpa float64
		tol     float64
	}{
		{"freezing", 0, 6.112, 1e-9},
		{"room", 20, 23.37, 0.05},
		{"cold", -10, 2.87, 0.02},
	}
	for _, c := range cases {
		got := SaturationVaporPressure(unit.Celsius(c.tempC)).Hectopascals()
		if !scalar.EqualWithinAbs(got, c.wantHpa, c.tol) {
			t.Errorf("%s: es = %v hPa, want %v", c.name, got, c.wantHpa)
		}
	}
}

func TestVaporPressure(t *testing.T) {
	es := SaturationVaporPressure(unit.Celsius(15)).Hectopascals()

	e, err := VaporPressure(unit.Celsius(15), 60)
	if err != nil {
		t.Fatalf("VaporPressure: %v", err)
	}
	if got := e.Hectopascals(); !scalar.EqualWithinAbs(got, es*0.6, 1e-9) {
		t.Errorf("e = %v hPa, want %v", got, es*0.6)
	}

	dry, err := VaporPressure(unit.Celsius(15), 0)
	if err != nil {
		t.Fatalf("VaporPressure dry: %v", err)
	}
	if got := dry.Pascals(); got != 0 {
		t.Errorf("dry vapor pressure = %v, want 0", got)
	}
}

func TestVaporPressure_HumidityValidation(t *testing.T) {
	for _, rh := range []float64{-5, -0.001, 100.001, 105} {
		if _, err := VaporPressure(unit.Celsius(15), rh); !errors.Is(err, ErrHumidityRange) {
			t.Errorf("rh %v: error = %v, want ErrHumidityRange", rh, err)
		}
	}
}

// ITU-R reference conditions: 1013.25 hPa, 15 degrees C, 60 % RH.
func TestRefractivity_ReferenceConditions(t *testing.T) {
	n, err := Refractivity(unit.Hectopascals(1013.25), unit.Celsius(15), 60)
	if err != nil {
		t.Fatalf("Refractivity: %v", err)
	}
	if n < 313 || n > 319 {
		t.Errorf("N = %v, want within [313, 319]", n)
	}
	if !scalar.EqualWithinAbs(n, 318.83, 1.0) {
		t.Errorf("N = %v, want about 318.83", n)
	}
}

func TestRefractivity_DryAir(t *testing.T) {
	n, err := Refractivity(unit.Hectopascals(1013.25), unit.Celsius(15), 0)
	if err != nil {
		t.Fatalf("Refractivity: %v", err)
	}
	// Dry term only: 77.6 * 1013.25 / 288.15.
	if !scalar.EqualWithinAbs(n, 272.9, 0.1) {
		t.Errorf("dry N = %v, want about 272.9", n)
	}
}

func TestRefractivity_HumidityValidation(t *testing.T) {
	for _, rh := range []float64{-5, 105} {
		if _, err := Refractivity(unit.Hectopascals(1013.25), unit.Celsius(15), rh); !errors.Is(err, ErrHumidityRange) {
			t.Errorf("rh %v: error = %v, want ErrHumidityRange", rh, err)
		}
	}
}

func TestRefractiveIndex(t *testing.T) {
	if got := RefractiveIndex(318.83); !scalar.EqualWithinAbs(got, 1.00031883, 1e-12) {
		t.Errorf("n = %v, want 1.00031883", got)
	}
	if got := RefractiveIndex(0); got != 1.0 {
		t.Errorf("n(0) = %v, want 1", got)
	}
}

func TestModifiedRefractivity(t *testing.T) {
	want := 300.0 + 1000.0/earthRadiusM*1e6
	if got := ModifiedRefractivity(300, unit.Meters(1000)); !scalar.EqualWithinAbs(got, want, 1e-9) {
		t.Errorf("M = %v, want %v", got, want)
	}
	if got := ModifiedRefractivity(300, unit.Meters(0)); got != 300 {
		t.Errorf("M at surface = %v, want N unchanged", got)
	}
}

func TestAverageModifiedRefractivity(t *testing.T) {
	got := AverageModifiedRefractivity(300, unit.Meters(0), 310, unit.Meters(1000))
	want := (300.0 + 310.0 + 1000.0/earthRadiusM*1e6) / 2
	if !scalar.EqualWithinAbs(got, want, 1e-9) {
		t.Errorf("average M = %v, want %v", got, want)
	}
}

func TestKFactor_StandardColumn(t *testing.T) {
	var std Standard

	k, err := KFactor(std.At(unit.Meters(0)), std.At(unit.Meters(1000)))
	if err != nil {
		t.Fatalf("KFactor: %v", err)
	}
	if !scalar.EqualWithinAbs(k, 4.0/3.0, 0.05) {
		t.Errorf("k = %v, want 4/3 within 0.05", k)
	}
}

// A pressure drop tuned to cancel the curvature term makes the modified
// refractivity gradient vanish, which must return the ducting sentinel.
func TestKFactor_DuctingSentinel(t *testing.T) {
	const tempK = 288.15
	p1 := 1013.25
	lift := 1000.0 / earthRadiusM * 1e6
	p2 := p1 - lift*tempK/77.6

	site := Profile{
		Altitude:    unit.Meters(0),
		Pressure:    unit.Hectopascals(p1),
		Temperature: unit.Kelvins(tempK),
	}
	target := Profile{
		Altitude:    unit.Meters(1000),
		Pressure:    unit.Hectopascals(p2),
		Temperature: unit.Kelvins(tempK),
	}

	k, err := KFactor(site, target)
	if err != nil {
		t.Fatalf("KFactor: %v", err)
	}
	if k != DuctingKFactor {
		t.Errorf("k = %v, want ducting sentinel %v", k, DuctingKFactor)
	}
}

func TestKFactor_HumidityValidation(t *testing.T) {
	var std Standard

	bad := std.At(unit.Meters(0))
	bad.RelativeHumidity = -5

	if _, err := KFactor(bad, std.At(unit.Meters(1000))); !errors.Is(err, ErrHumidityRange) {
		t.Errorf("bad site: error = %v, want ErrHumidityRange", err)
	}
	if _, err := KFactor(std.At(unit.Meters(0)), bad); !errors.Is(err, ErrHumidityRange) {
		t.Errorf("bad target: error = %v, want ErrHumidityRange", err)
	}
}

func TestProfileRefractivity(t *testing.T) {
	p := Profile{
		Altitude:         unit.Meters(0),
		Pressure:         unit.Hectopascals(1013.25),
		Temperature:      unit.Celsius(15),
		RelativeHumidity: 60,
	}
	n, err := p.Refractivity()
	if err != nil {
		t.Fatalf("Refractivity: %v", err)
	}
	want, err := Refractivity(p.Pressure, p.Temperature, p.RelativeHumidity)
	if err != nil {
		t.Fatalf("Refractivity: %v", err)
	}
	if n != want {
		t.Errorf("profile N = %v, free function N = %v", n, want)
	}
}
