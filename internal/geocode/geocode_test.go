package geocode

import "testing"

func TestNormalizeAddress_CollapsesWhitespaceAndCase(t *testing.T) {
	got := NormalizeAddress("  Rua  Augusta, 123   SAO PAULO ")
	want := "rua augusta, 123 sao paulo"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalizeAddress_Empty(t *testing.T) {
	if got := NormalizeAddress("   "); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestFakeGeocoder_ReturnsSetCoordinates(t *testing.T) {
	f := NewFakeGeocoder()
	f.Set("Rua Augusta, 123", -23.55, -46.63)

	coords, err := f.Geocode(nil, "  rua augusta, 123 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords.Latitude != -23.55 || coords.Longitude != -46.63 {
		t.Fatalf("unexpected coordinates: %+v", coords)
	}
}

func TestFakeGeocoder_UnknownAddressErrors(t *testing.T) {
	f := NewFakeGeocoder()
	if _, err := f.Geocode(nil, "Nowhere St"); err == nil {
		t.Fatal("expected error for unknown address")
	}
}

func TestFakeGeocoder_EmptyAddressErrors(t *testing.T) {
	f := NewFakeGeocoder()
	if _, err := f.Geocode(nil, "   "); err == nil {
		t.Fatal("expected error for empty address")
	}
}
