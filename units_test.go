package strictjson

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppendUnit_MergesPairs(t *testing.T) {
	v := StringFromUnits([]uint16{0xD83D, 0xDE00})
	if v.AsString() != "\U0001F600" {
		t.Fatalf("expected merged scalar, got %q", v.AsString())
	}
	if HasLoneSurrogate(v.AsString()) {
		t.Fatalf("pair must not report a lone surrogate")
	}
}

func TestAppendUnit_KeepsLoneSurrogates(t *testing.T) {
	v := StringFromUnits([]uint16{'x', 0xD800})
	if v.AsString() != "x\xed\xa0\x80" {
		t.Fatalf("unexpected WTF-8 %q", v.AsString())
	}
	if !HasLoneSurrogate(v.AsString()) {
		t.Fatalf("expected lone surrogate")
	}
	// a low surrogate after a non-surrogate stays lone
	v = StringFromUnits([]uint16{'x', 0xDC00})
	if !HasLoneSurrogate(v.AsString()) {
		t.Fatalf("expected lone low surrogate")
	}
}

func TestUnits_RoundTrip(t *testing.T) {
	cases := [][]uint16{
		{},
		{'a', 'b'},
		{0xE9},
		{0xD83D, 0xDE00, 'z'},
		{0xDBFF},
		{0xDC00, 0xD800},
		{0xD800, 'a', 0xDFFF},
	}
	for _, units := range cases {
		got := StringFromUnits(units).Units()
		if diff := cmp.Diff(units, got); diff != "" {
			t.Fatalf("round trip mismatch for %x (-want +got):\n%s", units, diff)
		}
	}
}

func TestLength_CountsCodeUnits(t *testing.T) {
	if n := String("a\U0001F600").Len(); n != 3 {
		t.Fatalf("expected 3 code units, got %d", n)
	}
}

func TestSurrogateAt_RejectsOrdinaryThreeByteRunes(t *testing.T) {
	// U+D7FF is ED 9F BF, just below the surrogate block
	if _, ok := surrogateAt("\ud7ff", 0); ok {
		t.Fatalf("U+D7FF is not a surrogate")
	}
}
