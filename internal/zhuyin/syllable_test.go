package zhuyin

import "testing"

func TestSyllableHsuSdfAsU16(t *testing.T) {
	cases := []struct {
		b    Bopomofo
		want uint16
	}{
		{S, 0x2A00},
		{D, 0xA00},
		{F, 0x800},
	}
	for _, c := range cases {
		b := NewBuilder()
		if err := b.Insert(c.b); err != nil {
			t.Fatalf("insert(%v): %v", c.b, err)
		}
		if got := b.Build().ToU16(); got != c.want {
			t.Errorf("Syl(%v).ToU16() = %#x, want %#x", c.b, got, c.want)
		}
	}
}

func TestEmptySyllableToU16Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic converting empty syllable to u16")
		}
	}()
	NewBuilder().Build().ToU16()
}

func TestSyllableRoundTrip(t *testing.T) {
	syl := Syl(S, I, EN, TONE4)
	if got := FromU16(syl.ToU16()); got != syl {
		t.Errorf("FromU16(ToU16(%v)) = %v, want %v", syl, got, syl)
	}
}

func TestSylFoolProof(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-order bopomofos")
		}
	}()
	Syl(S, D)
}

func TestNewAndPopBopomofo(t *testing.T) {
	syl := Syl(S, I, EN, TONE4)
	wantPops := []Bopomofo{TONE4, EN, I, S}
	for _, want := range wantPops {
		got, ok := syl.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = (%v, %v), want (%v, true)", got, ok, want)
		}
	}
	if _, ok := syl.Pop(); ok {
		t.Fatal("Pop() on empty syllable should return ok=false")
	}
	if syl != Syl() {
		t.Errorf("syl after popping everything = %v, want empty", syl)
	}
}

func TestUpdateOverwritesSameKind(t *testing.T) {
	var syl Syllable
	syl.Update(ZH)
	syl.Update(J) // same kind (Initial), should overwrite, not stack
	if got, ok := syl.Initial(); !ok || got != J {
		t.Errorf("Initial() = (%v, %v), want (J, true)", got, ok)
	}
}

func TestKindPartition(t *testing.T) {
	cases := map[Bopomofo]Kind{
		B: KindInitial, S: KindInitial,
		I: KindMedial, IU: KindMedial,
		A: KindRime, ER: KindRime,
		TONE1: KindTone, TONE5: KindTone,
	}
	for b, want := range cases {
		if got := b.Kind(); got != want {
			t.Errorf("%v.Kind() = %v, want %v", b, got, want)
		}
	}
}

func TestStringRendersInitialMedialRimeTone(t *testing.T) {
	syl := Syl(G, U, O, TONE2)
	if got, want := syl.String(), "ㄍㄨㄛˊ"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	syl := Syl(G, U, O, TONE2)
	parsed, err := ParseString(syl.String())
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if parsed != syl {
		t.Errorf("ParseString(%q) = %v, want %v", syl.String(), parsed, syl)
	}
}
