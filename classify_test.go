package squirreljson

import (
	"math/rand"
	"testing"
)

func TestScalarAndSWARAgreeOnStructuralChars(t *testing.T) {
	inputs := [][]byte{
		[]byte(`{"a":1,"b":[1,2,3]}            `),
		[]byte(`\\\\\\\\""""{{{{}}}}[[[[]]]],,,,::::`),
		make([]byte, blockWidth),
		[]byte(`the quick brown fox jumps over`),
		// Adjacent-byte pairs that a lane-borrow bug in the SWAR
		// zero-byte test could leak into the neighboring lane: a
		// negative number right after a comma, a bracket right before
		// a backslash, and a quote right before '#'.
		[]byte(`[1,-2]                         `),
		[]byte(`]\                              `),
		[]byte(`"#                              `),
		[]byte(`{"#a":-1,"b":["]\\", -9]}       `),
	}
	for _, in := range inputs {
		var block [blockWidth]byte
		copy(block[:], in)
		got := scalarClassifyBlock(block[:])
		want := swarClassifyBlock(block[:])
		if got != want {
			t.Fatalf("classifiers disagree on %q:\nscalar=%+v\nswar=  %+v", in, got, want)
		}
	}
}

func TestScalarAndSWARAgreeRandom(t *testing.T) {
	alphabet := []byte(`{}[],:"\ abc123`)
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 500; trial++ {
		var block [blockWidth]byte
		for i := range block {
			block[i] = alphabet[rng.Intn(len(alphabet))]
		}
		got := scalarClassifyBlock(block[:])
		want := swarClassifyBlock(block[:])
		if got != want {
			t.Fatalf("trial %d: classifiers disagree on %q:\nscalar=%+v\nswar=  %+v", trial, block, got, want)
		}
	}
}

func TestSWARClassifyBlockHandlesShortTrailingBlock(t *testing.T) {
	short := []byte(`{"a":1}`)
	got := swarClassifyBlock(short)
	want := scalarClassifyBlock(short)
	if got != want {
		t.Fatalf("short block: got %+v, want %+v", got, want)
	}
}

func TestBackendNameIsOneOfKnownValues(t *testing.T) {
	switch BackendName() {
	case "avx2", "neon", "scalar":
	default:
		t.Fatalf("unexpected backend name %q", BackendName())
	}
}

func TestBitsetNext(t *testing.T) {
	b := newBitset(2)
	b.words[0] = 1<<3 | 1<<7
	b.words[1] = 1 << 1

	cases := []struct {
		from int
		want int
	}{
		{0, 3},
		{4, 7},
		{8, 33},
		{34, -1},
	}
	for _, c := range cases {
		if got := b.next(c.from); got != c.want {
			t.Fatalf("next(%d) = %d, want %d", c.from, got, c.want)
		}
	}
}

func TestBitsetGet(t *testing.T) {
	b := newBitset(1)
	b.words[0] = 1 << 5
	if !b.get(5) {
		t.Fatal("expected bit 5 set")
	}
	if b.get(6) {
		t.Fatal("expected bit 6 clear")
	}
	if b.get(1000) {
		t.Fatal("out-of-range get should report false, not panic")
	}
}
