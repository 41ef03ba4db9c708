package mathx

import "testing"

func TestCeilDiv(t *testing.T) {
	cases := []struct{ a, b, want uint64 }{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{^uint64(0), 2, 1 << 63},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := CeilDiv(c.a, c.b); got != c.want {
			t.Fatalf("CeilDiv(%d,%d)=%d want %d", c.a, c.b, got, c.want)
		}
	}
	if CeilDiv[uint8](255, 16) != 16 {
		t.Fatal("uint8 CeilDiv")
	}
}
