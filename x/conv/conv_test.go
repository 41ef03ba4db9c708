package conv

import "testing"

func TestAppendUint(t *testing.T) {
	cases := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{1000, "1000"},
		{18446744073709551615, "18446744073709551615"},
	}
	for _, c := range cases {
		if got := string(AppendUint([]byte("x="), c.n)); got != "x="+c.want {
			t.Fatalf("AppendUint(%d) = %q", c.n, got)
		}
	}
}

func TestAppendPadded(t *testing.T) {
	if got := string(AppendPadded(nil, 42, 5)); got != "00042" {
		t.Fatalf("got %q", got)
	}
	if got := string(AppendPadded(nil, 123456, 3)); got != "123456" {
		t.Fatalf("got %q", got)
	}
}
