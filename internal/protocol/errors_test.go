package protocol

import "testing"

func TestIsKnownCode(t *testing.T) {
	cases := []string{
		"",
		ErrParse,
		ErrConfig,
	}
	for _, c := range cases {
		if !IsKnownCode(c) {
			t.Fatalf("expected known code: %q", c)
		}
	}
	if IsKnownCode("E_NOT_DEFINED") {
		t.Fatalf("expected unknown code rejected")
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(""); got != 0 {
		t.Fatalf("ExitCode(\"\")=%d", got)
	}
	if got := ExitCode(ErrConfig); got != 2 {
		t.Fatalf("ExitCode(config)=%d", got)
	}
	if got := ExitCode(ErrParse); got != 1 {
		t.Fatalf("ExitCode(parse)=%d", got)
	}
}
