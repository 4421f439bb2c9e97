package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestFormatShortest(t *testing.T) {
	out, errOut, code := runCLI(t, "format", "shortest", "0.1")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "0.1\n" {
		t.Errorf("got %q", out)
	}
}

func TestFormatModes(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"format", "fixed", "2", "2.5"}, "2.50\n"},
		{[]string{"format", "fixed", "0", "2.5"}, "2\n"},
		{[]string{"format", "exp", "2", "123.456"}, "1.23e+2\n"},
		{[]string{"format", "prec", "5", "123"}, "123.00\n"},
		{[]string{"format", "pow2", "16", "255"}, "ff\n"},
		{[]string{"format", "int", "8", "9007199254740992"}, "4" + strings.Repeat("0", 17) + "\n"},
		{[]string{"format", "shortest", "1e21"}, "1e+21\n"},
		{[]string{"format", "shortest", "-Infinity"}, "-Infinity\n"},
	}
	for _, c := range cases {
		out, errOut, code := runCLI(t, c.args...)
		if code != 0 {
			t.Errorf("%v: exit %d: %s", c.args, code, errOut)
			continue
		}
		if out != c.want {
			t.Errorf("%v: got %q, want %q", c.args, out, c.want)
		}
	}
}

func TestFormatRejectsBadPrecision(t *testing.T) {
	_, _, code := runCLI(t, "format", "fixed", "abc", "1")
	if code == 0 {
		t.Fatal("expected a usage failure")
	}
	_, _, code = runCLI(t, "format", "fixed", "101", "1")
	if code != 2 {
		t.Fatalf("precision out of domain: exit %d, want 2", code)
	}
}

func TestParse(t *testing.T) {
	out, errOut, code := runCLI(t, "parse", "-strict", "0.5")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "0.5 consumed=3 bits=3fe0000000000000\n" {
		t.Errorf("got %q", out)
	}

	_, _, code = runCLI(t, "parse", "-strict", "0.5x")
	if code != 2 {
		t.Fatalf("trailing content: exit %d, want 2", code)
	}

	out, _, code = runCLI(t, "parse", "0.5x")
	if code != 0 || out != "0.5 consumed=3 bits=3fe0000000000000\n" {
		t.Errorf("non-strict prefix parse: exit %d out %q", code, out)
	}
}

func TestAtoi(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"atoi", "4294967296"}, "0 consumed=10\n"},
		{[]string{"atoi", "-unsigned", "-1"}, "4294967295 consumed=2\n"},
		{[]string{"atoi", "-long", "9223372036854775808"}, "-9223372036854775808 consumed=19\n"},
		{[]string{"atoi", "-long", "-unsigned", "18446744073709551615"}, "18446744073709551615 consumed=20\n"},
		{[]string{"atoi", "-hex", "0xff"}, "255 consumed=4\n"},
	}
	for _, c := range cases {
		out, errOut, code := runCLI(t, c.args...)
		if code != 0 {
			t.Errorf("%v: exit %d: %s", c.args, code, errOut)
			continue
		}
		if out != c.want {
			t.Errorf("%v: got %q, want %q", c.args, out, c.want)
		}
	}
}

func TestItoa(t *testing.T) {
	out, errOut, code := runCLI(t, "itoa", "16", "-255")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "-ff\n" {
		t.Errorf("got %q", out)
	}

	out, _, code = runCLI(t, "itoa", "-long", "16", "-9223372036854775808")
	if code != 0 || out != "-8000000000000000\n" {
		t.Errorf("long min: exit %d out %q", code, out)
	}
}

func TestIndex(t *testing.T) {
	out, _, code := runCLI(t, "index", "4294967295")
	if code != 0 || out != "4294967295\n" {
		t.Fatalf("exit %d out %q", code, out)
	}

	_, _, code = runCLI(t, "index", "01")
	if code != 2 {
		t.Fatalf("leading zero: exit %d, want 2", code)
	}
	out, _, code = runCLI(t, "index", "-leading-zeroes", "01")
	if code != 0 || out != "1\n" {
		t.Fatalf("leading zero allowed: exit %d out %q", code, out)
	}
	_, _, code = runCLI(t, "index", "4294967296")
	if code != 2 {
		t.Fatalf("out of range: exit %d, want 2", code)
	}
}

func TestUsage(t *testing.T) {
	_, errOut, code := runCLI(t)
	if code != 2 || !strings.Contains(errOut, "usage:") {
		t.Fatalf("no args: exit %d stderr %q", code, errOut)
	}
	_, _, code = runCLI(t, "frobnicate")
	if code != 2 {
		t.Fatalf("unknown command: exit %d, want 2", code)
	}
}
