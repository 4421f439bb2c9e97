// Command ecma-num converts numbers to and from text with the ecma-num
// engine: shortest/fixed/exponential/precision/radix formatting of
// doubles, numeral parsing, fixed-width integer conversion, and the
// array-index grammar check.
package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/lattice-substrate/ecma-num/atod"
	"github.com/lattice-substrate/ecma-num/dtoa"
	"github.com/lattice-substrate/ecma-num/intconv"
	"github.com/lattice-substrate/ecma-num/numerr"
)

const usage = `usage: ecma-num <command> [options] <args>

commands:
  format shortest <number>
  format fixed <precision> <number>
  format exp <precision> <number>
  format prec <sigdigits> <number>
  format pow2 <radix> <number>
  format int <radix> <number>
  parse [-strict] [-hex] <text>
  atoi [-strict] [-hex] [-long] [-unsigned] <text>
  itoa [-long] <radix> <value>
  index [-leading-zeroes] <text>`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return numerr.CLIUsage.ExitCode()
	}

	switch args[0] {
	case "format":
		return cmdFormat(args[1:], stdout, stderr)
	case "parse":
		return cmdParse(args[1:], stdout, stderr)
	case "atoi":
		return cmdAtoi(args[1:], stdout, stderr)
	case "itoa":
		return cmdItoa(args[1:], stdout, stderr)
	case "index":
		return cmdIndex(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		fmt.Fprintln(stderr, usage)
		return numerr.CLIUsage.ExitCode()
	}
}

// fail prints err and maps it to an exit code through the failure
// taxonomy.
func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, err)
	if class := numerr.ClassOf(err); class != "" {
		return class.ExitCode()
	}
	return numerr.CLIUsage.ExitCode()
}

// emit writes a result line; a short write is an internal I/O failure,
// not a conversion failure.
func emit(stdout, stderr io.Writer, format string, args ...any) int {
	if _, err := fmt.Fprintf(stdout, format, args...); err != nil {
		return fail(stderr, numerr.Wrap(numerr.InternalIO, -1, "write result", err))
	}
	return 0
}

func usageError(stderr io.Writer, msg string) int {
	fmt.Fprintln(stderr, msg)
	fmt.Fprintln(stderr, usage)
	return numerr.CLIUsage.ExitCode()
}

// parseNumber reads a double argument with the engine's own parser,
// strict mode, hex enabled.
func parseNumber(arg string) (float64, error) {
	v, _, err := atod.StringToDouble(arg, &atod.Options{Strict: true, AllowHex: true})
	return v, err
}

// parseSmallInt reads a precision/radix argument.
func parseSmallInt(arg string) (int, bool) {
	v, ok := intconv.ParseArrayIndex(arg, true)
	if !ok || v > 1<<20 {
		return 0, false
	}
	return int(v), true
}

func cmdFormat(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		return usageError(stderr, "format: need a mode and a number")
	}
	mode := args[0]

	if mode == "shortest" {
		v, err := parseNumber(args[1])
		if err != nil {
			return fail(stderr, err)
		}
		return emit(stdout, stderr, "%s\n", dtoa.Shortest(v))
	}

	if len(args) != 3 {
		return usageError(stderr, "format "+mode+": need an argument and a number")
	}
	arg, ok := parseSmallInt(args[1])
	if !ok {
		return usageError(stderr, "format "+mode+": bad argument "+args[1])
	}
	v, err := parseNumber(args[2])
	if err != nil {
		return fail(stderr, err)
	}

	var out string
	switch mode {
	case "fixed":
		out, err = dtoa.FixedNotation(v, arg)
	case "exp":
		out, err = dtoa.ExponentialNotation(v, arg)
	case "prec":
		out, err = dtoa.PrecisionNotation(v, arg)
	case "pow2":
		out, err = dtoa.Pow2RadixString(v, arg)
	case "int":
		out, err = dtoa.IntegerRadixString(v, arg)
	default:
		return usageError(stderr, "format: unknown mode "+mode)
	}
	if err != nil {
		return fail(stderr, err)
	}
	return emit(stdout, stderr, "%s\n", out)
}

func cmdParse(args []string, stdout, stderr io.Writer) int {
	opts := &atod.Options{}
	rest := args
	for len(rest) > 0 {
		switch rest[0] {
		case "-strict":
			opts.Strict = true
		case "-hex":
			opts.AllowHex = true
		default:
			goto done
		}
		rest = rest[1:]
	}
done:
	if len(rest) != 1 {
		return usageError(stderr, "parse: need exactly one text argument")
	}
	v, n, err := atod.StringToDouble(rest[0], opts)
	if err != nil {
		return fail(stderr, err)
	}
	return emit(stdout, stderr, "%s consumed=%d bits=%016x\n", dtoa.Shortest(v), n, math.Float64bits(v))
}

func cmdAtoi(args []string, stdout, stderr io.Writer) int {
	opts := &atod.Options{}
	long := false
	unsigned := false
	rest := args
	for len(rest) > 0 {
		switch rest[0] {
		case "-strict":
			opts.Strict = true
		case "-hex":
			opts.AllowHex = true
		case "-long":
			long = true
		case "-unsigned":
			unsigned = true
		default:
			goto done
		}
		rest = rest[1:]
	}
done:
	if len(rest) != 1 {
		return usageError(stderr, "atoi: need exactly one text argument")
	}

	switch {
	case long && unsigned:
		v, n, err := intconv.StringToUint64(rest[0], opts)
		if err != nil {
			return fail(stderr, err)
		}
		return emit(stdout, stderr, "%d consumed=%d\n", v, n)
	case long:
		v, n, err := intconv.StringToInt64(rest[0], opts)
		if err != nil {
			return fail(stderr, err)
		}
		return emit(stdout, stderr, "%d consumed=%d\n", v, n)
	case unsigned:
		v, n, err := intconv.StringToUint32(rest[0], opts)
		if err != nil {
			return fail(stderr, err)
		}
		return emit(stdout, stderr, "%d consumed=%d\n", v, n)
	default:
		v, n, err := intconv.StringToInt32(rest[0], opts)
		if err != nil {
			return fail(stderr, err)
		}
		return emit(stdout, stderr, "%d consumed=%d\n", v, n)
	}
}

func cmdItoa(args []string, stdout, stderr io.Writer) int {
	long := false
	rest := args
	if len(rest) > 0 && rest[0] == "-long" {
		long = true
		rest = rest[1:]
	}
	if len(rest) != 2 {
		return usageError(stderr, "itoa: need a radix and a value")
	}
	radix, ok := parseSmallInt(rest[0])
	if !ok {
		return usageError(stderr, "itoa: bad radix "+rest[0])
	}
	v, _, err := intconv.StringToInt64(rest[1], &atod.Options{Strict: true})
	if err != nil {
		return fail(stderr, err)
	}

	var out string
	if long {
		out, err = intconv.Int64String(v, radix)
	} else {
		out, err = intconv.Int32String(int32(v), radix)
	}
	if err != nil {
		return fail(stderr, err)
	}
	return emit(stdout, stderr, "%s\n", out)
}

func cmdIndex(args []string, stdout, stderr io.Writer) int {
	allowLeadingZeroes := false
	rest := args
	if len(rest) > 0 && rest[0] == "-leading-zeroes" {
		allowLeadingZeroes = true
		rest = rest[1:]
	}
	if len(rest) != 1 {
		return usageError(stderr, "index: need exactly one text argument")
	}
	v, ok := intconv.ParseArrayIndex(rest[0], allowLeadingZeroes)
	if !ok {
		fmt.Fprintln(stderr, "not an array index")
		return numerr.InvalidNumeral.ExitCode()
	}
	return emit(stdout, stderr, "%d\n", v)
}
