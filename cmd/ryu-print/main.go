// Command ryu-print converts IEEE-754 double values to shortest
// round-trip decimal text.
//
// Values are given as arguments, or read one per line from stdin when no
// argument (or a lone "-") is given. An argument that parses as a number
// is never treated as an option, so negative values need no escaping:
//
//	ryu-print 0.3 -1e-7
//	printf '%s\n' 2.5 -112.89123883 | ryu-print --exp
//
// Exit codes:
//
//	0  success
//	2  usage error or unparseable value
//	10 write failure
//
// Flags:
//
//	-f, --fixed      positional notation (default)
//	-e, --exp        scientific notation, lowercase exponent marker
//	-E, --exp-upper  scientific notation, uppercase exponent marker
//	    --width <n>  format through an n-byte buffer, truncating the text
//	-l, --length     prefix each line with the untruncated length
//	-q, --quiet      suppress stdout, keep exit status
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/ryu"
)

const (
	exitSuccess  = 0
	exitUsage    = 2
	exitInternal = 10
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	fl, values, err := parseFlags(args)
	if err != nil {
		return writeErrorAndReturn(stderr, exitUsage, "error: %v\n", err)
	}

	if fl.help {
		if err := writeHelp(stderr); err != nil {
			return exitInternal
		}
		return exitSuccess
	}

	if len(values) > 1 {
		for _, v := range values {
			if v == "-" {
				return writeErrorAndReturn(stderr, exitUsage, "error: cannot mix stdin marker with values\n")
			}
		}
	}

	if len(values) == 0 || values[0] == "-" {
		return formatStream(fl, stdin, stdout, stderr)
	}

	for _, raw := range values {
		if code := formatOne(fl, raw, stdout, stderr); code != exitSuccess {
			return code
		}
	}
	return exitSuccess
}

type flags struct {
	style      ryu.Style
	width      int
	showLength bool
	quiet      bool
	help       bool
}

func parseFlags(args []string) (flags, []string, error) {
	f := flags{style: ryu.Fixed, width: -1}
	var positional []string
	consumeAsPositional := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if consumeAsPositional {
			positional = append(positional, arg)
			continue
		}

		switch arg {
		case "--fixed", "-f":
			f.style = ryu.Fixed
		case "--exp", "-e":
			f.style = ryu.ExpLower
		case "--exp-upper", "-E":
			f.style = ryu.ExpUpper
		case "--width":
			if i+1 >= len(args) {
				return flags{}, nil, fmt.Errorf("flag --width requires value")
			}
			w, err := parseWidth(args[i+1])
			if err != nil {
				return flags{}, nil, err
			}
			f.width = w
			i++
		case "--length", "-l":
			f.showLength = true
		case "--quiet", "-q":
			f.quiet = true
		case "--help", "-h":
			f.help = true
		case "--":
			consumeAsPositional = true
		case "-":
			positional = append(positional, arg)
		default:
			if strings.HasPrefix(arg, "--width=") {
				w, err := parseWidth(strings.TrimPrefix(arg, "--width="))
				if err != nil {
					return flags{}, nil, err
				}
				f.width = w
				continue
			}
			if strings.HasPrefix(arg, "-") {
				if _, err := strconv.ParseFloat(arg, 64); err == nil {
					positional = append(positional, arg)
					continue
				}
				return flags{}, nil, fmt.Errorf("unknown option: %s", arg)
			}
			positional = append(positional, arg)
		}
	}
	return f, positional, nil
}

func parseWidth(s string) (int, error) {
	w, err := strconv.Atoi(s)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("invalid width %q", s)
	}
	return w, nil
}

func formatStream(fl flags, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		if code := formatOne(fl, raw, stdout, stderr); code != exitSuccess {
			return code
		}
	}
	if err := sc.Err(); err != nil {
		return writeErrorAndReturn(stderr, exitInternal, "error: reading input: %v\n", err)
	}
	return exitSuccess
}

func formatOne(fl flags, raw string, stdout io.Writer, stderr io.Writer) int {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return writeErrorAndReturn(stderr, exitUsage, "error: %v\n", err)
	}

	var text string
	var length int
	if fl.width >= 0 {
		buf := make([]byte, fl.width)
		length = ryu.Write(buf, v, fl.style)
		text = clipped(buf)
	} else {
		text = ryu.Format(v, fl.style)
		length = len(text)
	}

	if fl.quiet {
		return exitSuccess
	}

	var werr error
	if fl.showLength {
		werr = writef(stdout, "%d\t%s\n", length, text)
	} else {
		werr = writeLine(stdout, text)
	}
	if werr != nil {
		return writeErrorAndReturn(stderr, exitInternal, "error: writing output: %v\n", werr)
	}
	return exitSuccess
}

// clipped returns the bytes before the terminator a bounded write left
// in buf.
func clipped(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

func writeErrorAndReturn(stderr io.Writer, code int, format string, args ...any) int {
	if err := writef(stderr, format, args...); err != nil {
		return exitInternal
	}
	return code
}

func writeHelp(stderr io.Writer) error {
	lines := []string{
		"usage: ryu-print [options] [value ...]",
		"  Convert IEEE-754 double values to shortest round-trip decimal text.",
		"  Values come from arguments, or from stdin lines when none are given.",
		"  -f, --fixed      positional notation (default)",
		"  -e, --exp        scientific notation, lowercase exponent marker",
		"  -E, --exp-upper  scientific notation, uppercase exponent marker",
		"      --width <n>  format through an n-byte buffer, truncating the text",
		"  -l, --length     prefix each line with the untruncated length",
		"  -q, --quiet      suppress stdout, keep exit status",
		"  -h, --help       show this help",
	}
	for _, line := range lines {
		if err := writeLine(stderr, line); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, msg string) error {
	return writef(w, "%s\n", msg)
}

func writef(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("write stream: %w", err)
	}
	return nil
}
