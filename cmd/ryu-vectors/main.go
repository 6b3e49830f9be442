// Command ryu-vectors generates and checks recorded conversion corpora.
//
// A corpus is a CSV of vectors (IEEE-754 bit pattern, scientific text,
// fixed text) plus a JSON manifest pinning the CSV checksum and the
// digest of a full replay through the converter.
//
//	ryu-vectors gen --dir testdata/corpus --count 512
//	ryu-vectors check --manifest testdata/corpus/manifest.json
//
// Exit codes:
//
//	0  success
//	2  usage error, invalid corpus, checksum drift, or replay mismatch
//	10 internal error
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/ryu/corpus"
)

const defaultCaseCount = 512

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		writeUsage(stdout)
		return 0
	}

	sub := args[0]
	flags, err := parseKV(args[1:])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	switch sub {
	case "gen":
		if err := cmdGen(flags, stdout); err != nil {
			return writeClassifiedError(stderr, err)
		}
		return 0
	case "check":
		if err := cmdCheck(flags, stdout, stderr); err != nil {
			return writeClassifiedError(stderr, err)
		}
		return 0
	default:
		fmt.Fprintf(stderr, "error: unknown subcommand %q\n", sub)
		writeUsage(stderr)
		return 2
	}
}

func cmdGen(flags map[string]string, stdout io.Writer) error {
	dir := requireFlag(flags, "--dir")
	if dir == "" {
		return corpus.New(corpus.CLIUsage, -1, "gen requires --dir")
	}
	count := defaultCaseCount
	if raw := requireFlag(flags, "--count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return corpus.New(corpus.CLIUsage, -1, fmt.Sprintf("invalid --count %q", raw))
		}
		count = n
	}

	manifest, err := corpus.WriteCorpus(dir, count)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "corpus: %s\n", dir)
	fmt.Fprintf(stdout, "cases: %d\n", manifest.CaseCount)
	fmt.Fprintf(stdout, "vectors_sha256: %s\n", manifest.VectorsSHA256)
	fmt.Fprintf(stdout, "result_digest: %s\n", manifest.ResultDigest)
	return nil
}

func cmdCheck(flags map[string]string, stdout io.Writer, stderr io.Writer) error {
	manifestPath := requireFlag(flags, "--manifest")
	if manifestPath == "" {
		return corpus.New(corpus.CLIUsage, -1, "check requires --manifest")
	}

	report, err := corpus.Check(manifestPath)
	if err != nil {
		if report != nil {
			for _, m := range report.Mismatches {
				fmt.Fprintf(stderr, "mismatch: %s\n", m)
			}
		}
		return err
	}
	fmt.Fprintf(stdout, "cases: %d\n", report.CaseCount)
	fmt.Fprintf(stdout, "result_digest: %s\n", report.Digest)
	fmt.Fprintln(stdout, "ok")
	return nil
}

// writeClassifiedError prints err and maps its failure class to an exit
// code, falling back to the internal-error code for unclassified errors.
func writeClassifiedError(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "error: %v\n", err)
	var cerr *corpus.Error
	if errors.As(err, &cerr) {
		return cerr.Class.ExitCode()
	}
	return corpus.InternalError.ExitCode()
}

func parseKV(args []string) (map[string]string, error) {
	flags := make(map[string]string)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--help" || arg == "-h" {
			flags[arg] = "true"
			continue
		}
		if !strings.HasPrefix(arg, "--") {
			return nil, fmt.Errorf("unexpected argument %q", arg)
		}
		if strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			flags[parts[0]] = parts[1]
			continue
		}
		if i+1 >= len(args) {
			return nil, fmt.Errorf("flag %s requires value", arg)
		}
		flags[arg] = args[i+1]
		i++
	}
	return flags, nil
}

func requireFlag(flags map[string]string, name string) string {
	return strings.TrimSpace(flags[name])
}

func writeUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: ryu-vectors <gen|check> [flags]")
	fmt.Fprintln(w, "  gen --dir <path> [--count <n>]")
	fmt.Fprintln(w, "      Write a deterministic vector corpus and its manifest.")
	fmt.Fprintln(w, "  check --manifest <path>")
	fmt.Fprintln(w, "      Verify checksums and replay every vector against the converter.")
}
