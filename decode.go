package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"fsd_recorder/internal/models"
)

type decodeStats struct {
	Lines   int
	Decoded int
	Invalid int
	Kinds   map[string]int
}

// runDecode reads FSD lines from the named files, or stdin when none are
// given, and writes one JSON record per line. It returns the exit code.
func runDecode(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showStats := fs.Bool("stats", false, "Print counts per kind to stderr")
	skipInvalid := fs.Bool("valid", false, "Only output lines that decoded")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	st := &decodeStats{Kinds: make(map[string]int)}
	out := bufio.NewWriter(stdout)
	defer out.Flush()
	enc := json.NewEncoder(out)

	decode := func(r io.Reader) error {
		scanner := bufio.NewScanner(r)
		// ATIS and flight plan lines can be long
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			raw := strings.TrimRight(scanner.Text(), "\r")
			if raw == "" {
				continue
			}
			st.Lines++

			rec := models.NewRecord(models.Line{ReceivedAt: time.Now().UTC(), Raw: raw})
			st.Kinds[rec.Kind]++
			if rec.Failed() {
				st.Invalid++
				if *skipInvalid {
					continue
				}
			} else {
				st.Decoded++
			}

			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encode record: %w", err)
			}
		}
		return scanner.Err()
	}

	if fs.NArg() == 0 {
		if err := decode(stdin); err != nil {
			fmt.Fprintf(stderr, "Input read error: %v\n", err)
			return 1
		}
	}
	for _, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open input: %v\n", err)
			return 1
		}
		err = decode(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(stderr, "Input read error in %s: %v\n", path, err)
			return 1
		}
	}

	if *showStats {
		printStats(stderr, st)
	}
	return 0
}

func printStats(w io.Writer, st *decodeStats) {
	fmt.Fprintf(w, "stats: lines=%d decoded=%d invalid=%d\n", st.Lines, st.Decoded, st.Invalid)

	kinds := make([]string, 0, len(st.Kinds))
	for k := range st.Kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if st.Kinds[kinds[i]] != st.Kinds[kinds[j]] {
			return st.Kinds[kinds[i]] > st.Kinds[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-28s %d\n", k, st.Kinds[k])
	}
}
