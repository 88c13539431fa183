// report.go - write the per-file transfer report

package main

import (
	"bufio"
	"fmt"
	"slices"
	"strings"

	"github.com/opencoff/go-xfer"
)

// writeReport atomically writes one line per transferred file to 'nm'
func writeReport(nm string, b *xfer.Batch, rel map[string]string) error {
	type line struct {
		name string
		err  error
	}

	var lines []line
	b.Range(func(dst string, err error) bool {
		lines = append(lines, line{rel[dst], err})
		return true
	})

	slices.SortFunc(lines, func(x, y line) int {
		return strings.Compare(x.name, y.name)
	})

	sf, err := xfer.NewSafeFile(nm, true)
	if err != nil {
		return err
	}
	defer sf.Abort()

	w := bufio.NewWriter(sf)
	fmt.Fprintf(w, "# mode %s\n", b.Mode())
	for _, l := range lines {
		if l.err != nil {
			fmt.Fprintf(w, "FAIL %s %s\n", l.name, l.err)
		} else {
			fmt.Fprintf(w, "ok   %s\n", l.name)
		}
	}

	if err = w.Flush(); err != nil {
		return err
	}
	return sf.Close()
}
