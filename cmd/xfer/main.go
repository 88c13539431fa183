// main.go - transfer relation files between storage trees
//
// (c) 2026 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package main

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/opencoff/go-logger"
	"github.com/opencoff/go-xfer"
	flag "github.com/opencoff/pflag"
)

var Z = path.Base(os.Args[0])

type config struct {
	oldRoot string
	newRoot string
	mode    xfer.Mode

	ncpu      int
	verify    bool
	skipProbe bool
	report    string
}

func main() {
	var help, verify, skipProbe, verbose bool
	var oldRoot, newRoot, mode, report, logfile string
	var ncpu int

	fs := flag.NewFlagSet(Z, flag.ExitOnError)

	fs.BoolVarP(&help, "help", "h", false, "Show help and exit [False]")
	fs.StringVarP(&oldRoot, "old-root", "o", "", "Use `D` as the old storage tree")
	fs.StringVarP(&newRoot, "new-root", "n", "", "Use `D` as the new storage tree")
	fs.StringVarP(&mode, "mode", "m", "copy", "Transfer files using `M` (copy, clone, link)")
	fs.IntVarP(&ncpu, "concurrency", "c", runtime.NumCPU(), "Transfer upto `N` files concurrently")
	fs.BoolVarP(&verify, "verify", "V", false, "Verify every transferred file [False]")
	fs.StringVarP(&report, "report", "r", "", "Write a transfer report to `F`")
	fs.StringVarP(&logfile, "log", "l", "STDOUT", "Write logs to `F`")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Log every transferred file [False]")
	fs.BoolVarP(&skipProbe, "skip-probe", "", false, "Don't probe link/clone capability [False]")

	fs.SetOutput(os.Stdout)

	err := fs.Parse(os.Args[1:])
	if err != nil {
		Die("%s", err)
	}

	if help {
		usage(fs)
	}

	if len(oldRoot) == 0 || len(newRoot) == 0 {
		Die("both --old-root and --new-root are required")
	}

	m, err := xfer.ParseMode(mode)
	if err != nil {
		Die("%s", err)
	}

	files := fs.Args()
	if len(files) == 0 {
		if files, err = readList(os.Stdin); err != nil {
			Die("%s", err)
		}
	}

	if len(files) == 0 {
		Die("Usage: %s [options] FILE [FILE...]", Z)
	}

	prio := logger.LOG_INFO
	if verbose {
		prio = logger.LOG_DEBUG
	}

	log, err := logger.NewLogger(logfile, prio, Z, logger.Ldate|logger.Ltime|logger.Lmicroseconds)
	if err != nil {
		Die("logfile: %s", err)
	}
	defer log.Close()

	cfg := &config{
		oldRoot:   oldRoot,
		newRoot:   newRoot,
		mode:      m,
		ncpu:      ncpu,
		verify:    verify,
		skipProbe: skipProbe,
		report:    report,
	}

	if err = run(cfg, files, log); err != nil {
		log.Info("%s", err)
		log.Close()
		Die("%s", err)
	}
}

// run the probes and transfer all the files
func run(cfg *config, files []string, log logger.Logger) error {
	if cfg.ncpu <= 0 {
		cfg.ncpu = runtime.NumCPU()
	}

	if !cfg.skipProbe {
		if err := xfer.Probe(cfg.mode, cfg.oldRoot, cfg.newRoot); err != nil {
			return err
		}
		log.Info("%s: probe ok: %s -> %s", cfg.mode, cfg.oldRoot, cfg.newRoot)
	}

	jobs := make([]xfer.Job, 0, len(files))
	rel := make(map[string]string, len(files))
	for _, nm := range files {
		nm = filepath.Clean(nm)
		if !filepath.IsLocal(nm) {
			return fmt.Errorf("%s: not a path relative to the storage roots", nm)
		}

		j := xfer.Job{
			Src: filepath.Join(cfg.oldRoot, nm),
			Dst: filepath.Join(cfg.newRoot, nm),
		}

		if err := os.MkdirAll(filepath.Dir(j.Dst), 0700); err != nil {
			return err
		}

		rel[j.Dst] = nm
		jobs = append(jobs, j)
	}

	b := xfer.NewBatch(cfg.mode,
		xfer.WithConcurrency(cfg.ncpu),
		xfer.WithVerify(cfg.verify),
		xfer.WithLogger(log))

	log.Info("%s: transferring %d files with %d workers ..", cfg.mode, len(jobs), cfg.ncpu)
	err := b.Run(jobs)

	if len(cfg.report) > 0 {
		if rerr := writeReport(cfg.report, b, rel); rerr != nil {
			Warn("report: %s", rerr)
		}
	}

	if err != nil {
		return fmt.Errorf("%d of %d files failed", len(b.Failed()), len(jobs))
	}

	log.Info("%s: %d files done", cfg.mode, len(jobs))
	return nil
}

// read a newline separated list of names; blank lines and lines
// starting with '#' are skipped.
func readList(fd *os.File) ([]string, error) {
	var v []string

	sc := bufio.NewScanner(fd)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if len(s) == 0 || s[0] == '#' {
			continue
		}
		v = append(v, s)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read file list: %w", err)
	}
	return v, nil
}

func usage(fs *flag.FlagSet) {
	fmt.Printf(usageStr, Z, Z)
	fs.PrintDefaults()
	os.Exit(1)
}

var usageStr = `%s - transfer relation files from an old storage tree to a new one.

Each FILE is a path relative to both storage roots. If no FILE is given,
the list of files is read from STDIN (one per line).

Link and clone modes probe the two trees before any file is transferred;
a failed probe aborts the run.

Usage: %s [options] FILE [FILE...]

Options:
`
