package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"xrepeatd/internal/config"
	"xrepeatd/internal/daemon"
	"xrepeatd/internal/x11"
)

const (
	progName = "xrepeatd"
	version  = "0.2.0"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(progName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	showVersion := fs.Bool("V", false, "print version and exit")
	rateArg := fs.String("r", "", "key repeat rate in repeats per second (1-1000)")
	delayArg := fs.String("d", "", "milliseconds a key is held before it repeats (>= 1)")
	configPath := fs.String("c", "", "path to the configuration file")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printUsage(stdout)
			return 0
		}
		printUsage(stderr)
		return 1
	}
	if fs.NArg() > 0 {
		printUsage(stderr)
		return 1
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", progName, version)
		return 0
	}

	path := *configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// Flags override the config file. A malformed number gets the
	// usage text; an out-of-range one gets the bounds message from
	// Validate.
	if *rateArg != "" {
		v, err := config.ParseUint16(*rateArg)
		if err != nil {
			printUsage(stderr)
			return 1
		}
		cfg.Rate = v
	}
	if *delayArg != "" {
		v, err := config.ParseUint16(*delayArg)
		if err != nil {
			printUsage(stderr)
			return 1
		}
		cfg.Delay = v
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	conn, err := x11.Connect(cfg.Display)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer conn.Close()

	if err := conn.Negotiate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	conn.SelectHierarchyEvents()

	logger.Info("xrepeatd started", "rate", cfg.Rate, "delay", cfg.Delay)
	daemon.New(conn, cfg.Rate, cfg.Delay, logger).Run()
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [-hV] [-r rate] [-d delay] [-c configfile]\n", progName)
}
