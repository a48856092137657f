// Package fpprog implements the fpsim command.
package fpprog

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/soniakeys/exit"

	"github.com/ccatp/fpsim/detsim"
	"github.com/ccatp/fpsim/hardware"
	"github.com/ccatp/fpsim/primecam"
)

const versionString = "fpsim version 0.3 Go source."

func Main() {
	defer exit.Handler()

	cl := parseCommandLine()

	hw := primecam.Example()
	if err := hw.Validate(); err != nil {
		exit.Log(err)
	}

	if !cl.hwOnly {
		var tubes []string
		if cl.tubes != "" {
			tubes = strings.Split(cl.tubes, ",")
		}
		dets, err := simTelescope(hw, cl.tele, tubes)
		if err != nil {
			exit.Log(err)
		}
		hw.Detectors = *dets
		log.Printf("simulated %d detectors for telescope %s",
			dets.Len(), cl.tele)
	}

	if err := hw.Save(cl.fnOut); err != nil {
		exit.Log(err)
	}
	log.Println("wrote", cl.fnOut)
}

// simTelescope synthesizes every selected wafer of the telescope on a
// small worker pool.  Wafers are independent, but the output mapping must
// keep placement order, so each job carries a private return channel and
// results are picked up in submission order.
func simTelescope(hw *hardware.Hardware, tele string, tubes []string) (
	*hardware.OrderedMap[hardware.Detector], error) {

	teleprops, ok := hw.Telescopes.Get(tele)
	if !ok {
		return nil, fmt.Errorf("unknown telescope %q", tele)
	}
	placements, err := detsim.TelescopePlacements(hw, tele, tubes)
	if err != nil {
		return nil, err
	}

	type result struct {
		dets *hardware.OrderedMap[hardware.Detector]
		err  error
	}
	type job struct {
		pl  detsim.Placement
		rch chan result
	}

	maxWorkers := runtime.GOMAXPROCS(0)
	if maxWorkers > len(placements) {
		maxWorkers = len(placements)
	}
	jobCh := make(chan job)
	for n := 0; n < maxWorkers; n++ {
		go func() {
			for j := range jobCh {
				dets, err := detsim.WaferDetectors(hw, j.pl.WaferSlot,
					teleprops.PlateScale, &teleprops.FWHM, "", j.pl.Center)
				j.rch <- result{dets, err}
			}
		}()
	}

	// Tickets queued in placement order; a fast worker drops its result
	// in the buffered return channel without waiting for workers ahead
	// of it.
	prCh := make(chan chan result, maxWorkers*2)
	go func() {
		for _, pl := range placements {
			rch := make(chan result, 1)
			prCh <- rch
			jobCh <- job{pl, rch}
		}
		close(jobCh)
		close(prCh)
	}()

	// Drain every ticket even after a failure so the feeder and workers
	// always run to completion.
	alldets := new(hardware.OrderedMap[hardware.Detector])
	var firstErr error
	for rch := range prCh {
		r := <-rch
		switch {
		case r.err != nil && firstErr == nil:
			firstErr = r.err
		case firstErr == nil:
			alldets.Merge(r.dets)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return alldets, nil
}

type commandLine struct {
	tele   string
	tubes  string
	hwOnly bool
	fnOut  string
}

func parseCommandLine() *commandLine {
	var cl commandLine
	flag.StringVar(&cl.tele, "t", "LAT", "")
	flag.StringVar(&cl.tubes, "u", "", "")
	flag.BoolVar(&cl.hwOnly, "hw", false, "")
	vers := flag.Bool("v", false, "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: fpsim [options] <output-file>   write simulated hardware to file
       fpsim -v                        display version and copyright

A ".gz" suffix on the output file selects gzip compression.

Options:
       -t <telescope>     telescope to simulate (default LAT)
       -u <tube,tube,...>  restrict to these tube slots
       -hw                write the hardware description only,
                          without simulated detectors
`)
	}
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	cl.fnOut = flag.Arg(0)
	return &cl
}
