// Command fpcheck loads a hardware description file, validates its cross
// references and prints a summary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ccatp/fpsim/hardware"
)

const versionString = "fpcheck version 0.3"

func main() {
	flag.Usage = func() {
		os.Stderr.WriteString(`Usage: fpcheck [options] <hardware-file>
`)
		flag.PrintDefaults()
	}
	vers := flag.Bool("v", false, "display version")
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	hw, err := hardware.Load(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if err := hw.Validate(); err != nil {
		log.Fatal(err)
	}

	fmt.Println("bands:      ", hw.Bands.Len())
	fmt.Println("wafer slots:", hw.WaferSlots.Len())
	fmt.Println("tube slots: ", hw.TubeSlots.Len())
	fmt.Println("telescopes: ", hw.Telescopes.Len())
	fmt.Println("card slots: ", hw.CardSlots.Len())
	fmt.Println("crate slots:", hw.CrateSlots.Len())
	fmt.Println("detectors:  ", hw.Detectors.Len())

	for _, tel := range hw.Telescopes.Keys() {
		tp, _ := hw.Telescopes.Get(tel)
		nwafer := 0
		for _, t := range tp.TubeSlots {
			ts, _ := hw.TubeSlots.Get(t)
			nwafer += len(ts.WaferSlots)
		}
		fmt.Printf("\n%s: %d tube slots, %d wafer slots\n",
			tel, len(tp.TubeSlots), nwafer)
	}

	if hw.Detectors.Len() > 0 {
		fmt.Println("\ndetectors by band:")
		counts := new(hardware.OrderedMap[int])
		for _, it := range hw.Detectors.Items() {
			n, _ := counts.Get(it.Value.Band)
			counts.Set(it.Value.Band, n+1)
		}
		for _, it := range counts.Items() {
			fmt.Printf("  %-14s %6d\n", it.Key, it.Value)
		}
	}
}
