/*
Command fpsim simulates the Prime-Cam focal plane and writes the result as
a hardware description file.

Program overview

The instrument is described by a nested configuration of observing bands,
detector wafers, optics tubes, telescopes and readout electronics.  fpsim
builds the example Prime-Cam configuration, synthesizes a detector record
for every polarization-sensitive sensor of the selected telescope, and
writes the whole description as YAML.

Each wafer packs its pixels on a lattice projected onto the sky: feedhorn
wafers are a hexagon composed of three rhombi, sinuous wafers a plain
hexagonal spiral.  Every surviving pixel yields two detectors with
orthogonal polarizations per observing band.  A detector record carries
the wafer slot, pixel number, band, nominal beam FWHM, polarization tag,
readout channel assignment and an orientation quaternion relative to the
telescope boresight.

Command line usage

  Usage: fpsim [options] <output-file>   write simulated hardware to file
         fpsim -v                        display version and copyright

  Options:
       -t <telescope>      telescope to simulate (default LAT)
       -u <tube,tube,...>  restrict to these tube slots
       -hw                 write the hardware description only,
                           without simulated detectors

A ".gz" suffix on the output file selects gzip compression.

Sample run:

  fpsim -t LAT hardware.yaml.gz

simulates all five LAT instrument modules and writes the compressed
description.  The companion command fpcheck validates and summarizes a
hardware file written by fpsim.
*/
package main
