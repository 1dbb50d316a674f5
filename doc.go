// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package saslif is the overall repository for simulating meshes of spiking
adaptive leaky integrate-and-fire (SASLIF) neurons driven by theta and
interference oscillations, and for quantifying the phase precession or
recession of their spikes relative to the theta rhythm.

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* saslif: the mesh simulation engine.  Every cell of a 2D ParameterMesh is one
neuron with its own pair of swept parameter values (forcing amplitudes,
adaptation constants or noise parameters), updated in parallel over bands of
cells.  Spikes are recorded in a fixed-capacity SpikeLog, and the full
VoltageTrace can optionally be kept.

* phase: Hilbert-transform instantaneous phase of a reference rhythm, cycle
segmentation at the phase wrap points, and reduction of the spike phases of
every (cell, cycle) to one value by mean, median or kernel density mode.

* rmq: the regime quantification (RMQ) of every cell from its per-cycle phases,
regime classification and the ground-truth regime of the driving frequencies.

* report: etable summary tables and return map data, written as CSV.

* logging: leveled slog construction.

* examples: examples/mesh_sweep is a command-line program that runs repeated
sweeps from a YAML configuration, optionally over MPI.
*/
package saslif
