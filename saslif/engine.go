// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package saslif

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/emergent/v2/timer"
)

// Engine integrates the dynamics of every cell of a ParameterMesh in
// lock-step.  Steps are strictly sequential; within a step the cells are
// updated in parallel over NThreads contiguous bands.  Random draws are
// always made on the calling goroutine in row-major cell order, so results
// do not depend on NThreads or on whether a trace is kept.
// An Engine must not be used for more than one run at a time.
type Engine struct {

	// name used in reports
	Nm string

	// number of threads to use for the per-step cell updates
	NThreads int

	// if set, runtime.LockOSThread() is called on the compute threads, which can be faster on large meshes on some architectures -- experimentation is recommended
	LockThreads bool

	// optional precomputed forcing series of length NSteps, shared by all
	// cells when the mesh does not sweep forcing amplitudes -- if nil it is
	// computed from the parameters with ForcingSeries
	Forcing []float32

	// logger for progress and run summaries -- slog.Default() if nil
	Log *slog.Logger

	// flat cell index range [st, ed) for each thread
	ThrBands [][2]int `view:"-"`

	// channels for communicating with the threads
	ThrChans []CellFunChan `view:"-"`

	// timers for each thread, so you can see how evenly the workload is being distributed
	ThrTimes []timer.Time `view:"-"`

	// timers for each major function (step of processing)
	FunTimes map[string]*timer.Time `view:"-"`

	// wait group for threads
	WaitGp sync.WaitGroup `view:"-"`
}

// NewEngine returns an engine using nthreads threads.  nthreads <= 0 uses
// runtime.GOMAXPROCS(0).
func NewEngine(nthreads int) *Engine {
	if nthreads <= 0 {
		nthreads = runtime.GOMAXPROCS(0)
	}
	return &Engine{Nm: "saslif", NThreads: nthreads}
}

// Result holds the outputs of one run
type Result struct {

	// spike-start step indices for every cell
	Spikes *SpikeLog

	// membrane potential of every cell at every step -- nil unless a trace was requested
	Trace *VoltageTrace

	// per-cell capacity and instability warnings
	Warnings Warnings

	// number of time steps simulated
	NSteps int
}

// Simulate runs the mesh on a new Engine with one thread per available CPU.
// See Engine.Run.
func Simulate(sp *SimParams, mesh *ParameterMesh, preserveTrace bool, rnd erand.Rand) (*Result, error) {
	return NewEngine(0).Run(sp, mesh, preserveTrace, rnd)
}

func (en *Engine) logger() *slog.Logger {
	if en.Log != nil {
		return en.Log
	}
	return slog.Default()
}

// cellParams holds the per-cell values of the parameters that can be swept
type cellParams struct {
	thetaAmp, interfAmp []float32
	response, decay     []float32
	mu, sigma           []float32
}

func uniform(n int, v float32) []float32 {
	vs := make([]float32, n)
	for i := range vs {
		vs[i] = v
	}
	return vs
}

// newCellParams broadcasts the scalar parameters over the mesh and replaces
// the two swept by the mesh role with the mesh values.
func newCellParams(sp *SimParams, mesh *ParameterMesh) *cellParams {
	nx, ny := mesh.Shape()
	n := nx * ny
	cp := &cellParams{
		thetaAmp:  uniform(n, sp.Forcing.ThetaAmp),
		interfAmp: uniform(n, sp.Forcing.InterfAmp),
		response:  uniform(n, sp.Adapt.Response),
		decay:     uniform(n, sp.Adapt.Decay),
		mu:        uniform(n, sp.Noise.Mu),
		sigma:     uniform(n, sp.Noise.Sigma),
	}
	var p1, p2 []float32
	switch mesh.Role {
	case ForcingMesh:
		p1, p2 = cp.thetaAmp, cp.interfAmp
	case AdaptMesh:
		p1, p2 = cp.response, cp.decay
	case NoiseMesh:
		p1, p2 = cp.mu, cp.sigma
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			pr := mesh.Pair(i, j)
			p1[i*ny+j] = pr.X
			p2[i*ny+j] = pr.Y
		}
	}
	return cp
}

// Validate checks all inputs of a run, returning a *ConfigError for the first problem found
func (en *Engine) Validate(sp *SimParams, mesh *ParameterMesh, rnd erand.Rand) error {
	if sp == nil {
		return configErrorf("SimParams", "is nil")
	}
	if err := sp.Validate(); err != nil {
		return err
	}
	if mesh == nil {
		return configErrorf("ParameterMesh", "is nil")
	}
	if err := mesh.Validate(); err != nil {
		return err
	}
	if rnd == nil {
		return configErrorf("Rand", "a random number generator is required")
	}
	if en.Forcing != nil && mesh.Role != ForcingMesh && len(en.Forcing) != sp.Time.NSteps {
		return configErrorf("Forcing", "series has %d values for %d steps", len(en.Forcing), sp.Time.NSteps)
	}
	return nil
}

// Run simulates every cell of mesh under parameters sp for sp.Time.NSteps
// steps, drawing one standard normal value per cell per step from rnd.
// If preserveTrace is set, the membrane potential of every cell at every
// step is kept in Result.Trace.  Invalid inputs return a *ConfigError
// before any step is run.  Cells that exceed the spike capacity or diverge
// do not stop the run: they are reported in Result.Warnings.
func (en *Engine) Run(sp *SimParams, mesh *ParameterMesh, preserveTrace bool, rnd erand.Rand) (*Result, error) {
	if err := en.Validate(sp, mesh, rnd); err != nil {
		return nil, err
	}
	log := en.logger()
	nx, ny := mesh.Shape()
	ncells := nx * ny
	nsteps := sp.Time.NSteps
	dt := sp.Time.Dt
	spk := &sp.Spike
	adapt := &sp.Adapt
	noise := &sp.Noise
	forc := &sp.Forcing
	restV := spk.RestV

	cp := newCellParams(sp, mesh)
	shared := en.Forcing
	if mesh.Role != ForcingMesh && shared == nil {
		shared = ForcingSeries(sp)
	}

	st := NewMeshState(nx, ny, restV)
	st.InitSpiking(spk.Thr)
	res := &Result{NSteps: nsteps}
	res.Spikes = NewSpikeLog(nx, ny, sp.SpikeCap)
	var trace *VoltageTrace
	if preserveTrace {
		trace = NewVoltageTrace(nx, ny, nsteps)
		for idx := 0; idx < ncells; idx++ {
			trace.SetCell(idx, 0, restV)
		}
		res.Trace = trace
	}
	log.Info("simulating mesh", "mesh", mesh.String(), "params", sp.String(), "trace", preserveTrace,
		"state", datasize.ByteSize(st.SizeBytes()).HumanReadable(),
		"spikelog", datasize.ByteSize(res.Spikes.SizeBytes()).HumanReadable(),
		"voltage_trace", datasize.ByteSize(traceBytes(trace)).HumanReadable())

	en.BuildThreads(ncells)
	en.StartThreads()
	defer en.StopThreads()

	draws := make([]float32, ncells)
	var step int
	var thetaSin, interfSin float32

	cellUpdt := func(cst, ced int) {
		for idx := cst; idx < ced; idx++ {
			if st.Flags[idx].HasFlag(NeurDiverged) {
				if trace != nil {
					trace.SetCell(idx, step, restV)
				}
				continue
			}
			var f float32
			if mesh.Role == ForcingMesh {
				f = cp.thetaAmp[idx]*thetaSin + cp.interfAmp[idx]*interfSin
			} else {
				f = shared[step]
			}
			spiking := st.IsSpiking(idx)
			st.W[idx] = adapt.WFmSpike(st.W[idx], spiking, dt, cp.response[idx], cp.decay[idx])
			st.Xi[idx] = noise.XiFmRand(st.Xi[idx], cp.mu[idx], cp.sigma[idx], dt, draws[idx])
			v := st.V[idx]
			rf := st.Refract[idx]
			if !spiking {
				v = spk.VmFmInputs(v, f, st.W[idx], st.Xi[idx])
			} else if rf <= spk.RefractLen {
				v = spk.SpikeV
			} else {
				v = restV
			}
			if rf > spk.RefractLen {
				rf = 0
			}
			// NaN counts as above threshold
			spiking = !(v < spk.Thr)
			if spiking {
				if rf == 0 {
					res.Spikes.Append(idx, step)
				}
				if rf <= spk.RefractLen {
					rf++
				}
			}
			st.V[idx] = v
			st.Refract[idx] = rf
			st.Flags[idx].SetFlag(spiking, NeurSpiking)
			if trace != nil {
				trace.SetCell(idx, step, v)
			}
		}
	}

	prog := max(nsteps/10, 1)
	for step = 1; step < nsteps; step++ {
		en.FunTimerStart("Draw")
		for idx := 0; idx < ncells; idx++ {
			draws[idx] = cp.mu[idx] + float32(rnd.NormFloat64(-1))
		}
		en.FunTimerStop("Draw")
		if mesh.Role == ForcingMesh {
			thetaSin = forc.ThetaSin(step, dt)
			interfSin = forc.InterfSin(step, dt)
		}
		en.ThrCellFun(cellUpdt, "CellUpdt")
		if step%sp.CheckEvery == 0 || step == nsteps-1 {
			en.checkFinite(st, step, restV, &res.Warnings)
		}
		if step%prog == 0 {
			log.Debug("simulation progress", "step", step, "nsteps", nsteps, "time_ms", sp.Time.StepTime(step))
		}
	}

	res.Warnings.Capacity = res.Spikes.CapacityWarnings()
	for _, cw := range res.Warnings.Capacity {
		log.Warn("spike capacity exceeded", "cell", cw.Cell.String(), "dropped", cw.Dropped, "cap", sp.SpikeCap)
	}
	for _, iw := range res.Warnings.Instability {
		log.Warn("cell diverged", "cell", iw.Cell.String(), "step", iw.Step)
	}
	log.Info("simulation done", "nsteps", nsteps, "spikes", res.Spikes.TotalSpikes(), "depth", res.Spikes.Depth(),
		"warnings", res.Warnings.Len())
	return res, nil
}

// checkFinite flags, resets and freezes every cell whose state is no
// longer finite, adding an InstabilityWarning for each.
func (en *Engine) checkFinite(st *MeshState, step int, restV float32, ws *Warnings) {
	en.FunTimerStart("CheckFinite")
	for idx := 0; idx < st.NCells(); idx++ {
		if st.Flags[idx].HasFlag(NeurDiverged) || st.IsFinite(idx) {
			continue
		}
		st.InitCell(idx, restV)
		st.Flags[idx].SetFlag(true, NeurDiverged)
		ws.Instability = append(ws.Instability, InstabilityWarning{Cell: st.CellAt(idx), Step: step})
	}
	en.FunTimerStop("CheckFinite")
}

func traceBytes(vt *VoltageTrace) int {
	if vt == nil {
		return 0
	}
	return 4 * len(vt.Values)
}
