// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package saslif simulates meshes of uncoupled stochastic, adaptive, leaky
integrate-and-fire (SASLIF) neurons driven by two-oscillator forcing.

Every cell of an Nx x Ny mesh is an independent neuron whose parameters differ
only along the two axes of a ParameterMesh.  The Engine advances all cells in
lock-step and records, for each cell, the time-step index of every spike in a
fixed-capacity SpikeLog.  A full VoltageTrace can optionally be kept for
inspection of small meshes.
*/
package saslif

import (
	"fmt"
	"math"
	"strconv"

	"github.com/chewxy/math32"
)

///////////////////////////////////////////////////////////////////////
//  params.go contains the simulation parameters for the SASLIF mesh

// DefaultSpikeCap is the default maximum number of spikes recorded per cell.
const DefaultSpikeCap = 5000

// SimParams contains all of the scalar parameters for a mesh simulation.
// Values that are swept by a ParameterMesh override the corresponding
// field for each cell; all others are broadcast uniformly over the mesh.
// Call Update after changing any value, and Validate before running.
type SimParams struct {

	// time step and duration of the simulation
	Time TimeParams `view:"inline" yaml:"time"`

	// membrane dynamics and spike generation
	Spike SpikeParams `view:"inline" yaml:"spike"`

	// spike-frequency adaptation current
	Adapt AdaptParams `view:"inline" yaml:"adapt"`

	// Ornstein-Uhlenbeck colored noise current
	Noise NoiseParams `view:"inline" yaml:"noise"`

	// dual-oscillator forcing current
	Forcing ForcingParams `view:"inline" yaml:"forcing"`

	// maximum number of spikes recorded per cell -- further spikes are
	// counted as dropped and reported as a CapacityWarning
	SpikeCap int `def:"5000" min:"1" yaml:"spike_cap"`

	// interval in steps between checks for non-finite state values
	CheckEvery int `def:"1000" min:"1" yaml:"check_every"`
}

// NewSimParams returns a new SimParams with default values.
func NewSimParams() *SimParams {
	sp := &SimParams{}
	sp.Defaults()
	return sp
}

func (sp *SimParams) Defaults() {
	sp.Time.Defaults()
	sp.Spike.Defaults()
	sp.Adapt.Defaults()
	sp.Noise.Defaults()
	sp.Forcing.Defaults()
	sp.SpikeCap = DefaultSpikeCap
	sp.CheckEvery = 1000
	sp.Update()
}

// Update must be called after any changes to parameters
func (sp *SimParams) Update() {
	sp.Time.Update()
	sp.Spike.Update(sp.Time.Dt)
	sp.Adapt.Update()
	sp.Noise.Update(sp.Time.Dt)
	sp.Forcing.Update()
}

// Validate checks that the parameters describe a runnable simulation,
// returning a *ConfigError for the first problem found.
func (sp *SimParams) Validate() error {
	switch {
	case !(sp.Time.Dt > 0):
		return configErrorf("Time.Dt", "must be > 0, got %g", sp.Time.Dt)
	case !(sp.Time.Duration > 0):
		return configErrorf("Time.Duration", "must be > 0, got %g", sp.Time.Duration)
	case sp.Time.NSteps < 2:
		return configErrorf("Time.Duration", "%g ms at dt %g gives fewer than 2 steps", sp.Time.Duration, sp.Time.Dt)
	case !(sp.Spike.Tau > 0):
		return configErrorf("Spike.Tau", "must be > 0, got %g", sp.Spike.Tau)
	case sp.Spike.RefractDur < 0:
		return configErrorf("Spike.RefractDur", "must be >= 0, got %g", sp.Spike.RefractDur)
	case !(sp.Adapt.Tau > 0):
		return configErrorf("Adapt.Tau", "must be > 0, got %g", sp.Adapt.Tau)
	case !(sp.Noise.Tau > 0):
		return configErrorf("Noise.Tau", "must be > 0, got %g", sp.Noise.Tau)
	case sp.SpikeCap < 1:
		return configErrorf("SpikeCap", "must be >= 1, got %d", sp.SpikeCap)
	case sp.CheckEvery < 1:
		return configErrorf("CheckEvery", "must be >= 1, got %d", sp.CheckEvery)
	}
	return nil
}

func (sp *SimParams) String() string {
	return fmt.Sprintf("dt: %g ms  dur: %g ms  steps: %d  thr: %g  rest: %g  spike: %g  theta: %g Hz  interf: %g Hz",
		sp.Time.Dt, sp.Time.Duration, sp.Time.NSteps, sp.Spike.Thr, sp.Spike.RestV, sp.Spike.SpikeV,
		sp.Forcing.ThetaFreq, sp.Forcing.InterfFreq)
}

//////////////////////////////////////////////////////////////////////////////////////
//  TimeParams

// TimeParams are the integration time step and total simulated duration,
// both in milliseconds.
type TimeParams struct {

	// integration time step in msec
	Dt float32 `def:"0.01" min:"0" yaml:"dt"`

	// total simulated duration in msec
	Duration float32 `def:"3000" min:"0" yaml:"duration"`

	// number of time steps = floor(Duration / Dt)
	NSteps int `view:"-" json:"-" yaml:"-"`
}

func (tp *TimeParams) Defaults() {
	tp.Dt = 0.01
	tp.Duration = 3000
	tp.Update()
}

func (tp *TimeParams) Update() {
	if tp.Dt > 0 {
		tp.NSteps = NSteps(tp.Duration, tp.Dt)
	} else {
		tp.NSteps = 0
	}
}

// NSteps returns floor(dur / dt) computed in float64 on the decimal values
// of dur and dt, so 0.3 ms at dt 0.1 is 2 steps and 2 ms at dt 0.1 is 20.
func NSteps(dur, dt float32) int {
	return int(math.Floor(decimal64(dur) / decimal64(dt)))
}

// decimal64 returns the float64 nearest the shortest decimal form of x
func decimal64(x float32) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(x), 'g', -1, 32), 64)
	if err != nil {
		return float64(x)
	}
	return v
}

// StepTime returns the simulated time in msec at given step
func (tp *TimeParams) StepTime(step int) float32 {
	return float32(step) * tp.Dt
}

//////////////////////////////////////////////////////////////////////////////////////
//  SpikeParams

// SpikeParams are the leaky integrate-and-fire membrane parameters.
// Voltages are in mV and times in msec.
type SpikeParams struct {

	// spiking threshold -- crossing it starts a spike
	Thr float32 `def:"-40" yaml:"threshold"`

	// membrane time constant
	Tau float32 `def:"10" min:"0" yaml:"tau"`

	// resting potential, the target of the leak current and the post-spike reset value
	RestV float32 `def:"-75" yaml:"rest_v"`

	// voltage the membrane is clamped to during a spike
	SpikeV float32 `def:"50" yaml:"spike_v"`

	// duration of the spike clamp / refractory window
	RefractDur float32 `def:"2" min:"0" yaml:"refractory_duration"`

	// refractory window in steps = floor(RefractDur / Dt)
	RefractLen int32 `view:"-" json:"-" yaml:"-"`

	// rate = Dt / Tau
	VmDt float32 `view:"-" json:"-" yaml:"-"`
}

func (sp *SpikeParams) Defaults() {
	sp.Thr = -40
	sp.Tau = 10
	sp.RestV = -75
	sp.SpikeV = 50
	sp.RefractDur = 2
}

func (sp *SpikeParams) Update(dt float32) {
	if dt > 0 {
		sp.RefractLen = int32(NSteps(sp.RefractDur, dt))
	}
	if sp.Tau > 0 {
		sp.VmDt = dt / sp.Tau
	}
}

// VmFmInputs returns the forward-Euler update of membrane potential vm,
// leaking toward RestV and driven by the net input current.
func (sp *SpikeParams) VmFmInputs(vm, forcing, adapt, noise float32) float32 {
	return vm + sp.VmDt*((sp.RestV-vm)+forcing-adapt+noise)
}

//////////////////////////////////////////////////////////////////////////////////////
//  AdaptParams

// AdaptParams control the spike-frequency adaptation variable W, which jumps
// up on every step spent spiking and relaxes exponentially back to 0.
type AdaptParams struct {

	// increment rate of W while spiking -- W += Dt * Response
	Response float32 `def:"50" yaml:"response"`

	// relaxation constant -- W decays at rate Dt * Decay / Tau
	Decay float32 `def:"8" yaml:"decay"`

	// adaptation time constant in msec
	Tau float32 `def:"10" min:"0" yaml:"tau"`
}

func (ap *AdaptParams) Defaults() {
	ap.Response = 50
	ap.Decay = 8
	ap.Tau = 10
}

func (ap *AdaptParams) Update() {
}

// WFmSpike returns the updated adaptation value: the spiking jump of
// dt*response followed by exponential decay at dt*decay/Tau.
func (ap *AdaptParams) WFmSpike(w float32, spiking bool, dt, response, decay float32) float32 {
	if spiking {
		w += dt * response
	}
	return w - (dt*decay/ap.Tau)*w
}

//////////////////////////////////////////////////////////////////////////////////////
//  NoiseParams

// NoiseParams are the Ornstein-Uhlenbeck parameters for the colored noise
// current xi: d(xi) = (Mu - xi) / Tau dt + Sigma sqrt(dt Tau) dW
type NoiseParams struct {

	// mean the noise relaxes toward, also the mean of each random draw
	Mu float32 `def:"0.3" yaml:"mu"`

	// volatility
	Sigma float32 `def:"100" min:"0" yaml:"sigma"`

	// relaxation time constant in msec
	Tau float32 `def:"50" min:"0" yaml:"tau"`

	// sqrt(Dt * Tau) -- multiplied by Sigma to scale each random increment
	SqrtDtTau float32 `view:"-" json:"-" yaml:"-"`
}

func (np *NoiseParams) Defaults() {
	np.Mu = 0.3
	np.Sigma = 100
	np.Tau = 50
}

func (np *NoiseParams) Update(dt float32) {
	if dt > 0 && np.Tau > 0 {
		np.SqrtDtTau = math32.Sqrt(dt * np.Tau)
	}
}

// XiFmRand returns the Euler-Maruyama update of noise state xi given one
// random draw rnd, using mean mu and volatility sigma.
func (np *NoiseParams) XiFmRand(xi, mu, sigma, dt, rnd float32) float32 {
	return xi + dt*(mu-xi)/np.Tau + sigma*np.SqrtDtTau*rnd
}

//////////////////////////////////////////////////////////////////////////////////////
//  ForcingParams

// ForcingParams define the deterministic two-oscillator forcing current:
// a theta component and an interference component, each a sinusoid.
// Amplitudes are in mV and frequencies in Hz.
type ForcingParams struct {

	// amplitude of the theta oscillation
	ThetaAmp float32 `def:"35" yaml:"theta_amplitude"`

	// amplitude of the interference oscillation
	InterfAmp float32 `def:"35" yaml:"interference_amplitude"`

	// theta frequency in Hz
	ThetaFreq float32 `def:"10" yaml:"theta_frequency"`

	// interference frequency in Hz
	InterfFreq float32 `def:"11" yaml:"interference_frequency"`
}

func (fp *ForcingParams) Defaults() {
	fp.ThetaAmp = 35
	fp.InterfAmp = 35
	fp.ThetaFreq = 10
	fp.InterfFreq = 11
}

func (fp *ForcingParams) Update() {
}

// ThetaSin returns the unit-amplitude theta oscillation at given step.
// Frequencies are in Hz and dt in msec.  The phase argument is computed in
// float64 as it grows without bound over long runs.
func (fp *ForcingParams) ThetaSin(step int, dt float32) float32 {
	return oscSin(fp.ThetaFreq, step, dt)
}

// InterfSin returns the unit-amplitude interference oscillation at given step.
func (fp *ForcingParams) InterfSin(step int, dt float32) float32 {
	return oscSin(fp.InterfFreq, step, dt)
}

func oscSin(freq float32, step int, dt float32) float32 {
	return float32(oscSin64(freq, step, dt))
}

func oscSin64(freq float32, step int, dt float32) float64 {
	return math.Sin(2 * math.Pi * float64(freq) / 1000 * float64(dt) * float64(step))
}

// At returns the forcing at given step for the given amplitudes.
func (fp *ForcingParams) At(step int, dt, thetaAmp, interfAmp float32) float32 {
	return thetaAmp*fp.ThetaSin(step, dt) + interfAmp*fp.InterfSin(step, dt)
}
