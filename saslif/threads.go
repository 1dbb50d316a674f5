// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package saslif

import (
	"fmt"
	"io"
	"runtime"
	"sort"

	"github.com/emer/emergent/v2/timer"
)

//////////////////////////////////////////////////////////////////////////////////////
//  Threading infrastructure

// CellFunChan is a channel that passes functions operating on a band of
// cells [st, ed) in flat index order
type CellFunChan chan func(st, ed int)

// BuildThreads divides ncells into NThreads contiguous bands of rows of the
// mesh (flat index ranges) and allocates the channels and timers.
// NThreads is reduced to ncells if larger.
func (en *Engine) BuildThreads(ncells int) {
	nthr := max(en.NThreads, 1)
	nthr = min(nthr, max(ncells, 1))
	en.NThreads = nthr
	en.ThrBands = make([][2]int, nthr)
	per := ncells / nthr
	rem := ncells % nthr
	st := 0
	for th := 0; th < nthr; th++ {
		n := per
		if th < rem {
			n++
		}
		en.ThrBands[th] = [2]int{st, st + n}
		st += n
	}
	en.ThrChans = make([]CellFunChan, nthr)
	en.ThrTimes = make([]timer.Time, nthr)
	en.FunTimes = make(map[string]*timer.Time)
	for th := 0; th < nthr; th++ {
		en.ThrChans[th] = make(CellFunChan)
	}
}

// StartThreads starts up the computation threads, which monitor the channels for work.
// Nothing is started if NThreads <= 1.
func (en *Engine) StartThreads() {
	if en.NThreads <= 1 {
		return
	}
	en.logger().Debug("starting threads", "nthreads", en.NThreads, "maxprocs", runtime.GOMAXPROCS(0), "ncpu", runtime.NumCPU())
	for th := 0; th < en.NThreads; th++ {
		go en.ThrWorker(th) // start the worker thread for this channel
	}
}

// StopThreads stops the computation threads
func (en *Engine) StopThreads() {
	if en.NThreads <= 1 {
		return
	}
	for th := 0; th < en.NThreads; th++ {
		close(en.ThrChans[th])
	}
}

// ThrWorker is the worker function run by the worker threads
func (en *Engine) ThrWorker(tt int) {
	if en.LockThreads {
		runtime.LockOSThread()
	}
	band := en.ThrBands[tt]
	for fun := range en.ThrChans[tt] {
		en.ThrTimes[tt].Start()
		fun(band[0], band[1])
		en.ThrTimes[tt].Stop()
		en.WaitGp.Done()
	}
	if en.LockThreads {
		runtime.UnlockOSThread()
	}
}

// ThrCellFun calls function on each band of cells, using threaded (go routine worker)
// computation if NThreads > 1 and otherwise calling it once on all cells in the current thread.
func (en *Engine) ThrCellFun(fun func(st, ed int), funame string) {
	en.FunTimerStart(funame)
	if en.NThreads <= 1 {
		fun(en.ThrBands[0][0], en.ThrBands[0][1])
	} else {
		for th := 0; th < en.NThreads; th++ {
			en.WaitGp.Add(1)
			en.ThrChans[th] <- fun
		}
		en.WaitGp.Wait()
	}
	en.FunTimerStop(funame)
}

// TimerReport writes the amount of time spent in each function, and in each thread
func (en *Engine) TimerReport(w io.Writer) {
	fmt.Fprintf(w, "TimerReport: %v, NThreads: %v\n", en.Nm, en.NThreads)
	fmt.Fprintf(w, "\t%13s \t%7s\t%7s\n", "Function Name", "Secs", "Pct")
	nfn := len(en.FunTimes)
	fnms := make([]string, nfn)
	idx := 0
	for k := range en.FunTimes {
		fnms[idx] = k
		idx++
	}
	sort.StringSlice(fnms).Sort()
	pcts := make([]float64, nfn)
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = en.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Fprintf(w, "\t%13s \t%7.3f\t%7.1f\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Fprintf(w, "\t%13s \t%7.3f\n", "Total", tot)

	if en.NThreads <= 1 {
		return
	}
	fmt.Fprintf(w, "\n\tThr\tSecs\tPct\n")
	pcts = make([]float64, en.NThreads)
	tot = 0.0
	for th := 0; th < en.NThreads; th++ {
		pcts[th] = en.ThrTimes[th].TotalSecs()
		tot += pcts[th]
	}
	for th := 0; th < en.NThreads; th++ {
		fmt.Fprintf(w, "\t%v \t%7.3f\t%7.1f\n", th, pcts[th], 100*(pcts[th]/tot))
	}
}

// ThrTimerReset resets the per-thread timers
func (en *Engine) ThrTimerReset() {
	for th := 0; th < en.NThreads; th++ {
		en.ThrTimes[th].Reset()
	}
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (en *Engine) FunTimerStart(fun string) {
	ft, ok := en.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		en.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (en *Engine) FunTimerStop(fun string) {
	ft := en.FunTimes[fun]
	ft.Stop()
}
