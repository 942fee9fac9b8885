// SPDX-License-Identifier: GPL-2.0-or-later

// Package gametime paces the host loop.
package gametime

import (
	"time"

	"godoom/math"
)

type GameTime struct {
	start      time.Time
	now        func() time.Time
	time       float64
	oldTime    float64
	frameTime  float64
	frameCount int
}

func New() *GameTime {
	return newClock(time.Now)
}

func newClock(now func() time.Time) *GameTime {
	h := &GameTime{now: now}
	h.start = now()
	h.Reset()
	return h
}

func (h *GameTime) Reset() {
	h.frameTime = 0.1
}

func (h *GameTime) Time() float64      { return h.time }
func (h *GameTime) OldTime() float64   { return h.oldTime }
func (h *GameTime) FrameTime() float64 { return h.frameTime }
func (h *GameTime) FrameCount() int    { return h.frameCount }
func (h *GameTime) FrameIncrease()     { h.frameCount++ }

// UpdateTime advances the clock. It returns false if a new frame would
// exceed maxFPS, which is clamped to [10, 1000].
func (h *GameTime) UpdateTime(maxFPS float64) bool {
	h.time = h.now().Sub(h.start).Seconds()
	maxFPS = math.Clamp(10.0, maxFPS, 1000.0)
	if h.time-h.oldTime < 1/maxFPS {
		return false
	}
	h.frameTime = h.time - h.oldTime
	h.oldTime = h.time
	h.frameTime = math.Clamp(0.001, h.frameTime, 0.1)
	return true
}

// Sleep returns how long to wait until the next frame is due.
func (h *GameTime) Sleep(maxFPS float64) time.Duration {
	maxFPS = math.Clamp(10.0, maxFPS, 1000.0)
	t := h.now().Sub(h.start).Seconds()
	d := h.oldTime + 1/maxFPS - t
	if d <= 0 {
		return 0
	}
	return time.Duration(d * float64(time.Second))
}
