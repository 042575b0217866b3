package main

import (
	"fmt"

	"github.com/chewxy/math32"

	"glsafe/core"
	"glsafe/math"
	"glsafe/scene"
)

// dayPalette is the sky and light at one key time of day.
type dayPalette struct {
	t            float32 // 0..1
	zenith       core.Color
	horizon      core.Color
	sunColor     core.Color
	sunIntensity float32
	ambient      core.Color
}

// palettes are ordered by t. The cycle wraps from the last back to noon.
var palettes = []dayPalette{
	{ // noon (bright midday)
		t:            0.00,
		zenith:       core.Color{R: 0.20, G: 0.42, B: 0.90, A: 1},
		horizon:      core.Color{R: 0.58, G: 0.75, B: 0.95, A: 1},
		sunColor:     core.Color{R: 1.00, G: 0.98, B: 0.92, A: 1},
		sunIntensity: 3.60,
		ambient:      core.Color{R: 0.16, G: 0.18, B: 0.26, A: 1},
	},
	{ // late afternoon, golden hour
		t:            0.22,
		zenith:       core.Color{R: 0.14, G: 0.20, B: 0.60, A: 1},
		horizon:      core.Color{R: 0.90, G: 0.52, B: 0.18, A: 1},
		sunColor:     core.Color{R: 1.00, G: 0.65, B: 0.25, A: 1},
		sunIntensity: 2.70,
		ambient:      core.Color{R: 0.10, G: 0.12, B: 0.20, A: 1},
	},
	{ // dusk, twilight
		t:            0.30,
		zenith:       core.Color{R: 0.08, G: 0.10, B: 0.28, A: 1},
		horizon:      core.Color{R: 0.50, G: 0.22, B: 0.28, A: 1},
		sunColor:     core.Color{R: 0.70, G: 0.40, B: 0.55, A: 1},
		sunIntensity: 0.80,
		ambient:      core.Color{R: 0.06, G: 0.07, B: 0.14, A: 1},
	},
	{ // midnight
		t:            0.50,
		zenith:       core.Color{R: 0.02, G: 0.03, B: 0.10, A: 1},
		horizon:      core.Color{R: 0.04, G: 0.04, B: 0.08, A: 1},
		sunColor:     core.Color{R: 0.40, G: 0.45, B: 0.65, A: 1}, // moonlight
		sunIntensity: 0.35,
		ambient:      core.Color{R: 0.03, G: 0.04, B: 0.09, A: 1},
	},
	{ // pre-dawn
		t:            0.70,
		zenith:       core.Color{R: 0.06, G: 0.08, B: 0.25, A: 1},
		horizon:      core.Color{R: 0.40, G: 0.18, B: 0.24, A: 1},
		sunColor:     core.Color{R: 0.75, G: 0.42, B: 0.60, A: 1},
		sunIntensity: 0.60,
		ambient:      core.Color{R: 0.06, G: 0.07, B: 0.14, A: 1},
	},
	{ // sunrise, dawn
		t:            0.78,
		zenith:       core.Color{R: 0.12, G: 0.18, B: 0.55, A: 1},
		horizon:      core.Color{R: 0.88, G: 0.45, B: 0.22, A: 1},
		sunColor:     core.Color{R: 1.00, G: 0.60, B: 0.28, A: 1},
		sunIntensity: 2.10,
		ambient:      core.Color{R: 0.09, G: 0.10, B: 0.17, A: 1},
	},
}

// DayNight drives the animated day/night cycle.
type DayNight struct {
	Time   float32 // 0..1: 0=noon, 0.25=sunset, 0.5=midnight, 0.75=sunrise
	Speed  float32 // seconds per cycle
	Active bool
}

func NewDayNight() *DayNight {
	return &DayNight{Speed: 120, Active: true}
}

func (dn *DayNight) Update(dt float32) {
	if !dn.Active || dn.Speed <= 0 {
		return
	}
	dn.Time += dt / dn.Speed
	dn.Time -= math32.Floor(dn.Time)
}

func lerpColor(a, b core.Color, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: 1,
	}
}

// samplePalette interpolates between the keys around t.
func samplePalette(t float32) dayPalette {
	n := len(palettes)
	i := n - 1
	for k := range palettes {
		if palettes[k].t > t {
			break
		}
		i = k
	}
	a, b := palettes[i], palettes[(i+1)%n]
	start, end := a.t, b.t
	if end <= start {
		end++
	}
	if t < start {
		t++
	}
	f := (t - start) / (end - start)
	return dayPalette{
		t:            t,
		zenith:       lerpColor(a.zenith, b.zenith, f),
		horizon:      lerpColor(a.horizon, b.horizon, f),
		sunColor:     lerpColor(a.sunColor, b.sunColor, f),
		sunIntensity: a.sunIntensity + (b.sunIntensity-a.sunIntensity)*f,
		ambient:      lerpColor(a.ambient, b.ambient, f),
	}
}

// Apply sets the sun, ambient light and sky of s for the current time.
func (dn *DayNight) Apply(s *scene.Scene) {
	p := samplePalette(dn.Time)

	// The sun turns in the XY plane, tilted towards +Z so shadows never
	// fall straight down.
	angle := dn.Time * 2 * math32.Pi
	s.Sun.Direction = math.Vec3{
		X: math32.Sin(angle),
		Y: -math32.Cos(angle),
		Z: 0.35,
	}.Normalize()
	s.Sun.Color = p.sunColor
	s.Sun.Intensity = p.sunIntensity
	s.Ambient = p.ambient
	s.SkyZenith = p.zenith
	s.SkyHorizon = p.horizon
}

// TimeOfDayStr returns the time as a 12-hour clock reading.
func (dn *DayNight) TimeOfDayStr() string {
	// Time 0 is noon.
	minutes := int(dn.Time*24*60+12*60) % (24 * 60)
	h, m := minutes/60, minutes%60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, m, period)
}
