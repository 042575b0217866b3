package opengl

import "glsafe/driver"

// tracker caches the object bound to one GL binding point so that repeated
// binds of the same object issue a single driver call.
type tracker struct {
	bound Handle
	// stale is set when the cache no longer reflects the driver, for example
	// after foreign code touched GL state. The next set always binds.
	stale bool
	bind  func(name uint32)
}

func newTracker(bind func(name uint32)) tracker {
	return tracker{bind: bind}
}

// set binds h unless it is already bound.
func (t *tracker) set(h Handle) {
	if !t.stale && t.bound == h {
		return
	}
	t.bind(uint32(h))
	t.bound = h
	t.stale = false
}

// reset binds the zero object.
func (t *tracker) reset() {
	t.bind(0)
	t.bound = 0
	t.stale = false
}

// forget resets the binding point if it holds h. It is called before h is
// deleted so the cache never reports a dead name as bound.
func (t *tracker) forget(h Handle) {
	if h != 0 && t.bound == h {
		t.reset()
	}
}

func (t *tracker) invalidate() { t.stale = true }

type unitTarget struct {
	unit   int
	target driver.Enum
}

// unitTable caches texture and sampler bindings per image unit, plus the
// active-texture selector.
type unitTable struct {
	fns      driver.Functions
	active   int
	stale    bool
	textures map[unitTarget]Handle
	samplers []Handle
}

func newUnitTable(fns driver.Functions, units int) unitTable {
	return unitTable{
		fns:      fns,
		textures: make(map[unitTarget]Handle),
		samplers: make([]Handle, units),
	}
}

func (u *unitTable) selectUnit(unit int) {
	if !u.stale && u.active == unit {
		return
	}
	u.fns.ActiveTexture(driver.TEXTURE0 + driver.Enum(unit))
	u.active = unit
	if u.stale {
		clear(u.textures)
		for i := range u.samplers {
			u.samplers[i] = staleSampler
		}
		u.stale = false
	}
}

// staleSampler is never a real sampler name; it forces the next bind.
const staleSampler = ^Handle(0)

func (u *unitTable) bindTexture(unit int, target driver.Enum, h Handle) {
	u.selectUnit(unit)
	k := unitTarget{unit, target}
	if bound, ok := u.textures[k]; ok && bound == h {
		return
	}
	u.fns.BindTexture(target, uint32(h))
	u.textures[k] = h
}

func (u *unitTable) bindSampler(unit int, h Handle) {
	if !u.stale && u.samplers[unit] == h {
		return
	}
	u.fns.BindSampler(uint32(unit), uint32(h))
	u.samplers[unit] = h
}

func (u *unitTable) forgetTexture(h Handle) {
	for k, bound := range u.textures {
		if bound == h {
			u.selectUnit(k.unit)
			u.fns.BindTexture(k.target, 0)
			u.textures[k] = 0
		}
	}
}

func (u *unitTable) forgetSampler(h Handle) {
	for unit, bound := range u.samplers {
		if bound == h {
			u.fns.BindSampler(uint32(unit), 0)
			u.samplers[unit] = 0
		}
	}
}

func (u *unitTable) invalidate() { u.stale = true }

// boundBuffer is a buffer bound to a copy target. Buffer operations go
// through it so they cannot reach a buffer that the tracker did not bind.
type boundBuffer struct {
	fns    driver.Functions
	target driver.Enum
}

func (b boundBuffer) data(size int, data []byte, usage Usage) {
	b.fns.BufferData(b.target, size, data, driver.Enum(usage))
}

func (b boundBuffer) subData(offset int, data []byte) {
	b.fns.BufferSubData(b.target, offset, data)
}

func (b boundBuffer) getSubData(offset int, dst []byte) {
	b.fns.GetBufferSubData(b.target, offset, dst)
}

// boundTexture is a texture bound to the internal image unit.
type boundTexture struct {
	fns    driver.Functions
	target driver.Enum
}

func (t boundTexture) parami(pname driver.Enum, v int32) { t.fns.TexParameteri(t.target, pname, v) }
func (t boundTexture) paramf(pname driver.Enum, v float32) {
	t.fns.TexParameterf(t.target, pname, v)
}
func (t boundTexture) paramfv(pname driver.Enum, v []float32) {
	t.fns.TexParameterfv(t.target, pname, v)
}
