package driver

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// directThreshold is the size below which texture readback bypasses
// the PBO pool and uses a blocking GetTexImage. Small reads finish
// faster synchronously than a fence round trip.
const directThreshold = 64 << 10

// pboPool double-buffers pixel-pack buffers so a readback can overlap
// the next frame's GPU work. Buffers are grown on demand and reused;
// each slot remembers the fence of the readback still targeting it so
// reuse waits out the pending copy instead of overwriting it.
type pboPool struct {
	bufs   [2]uint32
	sizes  [2]int
	fences [2]uintptr
	next   int
}

var readbackPool pboPool

// slotFor advances the round-robin cursor and returns the chosen slot
// together with any fence still pending on it.
func (p *pboPool) slotFor() (slot int, pending uintptr) {
	i := p.next
	p.next = (p.next + 1) % len(p.bufs)
	return i, p.fences[i]
}

func (p *pboPool) acquire(size int) (slot int, buf uint32) {
	i, pending := p.slotFor()
	if pending != 0 {
		// The fence itself is owned by the outstanding token; its
		// Read deletes it.
		gl.ClientWaitSync(pending, gl.SYNC_FLUSH_COMMANDS_BIT, gl.TIMEOUT_IGNORED)
		p.fences[i] = 0
	}
	if p.bufs[i] == 0 {
		gl.GenBuffers(1, &p.bufs[i])
	}
	if p.sizes[i] < size {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, p.bufs[i])
		gl.BufferData(gl.PIXEL_PACK_BUFFER, size, nil, gl.STREAM_READ)
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
		p.sizes[i] = size
	}
	return i, p.bufs[i]
}

// release clears a slot's pending fence once its token consumed the
// data. A later acquire may already have cleared it.
func (p *pboPool) release(slot int, fence uintptr) {
	if p.fences[slot] == fence {
		p.fences[slot] = 0
	}
}

// ReadbackToken tracks an in-flight asynchronous texture readback.
// The pixel data lives in a pooled pixel-pack buffer until Read maps
// it out.
type ReadbackToken struct {
	buf   uint32
	slot  int
	fence uintptr
	size  int
	done  bool
}

// ReadTextureSync reads the full texture contents synchronously.
func ReadTextureSync(tex uint32, w, h int, f TexFormat, out []byte) error {
	restore := Guard()
	defer restore()
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.GetTexImage(gl.TEXTURE_2D, 0, f.Transfer, f.Type, unsafe.Pointer(&out[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("driver: texture read: gl error 0x%04x", e)
	}
	return nil
}

// ReadTextureAsync starts an asynchronous readback of the full
// texture into a pooled buffer and returns a token to poll. Reads
// under the direct threshold fall back to the synchronous path and
// return a completed token.
func ReadTextureAsync(tex uint32, w, h int, f TexFormat) (*ReadbackToken, []byte, error) {
	size := w * h * f.PixelSize
	if size <= directThreshold {
		out := make([]byte, size)
		if err := ReadTextureSync(tex, w, h, f, out); err != nil {
			return nil, nil, err
		}
		return &ReadbackToken{done: true}, out, nil
	}

	restore := Guard()
	defer restore()
	slot, buf := readbackPool.acquire(size)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, buf)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.GetTexImage(gl.TEXTURE_2D, 0, f.Transfer, f.Type, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	fence := gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return nil, nil, fmt.Errorf("driver: async texture read: gl error 0x%04x", e)
	}
	readbackPool.fences[slot] = fence
	return &ReadbackToken{buf: buf, slot: slot, fence: fence, size: size}, nil, nil
}

// Poll reports whether the readback has completed without blocking.
func (t *ReadbackToken) Poll() bool {
	if t.done {
		return true
	}
	restore := Guard()
	defer restore()
	status := gl.ClientWaitSync(t.fence, 0, 0)
	return status == gl.ALREADY_SIGNALED || status == gl.CONDITION_SATISFIED
}

// Wait blocks until the readback completes or the timeout elapses.
func (t *ReadbackToken) Wait(timeout time.Duration) bool {
	if t.done {
		return true
	}
	restore := Guard()
	defer restore()
	status := gl.ClientWaitSync(t.fence, gl.SYNC_FLUSH_COMMANDS_BIT, uint64(timeout.Nanoseconds()))
	return status == gl.ALREADY_SIGNALED || status == gl.CONDITION_SATISFIED
}

// Read waits for completion and maps the pixel data out of the pooled
// buffer. Call once; the pooled buffer is recycled afterwards.
func (t *ReadbackToken) Read() ([]byte, error) {
	if t.done {
		return nil, fmt.Errorf("driver: readback already consumed")
	}
	restore := Guard()
	defer restore()
	gl.ClientWaitSync(t.fence, gl.SYNC_FLUSH_COMMANDS_BIT, gl.TIMEOUT_IGNORED)
	gl.DeleteSync(t.fence)
	readbackPool.release(t.slot, t.fence)
	t.done = true

	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, t.buf)
	ptr := gl.MapBufferRange(gl.PIXEL_PACK_BUFFER, 0, t.size, gl.MAP_READ_BIT)
	if ptr == nil {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
		return nil, fmt.Errorf("driver: map readback buffer")
	}
	out := make([]byte, t.size)
	copy(out, unsafe.Slice((*byte)(ptr), t.size))
	gl.UnmapBuffer(gl.PIXEL_PACK_BUFFER)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	return out, nil
}
