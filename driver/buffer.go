package driver

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// CreateBuffer allocates a shader storage buffer of size bytes. A
// zero size returns handle 0 without touching the driver; uploads
// grow it later.
func CreateBuffer(size int) (uint32, error) {
	if size <= 0 {
		return 0, nil
	}
	if err := Ensure(); err != nil {
		return 0, err
	}
	restore := Guard()
	defer restore()

	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, buf)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, gl.DYNAMIC_COPY)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteBuffers(1, &buf)
		return 0, fmt.Errorf("driver: buffer alloc %d bytes: gl error 0x%04x", size, e)
	}
	return buf, nil
}

// UploadBuffer copies data into the buffer starting at byte offset.
func UploadBuffer(buf uint32, offset int, data []byte) error {
	if buf == 0 || len(data) == 0 {
		return nil
	}
	restore := Guard()
	defer restore()
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, buf)
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, offset, len(data), unsafe.Pointer(&data[0]))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("driver: buffer upload: gl error 0x%04x", e)
	}
	return nil
}

// DownloadBuffer copies bytes out of the buffer into out.
func DownloadBuffer(buf uint32, offset int, out []byte) error {
	if buf == 0 || len(out) == 0 {
		return nil
	}
	restore := Guard()
	defer restore()
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, buf)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, offset, len(out), unsafe.Pointer(&out[0]))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("driver: buffer download: gl error 0x%04x", e)
	}
	return nil
}

// DeleteBuffer releases a buffer object.
func DeleteBuffer(buf uint32) {
	if buf == 0 {
		return
	}
	restore := Guard()
	defer restore()
	gl.DeleteBuffers(1, &buf)
}

// BindStorageBuffer attaches a buffer to a shader storage binding
// slot for the next dispatch.
func BindStorageBuffer(binding int, buf uint32) {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, uint32(binding), buf)
}
