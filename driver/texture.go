package driver

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// TexFormat describes a texture's internal format together with the
// pixel transfer parameters uploads and readbacks use.
type TexFormat struct {
	Internal  uint32
	Transfer  uint32
	Type      uint32
	PixelSize int
	GLSL      string
}

// Texture formats supported by the runtime.
var (
	FormatRGBA8   = TexFormat{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, 4, "rgba8"}
	FormatRGBA32F = TexFormat{gl.RGBA32F, gl.RGBA, gl.FLOAT, 16, "rgba32f"}
	FormatR32F    = TexFormat{gl.R32F, gl.RED, gl.FLOAT, 4, "r32f"}
	FormatRG32F   = TexFormat{gl.RG32F, gl.RG, gl.FLOAT, 8, "rg32f"}
	FormatR32I    = TexFormat{gl.R32I, gl.RED_INTEGER, gl.INT, 4, "r32i"}
)

// CreateTexture allocates immutable 2D storage.
func CreateTexture(w, h int, f TexFormat) (uint32, error) {
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("driver: texture size %dx%d", w, h)
	}
	if err := Ensure(); err != nil {
		return 0, err
	}
	restore := Guard()
	defer restore()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexStorage2D(gl.TEXTURE_2D, 1, f.Internal, int32(w), int32(h))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("driver: texture alloc %dx%d: gl error 0x%04x", w, h, e)
	}
	return tex, nil
}

// UploadTexture replaces the full texture contents. data must be
// w*h*PixelSize bytes in the format's transfer layout.
func UploadTexture(tex uint32, w, h int, f TexFormat, data []byte) error {
	if tex == 0 || len(data) == 0 {
		return nil
	}
	restore := Guard()
	defer restore()
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), f.Transfer, f.Type, unsafe.Pointer(&data[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("driver: texture upload: gl error 0x%04x", e)
	}
	return nil
}

// DeleteTexture releases a texture object.
func DeleteTexture(tex uint32) {
	if tex == 0 {
		return
	}
	restore := Guard()
	defer restore()
	gl.DeleteTextures(1, &tex)
}

// BindImageUnit attaches a texture level to an image unit for
// imageLoad/imageStore access.
func BindImageUnit(unit int, tex uint32, f TexFormat) {
	gl.BindImageTexture(uint32(unit), tex, 0, false, 0, gl.READ_WRITE, f.Internal)
}

// BindTextureUnit attaches a texture to a sampler unit.
func BindTextureUnit(unit int, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex)
}
