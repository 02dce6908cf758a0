package shade

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/image/draw"

	"github.com/gogpu/shade/driver"
	"github.com/gogpu/shade/ir"
)

// TextureFormat selects the pixel format of a Texture2D.
type TextureFormat int

const (
	// RGBA8 is 8-bit normalised RGBA.
	RGBA8 TextureFormat = iota
	// RGBA32F is full-float RGBA.
	RGBA32F
	// R32F is single-channel float.
	R32F
	// RG32F is two-channel float.
	RG32F
	// R32I is single-channel signed int.
	R32I
)

func (f TextureFormat) driverFormat() driver.TexFormat {
	switch f {
	case RGBA32F:
		return driver.FormatRGBA32F
	case R32F:
		return driver.FormatR32F
	case RG32F:
		return driver.FormatRG32F
	case R32I:
		return driver.FormatR32I
	}
	return driver.FormatRGBA8
}

// Texture2D is a GPU texture usable from kernels as an image (load
// and store) or as a sampler (filtered reads). The GPU object is
// created lazily.
type Texture2D struct {
	width  int
	height int
	format TextureFormat
	handle uint32
	made   bool
}

// NewTexture2D creates a texture of the given size and format.
func NewTexture2D(width, height int, format TextureFormat) (*Texture2D, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("shade: texture size %dx%d", width, height)
	}
	return &Texture2D{width: width, height: height, format: format}, nil
}

// Width returns the texture width in pixels.
func (t *Texture2D) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture2D) Height() int { return t.height }

// Format returns the pixel format.
func (t *Texture2D) Format() TextureFormat { return t.format }

// PixelSize returns the byte size of one pixel.
func (t *Texture2D) PixelSize() int { return t.format.driverFormat().PixelSize }

func (t *Texture2D) deviceHandle() (uint32, error) {
	if t.made {
		return t.handle, nil
	}
	h, err := driver.CreateTexture(t.width, t.height, t.format.driverFormat())
	if err != nil {
		return 0, err
	}
	t.handle = h
	t.made = true
	return h, nil
}

// Handle returns the GPU texture object, creating it if needed.
func (t *Texture2D) Handle() (uint32, error) { return t.deviceHandle() }

// transferSize clamps a transfer slice length to the full image size.
// Textures transfer whole images, so excess bytes are ignored but a
// short slice is an error.
func (t *Texture2D) transferSize(n int, op string) (int, error) {
	want := t.width * t.height * t.PixelSize()
	if n < want {
		return 0, fmt.Errorf("shade: texture %s %d bytes, want %d", op, n, want)
	}
	return want, nil
}

// Upload replaces the texture contents from the first
// width*height*PixelSize bytes of data.
func (t *Texture2D) Upload(data []byte) error {
	want, err := t.transferSize(len(data), "upload")
	if err != nil {
		return err
	}
	handle, err := t.deviceHandle()
	if err != nil {
		return err
	}
	return driver.UploadTexture(handle, t.width, t.height, t.format.driverFormat(), data[:want])
}

// Download reads the full texture contents synchronously into the
// first width*height*PixelSize bytes of out.
func (t *Texture2D) Download(out []byte) error {
	want, err := t.transferSize(len(out), "download")
	if err != nil {
		return err
	}
	handle, err := t.deviceHandle()
	if err != nil {
		return err
	}
	return driver.ReadTextureSync(handle, t.width, t.height, t.format.driverFormat(), out[:want])
}

// Readback is an in-flight asynchronous texture download.
type Readback struct {
	tok  *driver.ReadbackToken
	data []byte
}

// Ready reports whether the pixels have arrived.
func (r *Readback) Ready() bool {
	if r.data != nil {
		return true
	}
	return r.tok.Poll()
}

// Wait blocks until the pixels arrive or the timeout elapses.
func (r *Readback) Wait(timeout time.Duration) bool {
	if r.data != nil {
		return true
	}
	return r.tok.Wait(timeout)
}

// Read returns the pixel data, blocking if it has not arrived.
func (r *Readback) Read() ([]byte, error) {
	if r.data != nil {
		return r.data, nil
	}
	return r.tok.Read()
}

// DownloadAsync starts a pipelined readback of the full texture.
// Small textures complete immediately through the direct path.
func (t *Texture2D) DownloadAsync() (*Readback, error) {
	handle, err := t.deviceHandle()
	if err != nil {
		return nil, err
	}
	tok, data, err := driver.ReadTextureAsync(handle, t.width, t.height, t.format.driverFormat())
	if err != nil {
		return nil, err
	}
	return &Readback{tok: tok, data: data}, nil
}

// SetImage uploads any image, scaling it to the texture size when
// needed. Only RGBA8 textures accept images.
func (t *Texture2D) SetImage(img image.Image) error {
	if t.format != RGBA8 {
		return fmt.Errorf("shade: SetImage requires an RGBA8 texture")
	}
	rgba := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	b := img.Bounds()
	if b.Dx() == t.width && b.Dy() == t.height {
		draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)
	} else {
		draw.BiLinear.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
	}
	return t.Upload(rgba.Pix)
}

// ToImage downloads an RGBA8 texture as an image.
func (t *Texture2D) ToImage() (*image.RGBA, error) {
	if t.format != RGBA8 {
		return nil, fmt.Errorf("shade: ToImage requires an RGBA8 texture")
	}
	rgba := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	if err := t.Download(rgba.Pix); err != nil {
		return nil, err
	}
	return rgba, nil
}

// Release frees the GPU texture.
func (t *Texture2D) Release() {
	if t.made && t.handle != 0 {
		driver.DeleteTexture(t.handle)
	}
	t.handle = 0
	t.made = false
}

// Bind declares the texture as an image2D in the recording context
// and returns the load/store accessor.
func (t *Texture2D) Bind() *Image2D {
	ctx := current()
	if ctx == nil {
		Logger().Warn("shade: texture bound outside a kernel")
		return &Image2D{}
	}
	_, name := ctx.registerImage(t.format.driverFormat().GLSL, false, t.width, t.height, t)
	return &Image2D{name: name}
}

// BindSampler declares the texture as a sampler2D in the recording
// context and returns the sampling accessor.
func (t *Texture2D) BindSampler() *Sampler2D {
	ctx := current()
	if ctx == nil {
		Logger().Warn("shade: sampler bound outside a kernel")
		return &Sampler2D{}
	}
	_, name := ctx.registerImage(t.format.driverFormat().GLSL, true, t.width, t.height, t)
	return &Sampler2D{name: name}
}

// Image2D is the in-kernel face of an image-bound texture.
type Image2D struct {
	name string
}

// Load reads the texel at integer coordinates.
func (im *Image2D) Load(xy Operand[IVec2]) Expr[Vec4] {
	if im.name == "" {
		return Expr[Vec4]{}
	}
	return exprOf[Vec4](ir.Intrinsic{Name: "imageLoad", Args: []ir.Node{ir.Load{Name: im.name}, node(xy)}})
}

// Store writes the texel at integer coordinates.
func (im *Image2D) Store(xy Operand[IVec2], val Operand[Vec4]) {
	if im.name == "" {
		return
	}
	emitStatement(ir.Intrinsic{Name: "imageStore", Args: []ir.Node{ir.Load{Name: im.name}, node(xy), node(val)}})
}

// Size returns the image dimensions as an in-kernel expression.
func (im *Image2D) Size() Expr[IVec2] {
	if im.name == "" {
		return Expr[IVec2]{}
	}
	return Raw[IVec2](fmt.Sprintf("imageSize(%s)", im.name))
}

// Sampler2D is the in-kernel face of a sampler-bound texture.
type Sampler2D struct {
	name string
}

// Sample reads the texture at normalised coordinates with filtering.
func (s *Sampler2D) Sample(uv Operand[Vec2]) Expr[Vec4] {
	if s.name == "" {
		return Expr[Vec4]{}
	}
	return exprOf[Vec4](ir.Intrinsic{Name: "texture", Args: []ir.Node{ir.Load{Name: s.name}, node(uv)}})
}

