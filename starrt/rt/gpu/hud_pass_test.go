package gpu

import (
	"errors"
	"image"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQueue struct {
	err    error
	data   []byte
	layout wgpu.TextureDataLayout
	extent wgpu.Extent3D
}

func (q *recordingQueue) WriteTexture(_ *wgpu.ImageCopyTexture, data []byte, layout *wgpu.TextureDataLayout, size *wgpu.Extent3D) error {
	q.data = data
	q.layout = *layout
	q.extent = *size
	return q.err
}

func TestUploadAtlas(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 32, 16))
	img.Pix[5] = 0xff
	q := &recordingQueue{}

	require.NoError(t, uploadAtlas(q, &wgpu.ImageCopyTexture{}, img))
	assert.Equal(t, img.Pix, q.data)
	assert.Equal(t, uint32(32), q.layout.BytesPerRow)
	assert.Equal(t, uint32(16), q.layout.RowsPerImage)
	assert.Equal(t, wgpu.Extent3D{Width: 32, Height: 16, DepthOrArrayLayers: 1}, q.extent)
}

func TestUploadAtlas_WriteError(t *testing.T) {
	writeErr := errors.New("queue lost")
	q := &recordingQueue{err: writeErr}

	err := uploadAtlas(q, &wgpu.ImageCopyTexture{}, image.NewAlpha(image.Rect(0, 0, 8, 8)))
	require.Error(t, err)
	assert.ErrorIs(t, err, writeErr)
	assert.Contains(t, err.Error(), "hud atlas upload")
}

func TestHudPass_ReleaseNil(t *testing.T) {
	var h *HudPass
	assert.NotPanics(t, h.Release)
	assert.NotPanics(t, func() { h.Encode(nil, nil, 0) })
}
