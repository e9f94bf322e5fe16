package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Bounds / Contains 与角点给定顺序无关
func TestRegionBounds(t *testing.T) {
	r := Region{
		Corner1: Point{X: 100, Y: 200},
		Corner2: Point{X: -50, Y: 0},
	}
	minX, minY, maxX, maxY := r.Bounds()
	assert.Equal(t, -50.0, minX)
	assert.Equal(t, 0.0, minY)
	assert.Equal(t, 100.0, maxX)
	assert.Equal(t, 200.0, maxY)

	assert.True(t, r.Contains(Point{X: 0, Y: 100}))
	assert.True(t, r.Contains(Point{X: -50, Y: 0}), "边界点算在区域内")
	assert.False(t, r.Contains(Point{X: 101, Y: 100}))
}

func TestRegionCorners(t *testing.T) {
	r := Region{Corner1: Point{X: 10, Y: 20}, Corner2: Point{X: 0, Y: 0}}
	corners := r.Corners()
	assert.Equal(t, Point{X: 0, Y: 0}, corners[0])
	assert.Equal(t, Point{X: 10, Y: 0}, corners[1])
	assert.Equal(t, Point{X: 10, Y: 20}, corners[2])
	assert.Equal(t, Point{X: 0, Y: 20}, corners[3])
}

// 工程文件往返：坐标保存时四舍五入到 3 位小数
func TestProjectRoundTrip(t *testing.T) {
	regions := []Region{{
		ID:      1,
		Corner1: Point{X: 1.23456, Y: -0.0004},
		Corner2: Point{X: 1000, Y: 200.9996},
		Material: Material{
			Name:                "Concrete",
			ThermalConductivity: 1.8,
			Thickness:           200,
			Color:               "#9e9e9e",
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, SaveProject(&buf, regions))
	assert.Contains(t, buf.String(), `"version": "1.0"`)

	loaded, err := LoadProject(&buf)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 1.235, loaded[0].Corner1.X)
	assert.InDelta(t, 0, loaded[0].Corner1.Y, 1e-12)
	assert.Equal(t, 201.0, loaded[0].Corner2.Y)
	assert.Equal(t, regions[0].Material, loaded[0].Material)
}

func TestLoadProjectBadVersion(t *testing.T) {
	_, err := LoadProject(strings.NewReader(`{"version":"2.0","elements":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestLoadProjectBadJSON(t *testing.T) {
	_, err := LoadProject(strings.NewReader(`{not json`))
	require.Error(t, err)
}
