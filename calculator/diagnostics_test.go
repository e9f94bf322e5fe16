package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tb/model"
)

// fRsi = (内表面最低温 - 全场最低温) / (全场最高温 - 全场最低温)
func TestSurfaceTemperatureFactor(t *testing.T) {
	mesh := &Mesh{
		Nodes: []MeshNode{
			{ID: 0, Temperature: 0, IsBoundary: true, BoundaryType: BoundaryExterior},
			{ID: 1, Temperature: 15, IsBoundary: true, BoundaryType: BoundaryInterior},
			{ID: 2, Temperature: 20, IsBoundary: true, BoundaryType: BoundaryInterior},
			{ID: 3, Temperature: 8},
		},
	}
	assert.InDelta(t, 0.75, surfaceTemperatureFactor(mesh), 1e-12)
}

func TestSurfaceTemperatureFactorDegenerate(t *testing.T) {
	// 没有内表面节点
	noInterior := &Mesh{Nodes: []MeshNode{{ID: 0, Temperature: 5}}}
	assert.Zero(t, surfaceTemperatureFactor(noInterior))

	// 全场等温
	uniform := &Mesh{
		Nodes: []MeshNode{
			{ID: 0, Temperature: 20, IsBoundary: true, BoundaryType: BoundaryInterior},
			{ID: 1, Temperature: 20},
		},
	}
	assert.Zero(t, surfaceTemperatureFactor(uniform))
}

// 一维热流估计：同一水平带内外表面节点成对，按一维墙体模型算 U 值
func TestOneDimensionalHeatFlowSingleBand(t *testing.T) {
	cfg := DefaultConfig()
	mesh := &Mesh{
		Nodes: []MeshNode{
			{ID: 0, Position: model.Point{X: 0, Y: 0}, Temperature: 0,
				Fixed: true, IsBoundary: true, BoundaryType: BoundaryExterior},
			{ID: 1, Position: model.Point{X: 1000, Y: 2}, Temperature: 20,
				Fixed: true, IsBoundary: true, BoundaryType: BoundaryInterior},
		},
		Regions: []model.Region{{
			ID:      1,
			Corner1: model.Point{X: 0, Y: 0},
			Corner2: model.Point{X: 1000, Y: 200},
			Material: model.Material{Name: "Test", ThermalConductivity: 1.0},
		}},
	}

	// R = 1.0 m²K/W (板材) + 1/7.7 + 1/25，带长 2*5mm，温差 20
	resistance := 1.0 + 1/7.7 + 1/25.0
	want := 1 / resistance * (2 * 5.0 / 1000) * 20
	assert.InDelta(t, want, oneDimensionalHeatFlow(mesh, cfg), 1e-9)
}

// 只有一侧表面节点的水平带不参与一维热流估计
func TestOneDimensionalHeatFlowUnpairedBand(t *testing.T) {
	cfg := DefaultConfig()
	mesh := &Mesh{
		Nodes: []MeshNode{
			{ID: 0, Position: model.Point{X: 0, Y: 0}, Temperature: 0,
				IsBoundary: true, BoundaryType: BoundaryExterior},
			// y 相差 20 > 容差 5，单独成带
			{ID: 1, Position: model.Point{X: 1000, Y: 20}, Temperature: 20,
				IsBoundary: true, BoundaryType: BoundaryInterior},
		},
	}
	assert.Zero(t, oneDimensionalHeatFlow(mesh, cfg))
}

// 非对称导热的对流内表面：两个内表面节点温度不同，fRsi 落在 (0,1)
func TestDiagnosticsRobinAsymmetric(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tolerance = 1e-10
	cfg.MaxIterations = 2000

	mesh := robinMesh(0.05, 5)
	_, err := SolveHeatTransfer(mesh, cfg)
	require.NoError(t, err)

	_, fRsi := EstimateDiagnostics(mesh, cfg)
	assert.Greater(t, fRsi, 0.0)
	assert.Less(t, fRsi, 1.0)
}

// 完整流水线：L 形转角节点
func TestDiagnosticsCornerJunction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MeshSize = 50
	cfg.MaxIterations = 20000

	result, err := Run(cornerRegions(), cfg)
	require.NoError(t, err)
	assert.True(t, result.Converged)

	assert.False(t, math.IsNaN(result.PsiValue))
	assert.False(t, math.IsInf(result.PsiValue, 0))
	// 生成网格的内表面节点全部固定，fRsi 恒为 1（参考行为回归）
	assert.InDelta(t, 1.0, result.FRsiValue, 1e-9)
	require.Len(t, result.IsothermLevels, 9)
	assert.Len(t, result.FluxVectors, len(result.Elements))
	for _, fv := range result.FluxVectors {
		assert.GreaterOrEqual(t, fv.Magnitude, 0.0)
	}
}
