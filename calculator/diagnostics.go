package calculator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// PSI / fRsi 诊断
// PSI = 二维总热流估计 - 按水平分带的一维热流估计
// 两个热流都是粗略估计量，用于判断热桥的相对强弱

const bandTolerance = 5.0 // 水平分带容差, mm

// EstimateDiagnostics 从求解后的网格导出 ψ 和 fRsi
func EstimateDiagnostics(mesh *Mesh, cfg Config) (psi, fRsi float64) {
	total := totalHeatFlow(mesh)
	oneDim := oneDimensionalHeatFlow(mesh, cfg)
	return total - oneDim, surfaceTemperatureFactor(mesh)
}

// totalHeatFlow 对每个内表面节点，按相邻单元累加局部热流估计：
// λ × (|T_node - 单元平均温度| / √面积) × √面积
func totalHeatFlow(mesh *Mesh) float64 {
	adjacency := make([][]int, len(mesh.Nodes))
	for ei := range mesh.Elements {
		for _, ni := range mesh.Elements[ei].Nodes {
			adjacency[ni] = append(adjacency[ni], ei)
		}
	}

	total := 0.0
	for i := range mesh.Nodes {
		nd := &mesh.Nodes[i]
		if !nd.IsBoundary || nd.BoundaryType != BoundaryInterior {
			continue
		}
		for _, ei := range adjacency[i] {
			e := &mesh.Elements[ei]
			_, _, area := shapeCoefficients(mesh, e)
			if area < degenerateAreaEps {
				continue
			}
			avg := (mesh.Nodes[e.Nodes[0]].Temperature +
				mesh.Nodes[e.Nodes[1]].Temperature +
				mesh.Nodes[e.Nodes[2]].Temperature) / 3
			dT := math.Abs(nd.Temperature - avg)
			total += e.Material.ThermalConductivity * (dT / math.Sqrt(area)) * math.Sqrt(area)
		}
	}
	return total
}

// oneDimensionalHeatFlow 把内外表面节点按 y 坐标分成水平带，
// 同时含有内外表面节点的带按一维墙体模型估算热流：
// 带内各材料的热阻 + 两侧表面换热阻 -> U 值，
// 乘以近似带长（节点数 × 容差）和整场温差
func oneDimensionalHeatFlow(mesh *Mesh, cfg Config) float64 {
	var surface []int
	for i := range mesh.Nodes {
		nd := &mesh.Nodes[i]
		if nd.IsBoundary &&
			(nd.BoundaryType == BoundaryInterior || nd.BoundaryType == BoundaryExterior) {
			surface = append(surface, i)
		}
	}
	if len(surface) == 0 {
		return 0
	}
	sort.SliceStable(surface, func(a, b int) bool {
		pa, pb := mesh.Nodes[surface[a]].Position, mesh.Nodes[surface[b]].Position
		if pa.Y != pb.Y {
			return pa.Y < pb.Y
		}
		return surface[a] < surface[b]
	})

	temps := make([]float64, len(mesh.Nodes))
	for i := range mesh.Nodes {
		temps[i] = mesh.Nodes[i].Temperature
	}
	deltaT := floats.Max(temps) - floats.Min(temps)

	flow := 0.0
	for start := 0; start < len(surface); {
		// 划出一个水平带
		bandY := mesh.Nodes[surface[start]].Position.Y
		end := start + 1
		for end < len(surface) && mesh.Nodes[surface[end]].Position.Y-bandY <= bandTolerance {
			end++
		}
		band := surface[start:end]
		lastY := mesh.Nodes[band[len(band)-1]].Position.Y

		hasInterior, hasExterior := false, false
		for _, ni := range band {
			switch mesh.Nodes[ni].BoundaryType {
			case BoundaryInterior:
				hasInterior = true
			case BoundaryExterior:
				hasExterior = true
			}
		}
		if hasInterior && hasExterior {
			// 带内各不重复材料的热阻，厚度按区域的 x 向尺寸估计
			resistance := 1/cfg.HInterior + 1/cfg.HExterior
			seen := make(map[string]bool)
			for k := range mesh.Regions {
				minX, minY, maxX, maxY := mesh.Regions[k].Bounds()
				if maxY < bandY-bandTolerance || minY > lastY+bandTolerance {
					continue
				}
				name := mesh.Regions[k].Material.Name
				if seen[name] {
					continue
				}
				seen[name] = true
				thickness := (maxX - minX) / 1000 // mm -> m
				resistance += thickness / mesh.Regions[k].Material.ThermalConductivity
			}
			bandLength := float64(len(band)) * bandTolerance / 1000 // mm -> m
			flow += 1 / resistance * bandLength * deltaT
		}
		start = end
	}
	return flow
}

// surfaceTemperatureFactor 计算 fRsi =
// (内表面最低温度 - 全场最低温度) / (全场最高温度 - 全场最低温度)
//
// 与参考工具保持一致：分母用解出温度场的极值，而不是规范做法中的
// 设计边界温度；存在对流边界时两者会不同
func surfaceTemperatureFactor(mesh *Mesh) float64 {
	minInterior := math.Inf(1)
	minT := math.Inf(1)
	maxT := math.Inf(-1)
	for i := range mesh.Nodes {
		t := mesh.Nodes[i].Temperature
		minT = math.Min(minT, t)
		maxT = math.Max(maxT, t)
		if mesh.Nodes[i].IsBoundary && mesh.Nodes[i].BoundaryType == BoundaryInterior {
			minInterior = math.Min(minInterior, t)
		}
	}
	if math.IsInf(minInterior, 1) || maxT-minT < 1e-12 {
		return 0
	}
	return (minInterior - minT) / (maxT - minT)
}
