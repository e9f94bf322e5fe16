package calculator

import (
	"fmt"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"tb/model"
)

// 稳态导热求解
// 线性三角元组装稀疏导热矩阵，按节点编号升序做 Gauss-Seidel 迭代
// 稀疏矩阵用 (行, 列) 打包成 int64 作键的 map 存储：
// 组装阶段累加写入，边界条件阶段可整行整列删除

const degenerateAreaEps = 1e-12

type sparseMatrix map[int64]float64

func pack(i, j int) int64 {
	return int64(i)<<32 | int64(j)
}

func unpack(key int64) (i, j int) {
	return int(key >> 32), int(key & 0xffffffff)
}

// 线性三角元的形函数梯度系数
// b[k], c[k] 为相邻顶点坐标差，梯度 = Σ 系数·节点值 / (2·面积)
func shapeCoefficients(mesh *Mesh, e *MeshElement) (b, c [3]float64, area float64) {
	p1 := mesh.Nodes[e.Nodes[0]].Position
	p2 := mesh.Nodes[e.Nodes[1]].Position
	p3 := mesh.Nodes[e.Nodes[2]].Position

	b[0], b[1], b[2] = p2.Y-p3.Y, p3.Y-p1.Y, p1.Y-p2.Y
	c[0], c[1], c[2] = p3.X-p2.X, p1.X-p3.X, p2.X-p1.X

	// 鞋带公式，取绝对值，不要求顶点定向一致
	area = (p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y)) / 2
	if area < 0 {
		area = -area
	}
	return
}

// SolveHeatTransfer 组装并求解稳态导热方程，返回温度场结果
// 诊断量 PsiValue / FRsiValue 由 EstimateDiagnostics 另行填充
func SolveHeatTransfer(mesh *Mesh, cfg Config) (*SimulationResult, error) {
	n := len(mesh.Nodes)
	if n == 0 || len(mesh.Elements) == 0 {
		return nil, ErrDegenerateMesh
	}

	// --- 组装 ---
	K := make(sparseMatrix)
	load := make([]float64, n)
	connected := make([]bool, n)
	for ei := range mesh.Elements {
		e := &mesh.Elements[ei]
		for _, ni := range e.Nodes {
			connected[ni] = true
		}
		b, c, area := shapeCoefficients(mesh, e)
		if area < degenerateAreaEps {
			// 退化单元不贡献刚度，对角元缺失会在迭代阶段报错
			continue
		}
		coef := e.Material.ThermalConductivity / (4 * area)
		for a := 0; a < 3; a++ {
			for bb := 0; bb < 3; bb++ {
				K[pack(e.Nodes[a], e.Nodes[bb])] += coef * (b[a]*b[bb] + c[a]*c[bb])
			}
		}
	}

	// --- 边界条件 ---
	// 1. Dirichlet：删除固定节点所在的行和列，对角元置 1，载荷取给定温度；
	//    列删除时把已知温度折算进相邻节点的载荷，固定温度才能驱动温度场
	// 键排序后遍历，保证载荷累加顺序确定、结果可复现
	keys := sortedKeys(K)
	for _, key := range keys {
		i, j := unpack(key)
		if !mesh.Nodes[i].Fixed && !mesh.Nodes[j].Fixed {
			continue
		}
		if mesh.Nodes[j].Fixed && !mesh.Nodes[i].Fixed {
			load[i] -= K[key] * mesh.Nodes[j].Temperature
		}
		delete(K, key)
	}
	for i := range mesh.Nodes {
		if mesh.Nodes[i].Fixed {
			K[pack(i, i)] = 1
			load[i] = mesh.Nodes[i].Temperature
		}
	}
	// 2. Robin 对流：未固定的内外表面节点，对角元加表面换热系数，
	//    载荷加 系数×参考环境温度；绝热边不做处理（零热流）
	for i := range mesh.Nodes {
		nd := &mesh.Nodes[i]
		if nd.Fixed || !nd.IsBoundary {
			continue
		}
		switch nd.BoundaryType {
		case BoundaryInterior:
			K[pack(i, i)] += cfg.HInterior
			load[i] += cfg.HInterior * cfg.InteriorAmbient
		case BoundaryExterior:
			K[pack(i, i)] += cfg.HExterior
			load[i] += cfg.HExterior * cfg.ExteriorAmbient
		}
	}

	// --- 行压缩 ---
	// Gauss-Seidel 扫描前把 map 转成按列号排序的行结构，遍历顺序固定
	type entry struct {
		col int
		val float64
	}
	rows := make([][]entry, n)
	diag := make([]float64, n)
	hasDiag := make([]bool, n)
	for _, key := range sortedKeys(K) {
		i, j := unpack(key)
		if i == j {
			diag[i] = K[key]
			hasDiag[i] = true
			continue
		}
		rows[i] = append(rows[i], entry{col: j, val: K[key]})
	}

	// --- Gauss-Seidel 迭代 ---
	temps := make([]float64, n)
	for i := range mesh.Nodes {
		temps[i] = mesh.Nodes[i].Temperature
	}
	converged := false
	iterations := 0
	for it := 0; it < cfg.MaxIterations; it++ {
		maxDelta := 0.0
		for i := 0; i < n; i++ {
			if mesh.Nodes[i].Fixed {
				continue
			}
			if !connected[i] {
				// 未参与剖分的加密节点保持初始温度
				continue
			}
			if !hasDiag[i] || diag[i] == 0 {
				return nil, fmt.Errorf("node %d: %w", i, ErrSolverDivergence)
			}
			sum := load[i]
			for _, en := range rows[i] {
				sum -= en.val * temps[en.col]
			}
			t := sum / diag[i]
			delta := t - temps[i]
			if delta < 0 {
				delta = -delta
			}
			if delta > maxDelta {
				maxDelta = delta
			}
			temps[i] = t
		}
		iterations = it + 1
		if iterations%500 == 0 {
			log.WithFields(log.Fields{"iteration": iterations, "max_delta": maxDelta}).
				Debug("Gauss-Seidel 迭代中")
		}
		if maxDelta < cfg.Tolerance {
			converged = true
			break
		}
	}
	if !converged {
		log.WithFields(log.Fields{"iterations": iterations, "tolerance": cfg.Tolerance}).
			Warn("达到最大迭代次数仍未收敛，返回当前温度场")
	}

	// 解出的温度写回节点
	for i := range mesh.Nodes {
		mesh.Nodes[i].Temperature = temps[i]
	}

	minT := floats.Min(temps)
	maxT := floats.Max(temps)

	result := &SimulationResult{
		Nodes:          make([]MeshNode, n),
		Elements:       make([]MeshElement, len(mesh.Elements)),
		MinTemperature: minT,
		MaxTemperature: maxT,
		IsothermLevels: isothermLevels(minT, maxT),
		FluxVectors:    computeFlux(mesh),
		Converged:      converged,
		Iterations:     iterations,
	}
	copy(result.Nodes, mesh.Nodes)
	copy(result.Elements, mesh.Elements)
	return result, nil
}

// computeFlux 用组装同款形函数梯度求每个单元的热流向量
// 温度梯度 = Σ 系数·节点温度 / (2·面积)，热流 q = -λ·∇T
func computeFlux(mesh *Mesh) []FluxVector {
	flux := make([]FluxVector, 0, len(mesh.Elements))
	for ei := range mesh.Elements {
		e := &mesh.Elements[ei]
		p1 := mesh.Nodes[e.Nodes[0]].Position
		p2 := mesh.Nodes[e.Nodes[1]].Position
		p3 := mesh.Nodes[e.Nodes[2]].Position
		fv := FluxVector{
			Position: model.Point{
				X: (p1.X + p2.X + p3.X) / 3,
				Y: (p1.Y + p2.Y + p3.Y) / 3,
			},
		}
		b, c, area := shapeCoefficients(mesh, e)
		if area >= degenerateAreaEps {
			var gradX, gradY float64
			for k := 0; k < 3; k++ {
				t := mesh.Nodes[e.Nodes[k]].Temperature
				gradX += b[k] * t
				gradY += c[k] * t
			}
			gradX /= 2 * area
			gradY /= 2 * area
			fv.X = -e.Material.ThermalConductivity * gradX
			fv.Y = -e.Material.ThermalConductivity * gradY
			fv.Magnitude = math.Hypot(fv.X, fv.Y)
		}
		flux = append(flux, fv)
	}
	return flux
}

func sortedKeys(m sparseMatrix) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })
	return keys
}
