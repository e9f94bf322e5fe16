package calculator

import "tb/model"

// 单元热流向量，位置取单元形心
type FluxVector struct {
	Position  model.Point `json:"position"`
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	Magnitude float64     `json:"magnitude"`
}

// 一次模拟的完整结果快照，返回给调用方后不再修改
type SimulationResult struct {
	Nodes    []MeshNode    `json:"nodes"`
	Elements []MeshElement `json:"elements"`

	MinTemperature float64   `json:"min_temperature"`
	MaxTemperature float64   `json:"max_temperature"`
	IsothermLevels []float64 `json:"isotherm_levels"`

	PsiValue  float64 `json:"psi_value"`   // 线传热系数 ψ, W/(m·K)
	FRsiValue float64 `json:"f_rsi_value"` // 内表面温度系数，无量纲

	FluxVectors []FluxVector `json:"flux_vectors"`

	Converged  bool `json:"converged"`
	Iterations int  `json:"iterations"`
}

// isothermLevels 在最低和最高温度之间取 9 条等分等温线
func isothermLevels(minT, maxT float64) []float64 {
	levels := make([]float64, 9)
	for k := 1; k <= 9; k++ {
		levels[k-1] = minT + float64(k)*(maxT-minT)/10
	}
	return levels
}
