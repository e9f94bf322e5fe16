package model

// 热桥模拟的共享数据类型
// 几何单位全部为 mm，导热系数单位 W/(m·K)，温度单位 ℃

// 二维坐标点
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// 材料属性，由前端绘图端从内置材料库中选择
type Material struct {
	Name                string  `json:"name"`
	ThermalConductivity float64 `json:"thermal_conductivity"` // 导热系数 λ, W/(m·K)
	Thickness           float64 `json:"thickness"`            // 标称厚度, mm
	Color               string  `json:"color"`                // 前端显示颜色
}

// 轴对齐矩形区域，两个对角点 + 材料
// 区域允许重叠，重叠时先定义的区域优先
type Region struct {
	ID       int      `json:"id"`
	Corner1  Point    `json:"corner1"`
	Corner2  Point    `json:"corner2"`
	Material Material `json:"material"`
}

// Bounds 返回区域的 minX, minY, maxX, maxY，与两个角点的给定顺序无关
func (r *Region) Bounds() (minX, minY, maxX, maxY float64) {
	minX, maxX = r.Corner1.X, r.Corner2.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY = r.Corner1.Y, r.Corner2.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return
}

// Contains 判断采样点是否落在区域内，边界算在内
func (r *Region) Contains(p Point) bool {
	minX, minY, maxX, maxY := r.Bounds()
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// Corners 返回区域的四个角点，用于交界点检测
func (r *Region) Corners() [4]Point {
	minX, minY, maxX, maxY := r.Bounds()
	return [4]Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
}

// websocket 消息帧
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
