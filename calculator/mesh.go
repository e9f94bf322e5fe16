package calculator

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"tb/model"
)

// 网格划分
// 在区域包围盒外扩 5 倍步长的矩形域上铺结构化网格，
// 每个网格单元拆成两个三角形，单元材料按单元中心点采样

const (
	boundaryEps       = 1e-6 // 边界坐标判定容差
	junctionTolerance = 0.5  // 区域交界点判定容差, mm
)

type BoundaryType string

const (
	BoundaryNone      BoundaryType = ""
	BoundaryInterior  BoundaryType = "interior"
	BoundaryExterior  BoundaryType = "exterior"
	BoundaryAdiabatic BoundaryType = "adiabatic"
)

// 网格节点
// 不变式：Fixed 为真时 IsBoundary 必为真
type MeshNode struct {
	ID           int          `json:"id"`
	Position     model.Point  `json:"position"`
	Temperature  float64      `json:"temperature"`
	Fixed        bool         `json:"fixed"`
	IsBoundary   bool         `json:"is_boundary"`
	BoundaryType BoundaryType `json:"boundary_type,omitempty"`
}

// 三角形单元，按下标引用节点，材料在网格生成时解析后不再改变
type MeshElement struct {
	ID       int            `json:"id"`
	Nodes    [3]int         `json:"nodes"`
	Material model.Material `json:"material"`
}

// 网格：节点与单元的属主
// 单元按下标引用节点，生成之后节点列表不允许重排
type Mesh struct {
	Nodes    []MeshNode
	Elements []MeshElement

	// 生成网格的输入区域，诊断计算需要访问
	Regions []model.Region
}

// GenerateMesh 从材料区域生成结构化三角网格
//
// 边界分类是构造性的，与画图方向无关：域左边缘为室外侧（固定温度），
// 右边缘为室内侧（固定温度），上下边缘为绝热边
func GenerateMesh(regions []model.Region, cfg Config) (*Mesh, error) {
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}

	// 所有区域角点的包围盒，外扩 margin 留出边界条件空间
	xs := make([]float64, 0, len(regions)*2)
	ys := make([]float64, 0, len(regions)*2)
	for i := range regions {
		minX, minY, maxX, maxY := regions[i].Bounds()
		xs = append(xs, minX, maxX)
		ys = append(ys, minY, maxY)
	}
	margin := 5 * cfg.MeshSize
	minX := floats.Min(xs) - margin
	maxX := floats.Max(xs) + margin
	minY := floats.Min(ys) - margin
	maxY := floats.Max(ys) + margin

	width := maxX - minX
	height := maxY - minY
	nx := int(math.Ceil(width/cfg.MeshSize)) + 1
	ny := int(math.Ceil(height/cfg.MeshSize)) + 1
	if nx < 2 || ny < 2 {
		return nil, ErrDegenerateMesh
	}
	dx := width / float64(nx-1)
	dy := height / float64(ny-1)

	// 自由节点的初始温度取两侧固定温度的平均值
	initTemp := (cfg.InteriorTemperature + cfg.ExteriorTemperature) / 2

	mesh := &Mesh{
		Nodes:   make([]MeshNode, 0, nx*ny),
		Regions: regions,
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n := MeshNode{
				ID:          j*nx + i,
				Position:    model.Point{X: minX + float64(i)*dx, Y: minY + float64(j)*dy},
				Temperature: initTemp,
			}
			switch {
			case math.Abs(n.Position.X-minX) < boundaryEps:
				// 左边缘 = 室外侧
				n.IsBoundary = true
				n.BoundaryType = BoundaryExterior
				n.Fixed = true
				n.Temperature = cfg.ExteriorTemperature
			case math.Abs(n.Position.X-maxX) < boundaryEps:
				// 右边缘 = 室内侧
				n.IsBoundary = true
				n.BoundaryType = BoundaryInterior
				n.Fixed = true
				n.Temperature = cfg.InteriorTemperature
			case math.Abs(n.Position.Y-minY) < boundaryEps || math.Abs(n.Position.Y-maxY) < boundaryEps:
				// 上下边缘 = 绝热边，不固定
				n.IsBoundary = true
				n.BoundaryType = BoundaryAdiabatic
			}
			mesh.Nodes = append(mesh.Nodes, n)
		}
	}

	// 交界点附近局部加密
	// 已知限制：加密节点只追加进节点列表，不参与三角剖分
	junctions := detectJunctions(regions)
	refineAroundJunctions(mesh, junctions, cfg, initTemp)

	// 每个网格单元拆成两个三角形，对角线方向一致（左下-右上）
	air := AirMaterial()
	eid := 0
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			n00 := j*nx + i
			n10 := j*nx + i + 1
			n01 := (j+1)*nx + i
			n11 := (j+1)*nx + i + 1

			center := model.Point{
				X: minX + (float64(i)+0.5)*dx,
				Y: minY + (float64(j)+0.5)*dy,
			}
			mat := air
			for k := range regions {
				if regions[k].Contains(center) {
					mat = regions[k].Material
					break
				}
			}

			mesh.Elements = append(mesh.Elements,
				MeshElement{ID: eid, Nodes: [3]int{n00, n10, n11}, Material: mat},
				MeshElement{ID: eid + 1, Nodes: [3]int{n00, n11, n01}, Material: mat},
			)
			eid += 2
		}
	}

	if len(mesh.Nodes) == 0 || len(mesh.Elements) == 0 {
		return nil, ErrDegenerateMesh
	}

	log.WithFields(log.Fields{
		"nx":        nx,
		"ny":        ny,
		"nodes":     len(mesh.Nodes),
		"elements":  len(mesh.Elements),
		"junctions": len(junctions),
	}).Debug("网格生成完成")
	return mesh, nil
}

// detectJunctions 检测不同区域之间的交界点：
// 两个区域的角点距离小于容差时视为一个交界点，并按同一容差去重
func detectJunctions(regions []model.Region) []model.Point {
	var junctions []model.Point
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			ci := regions[i].Corners()
			cj := regions[j].Corners()
			for _, a := range ci {
				for _, b := range cj {
					if distance(a, b) >= junctionTolerance {
						continue
					}
					dup := false
					for _, p := range junctions {
						if distance(p, a) < junctionTolerance {
							dup = true
							break
						}
					}
					if !dup {
						junctions = append(junctions, a)
					}
				}
			}
		}
	}
	return junctions
}

// refineAroundJunctions 在每个交界点半径 5 倍步长范围内按
// meshSize×adaptiveFactor 的间距插入自由节点，
// 与已有节点距离不足半个间距的候选点跳过
func refineAroundJunctions(mesh *Mesh, junctions []model.Point, cfg Config, initTemp float64) {
	radius := 5 * cfg.MeshSize
	spacing := cfg.MeshSize * cfg.AdaptiveFactor
	for _, jp := range junctions {
		for gy := jp.Y - radius; gy <= jp.Y+radius; gy += spacing {
			for gx := jp.X - radius; gx <= jp.X+radius; gx += spacing {
				cand := model.Point{X: gx, Y: gy}
				if distance(cand, jp) > radius {
					continue
				}
				tooClose := false
				for k := range mesh.Nodes {
					if distance(mesh.Nodes[k].Position, cand) < spacing/2 {
						tooClose = true
						break
					}
				}
				if tooClose {
					continue
				}
				mesh.Nodes = append(mesh.Nodes, MeshNode{
					ID:          len(mesh.Nodes),
					Position:    cand,
					Temperature: initTemp,
				})
			}
		}
	}
}

func distance(a, b model.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
