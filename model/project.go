package model

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// 工程文件格式：编辑器保存的几何数据
// {"version": "1.0", "elements": [...]}，坐标保留 3 位小数

const ProjectVersion = "1.0"

type projectFile struct {
	Version  string   `json:"version"`
	Elements []Region `json:"elements"`
}

// LoadProject 解析工程文件，返回区域列表
func LoadProject(r io.Reader) ([]Region, error) {
	var pf projectFile
	if err := json.NewDecoder(r).Decode(&pf); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	if pf.Version != ProjectVersion {
		return nil, fmt.Errorf("unsupported project version %q", pf.Version)
	}
	return pf.Elements, nil
}

// SaveProject 序列化区域列表，坐标四舍五入到 3 位小数
func SaveProject(w io.Writer, regions []Region) error {
	rounded := make([]Region, len(regions))
	for i, r := range regions {
		r.Corner1 = roundPoint(r.Corner1)
		r.Corner2 = roundPoint(r.Corner2)
		rounded[i] = r
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&projectFile{Version: ProjectVersion, Elements: rounded})
}

func roundPoint(p Point) Point {
	return Point{X: round3(p.X), Y: round3(p.Y)}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
