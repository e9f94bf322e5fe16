package calculator

import "tb/model"

// 内置建筑材料库
// 导热系数为常用设计值，前端绘图端按名称选取

var builtinMaterials = []model.Material{
	{Name: "Concrete", ThermalConductivity: 1.8, Thickness: 200, Color: "#9e9e9e"},
	{Name: "Brick", ThermalConductivity: 0.77, Thickness: 240, Color: "#b5651d"},
	{Name: "EPS", ThermalConductivity: 0.035, Thickness: 100, Color: "#f5f5dc"},
	{Name: "Mineral Wool", ThermalConductivity: 0.04, Thickness: 100, Color: "#fff8a0"},
	{Name: "Timber", ThermalConductivity: 0.13, Thickness: 50, Color: "#8b5a2b"},
	{Name: "Steel", ThermalConductivity: 50.0, Thickness: 10, Color: "#607d8b"},
	{Name: "Glass", ThermalConductivity: 1.0, Thickness: 24, Color: "#aaddff"},
	{Name: "Plaster", ThermalConductivity: 0.51, Thickness: 15, Color: "#eeeeee"},
}

// AirMaterial 网格中不属于任何区域的单元使用的缺省材料
func AirMaterial() model.Material {
	return model.Material{Name: "Air", ThermalConductivity: 0.025, Color: "#e0f7fa"}
}

// Materials 返回内置材料库的副本
func Materials() []model.Material {
	out := make([]model.Material, len(builtinMaterials))
	copy(out, builtinMaterials)
	return out
}

// MaterialByName 按名称查找内置材料，找不到时返回空气
func MaterialByName(name string) (model.Material, bool) {
	for _, m := range builtinMaterials {
		if m.Name == name {
			return m, true
		}
	}
	return AirMaterial(), false
}
