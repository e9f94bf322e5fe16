package calculator

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// 计算参数配置
// Dirichlet 边界温度（网格左右两侧的固定温度）和 Robin 对流参考温度
// 是两组独立的参数：对流边界按设计环境温度取值，不一定等于固定边界温度

type Config struct {
	MeshSize       float64 // 网格步长, mm
	AdaptiveFactor float64 // 交界点局部加密系数, (0, 1]

	InteriorTemperature float64 // 室内侧固定温度, ℃
	ExteriorTemperature float64 // 室外侧固定温度, ℃
	InteriorAmbient     float64 // 室内对流参考温度, ℃
	ExteriorAmbient     float64 // 室外对流参考温度, ℃

	HInterior float64 // 室内表面换热系数, W/(m²·K)
	HExterior float64 // 室外表面换热系数, W/(m²·K)

	MaxIterations int     // Gauss-Seidel 最大迭代次数
	Tolerance     float64 // 收敛判据：单次扫描的最大温度变化
}

func DefaultConfig() Config {
	return Config{
		MeshSize:            10,
		AdaptiveFactor:      0.5,
		InteriorTemperature: 20,
		ExteriorTemperature: 0,
		InteriorAmbient:     20,
		ExteriorAmbient:     0,
		HInterior:           7.7,
		HExterior:           25.0,
		MaxIterations:       2000,
		Tolerance:           1e-6,
	}
}

// LoadConfig 从 ini 文件读取配置，缺失的键使用默认值
// 文件读取失败时返回默认配置和错误，由调用方决定是否继续
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("配置文件读取错误: %w", err)
	}
	sec := file.Section("calculator")
	cfg.MeshSize = sec.Key("MeshSize").MustFloat64(cfg.MeshSize)
	cfg.AdaptiveFactor = sec.Key("AdaptiveFactor").MustFloat64(cfg.AdaptiveFactor)
	cfg.InteriorTemperature = sec.Key("InteriorTemperature").MustFloat64(cfg.InteriorTemperature)
	cfg.ExteriorTemperature = sec.Key("ExteriorTemperature").MustFloat64(cfg.ExteriorTemperature)
	cfg.InteriorAmbient = sec.Key("InteriorAmbient").MustFloat64(cfg.InteriorAmbient)
	cfg.ExteriorAmbient = sec.Key("ExteriorAmbient").MustFloat64(cfg.ExteriorAmbient)
	cfg.HInterior = sec.Key("HInterior").MustFloat64(cfg.HInterior)
	cfg.HExterior = sec.Key("HExterior").MustFloat64(cfg.HExterior)
	cfg.MaxIterations = sec.Key("MaxIterations").MustInt(cfg.MaxIterations)
	cfg.Tolerance = sec.Key("Tolerance").MustFloat64(cfg.Tolerance)
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MeshSize <= 0 {
		return fmt.Errorf("mesh size must be positive, got %v", c.MeshSize)
	}
	if c.AdaptiveFactor <= 0 || c.AdaptiveFactor > 1 {
		return fmt.Errorf("adaptive factor must be in (0, 1], got %v", c.AdaptiveFactor)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %v", c.MaxIterations)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %v", c.Tolerance)
	}
	if c.HInterior <= 0 || c.HExterior <= 0 {
		return fmt.Errorf("surface heat-transfer coefficients must be positive, got %v / %v",
			c.HInterior, c.HExterior)
	}
	return nil
}
