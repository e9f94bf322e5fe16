package calculator

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"tb/model"
)

// 热桥稳态模拟引擎
// 流水线：区域几何 -> 网格划分 -> 稳态导热求解 -> PSI/fRsi 诊断
// 每次调用都是一次性的同步计算，调用之间不保留任何状态

var (
	// 几何校验错误：没有区域、材料导热系数非正，或生成的网格退化
	ErrNoRegions      = errors.New("calculator: no regions supplied")
	ErrBadMaterial    = errors.New("calculator: non-positive thermal conductivity")
	ErrDegenerateMesh = errors.New("calculator: degenerate mesh")

	// 求解错误：Gauss-Seidel 迭代遇到零对角元或缺失对角元
	ErrSolverDivergence = errors.New("calculator: zero or missing diagonal entry")

	// 达到最大迭代次数仍未收敛；不作为错误返回，
	// 结果带 converged = false 标志，由调用方决定是否采信
	ErrNotConverged = errors.New("calculator: iteration cap reached before convergence")
)

// Run 执行完整的模拟流水线，输入输出均为调用方独占的数据
func Run(regions []model.Region, cfg Config) (*SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// λ<=0 会让单元导热矩阵失去物理意义，必须在划分网格前拦下
	for i := range regions {
		if regions[i].Material.ThermalConductivity <= 0 {
			return nil, fmt.Errorf("%w: region %v (%s)",
				ErrBadMaterial, regions[i].ID, regions[i].Material.Name)
		}
	}

	start := time.Now()
	mesh, err := GenerateMesh(regions, cfg)
	if err != nil {
		return nil, err
	}

	result, err := SolveHeatTransfer(mesh, cfg)
	if err != nil {
		return nil, err
	}

	result.PsiValue, result.FRsiValue = EstimateDiagnostics(mesh, cfg)

	log.WithFields(log.Fields{
		"nodes":     len(mesh.Nodes),
		"elements":  len(mesh.Elements),
		"converged": result.Converged,
		"psi":       result.PsiValue,
		"f_rsi":     result.FRsiValue,
		"elapsed":   time.Since(start),
	}).Info("模拟完成")
	return result, nil
}
