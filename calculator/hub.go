package calculator

import (
	"sync"

	"tb/model"
)

// CalcHub 衔接计算和推送：求解在单独的 goroutine 里跑，
// 算完通过 ResultReady 通知推送端，StopSignal 用于整次调用级别的取消
// （求解内部不支持中途取消，MaxIterations 已限定最长耗时）

type CalcHub struct {
	ResultReady chan *SimulationResult
	Err         chan error

	mu   sync.Mutex
	stop chan struct{}
}

func NewCalcHub() *CalcHub {
	return &CalcHub{
		ResultReady: make(chan *SimulationResult, 1),
		Err:         make(chan error, 1),
	}
}

// StartSignal 开启新一轮计算的取消通道并返回它，覆盖上一轮的
func (ch *CalcHub) StartSignal() <-chan struct{} {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.stop = make(chan struct{})
	return ch.stop
}

// StopSignal 取消当前一轮计算
// 尚未开始计算或已经取消时调用等同于空操作
func (ch *CalcHub) StopSignal() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.stop == nil {
		return
	}
	select {
	case <-ch.stop:
	default:
		close(ch.stop)
	}
}

// RunAsync 在新 goroutine 中执行一次完整模拟
// 每次调用使用独立的输入数据，调用之间不共享任何可变状态
func (ch *CalcHub) RunAsync(regions []model.Region, cfg Config) {
	stop := ch.StartSignal()
	go func() {
		result, err := Run(regions, cfg)
		if err != nil {
			ch.Err <- err
			return
		}
		select {
		case <-stop:
			// 调用方已放弃本次计算，丢弃结果
		case ch.ResultReady <- result:
		}
	}()
}
