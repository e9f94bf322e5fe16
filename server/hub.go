package server

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"tb/calculator"
	"tb/model"
)

// Hub maintains a single client connection: it decodes requests,
// drives the simulation pipeline and pushes results back.
// 每个连接一个 Hub，连接之间不共享任何计算状态

type Hub struct {
	conn    *websocket.Conn
	calcHub *calculator.CalcHub

	// request
	msg chan model.Msg
	// response
	out chan model.Msg
	// 连接关闭后让两个处理 goroutine 退出
	done chan struct{}

	// 当前连接上累积的输入
	regions []model.Region

	// env 写入与结果推送分属两个 goroutine，需要加锁
	mu       sync.Mutex
	cfg      calculator.Config
	humidity float64 // 室内相对湿度, %
}

func NewHub() *Hub {
	return &Hub{
		calcHub:  calculator.NewCalcHub(),
		msg:      make(chan model.Msg, 10),
		out:      make(chan model.Msg, 10),
		done:     make(chan struct{}),
		cfg:      calculator.DefaultConfig(),
		humidity: 50,
	}
}

// 配置消息体，未给出的字段保持当前值
type envContent struct {
	MeshSize            float64 `json:"mesh_size"`
	AdaptiveFactor      float64 `json:"adaptive_factor"`
	InteriorTemperature float64 `json:"interior_temperature"`
	ExteriorTemperature float64 `json:"exterior_temperature"`
	InteriorAmbient     float64 `json:"interior_ambient"`
	ExteriorAmbient     float64 `json:"exterior_ambient"`
	HInterior           float64 `json:"h_interior"`
	HExterior           float64 `json:"h_exterior"`
	MaxIterations       int     `json:"max_iterations"`
	Tolerance           float64 `json:"tolerance"`
	RelativeHumidity    float64 `json:"relative_humidity"`
}

// 推送给前端的结果：模拟结果 + 结露判定
type resultContent struct {
	*calculator.SimulationResult
	SurfaceTemperature float64 `json:"surface_temperature"`
	DewPoint           float64 `json:"dew_point"`
	CondensationRisk   bool    `json:"condensation_risk"`
}

func (h *Hub) handleRequest() {
	for msg := range h.msg {
		switch msg.Type {
		case "project":
			regions, err := model.LoadProject(strings.NewReader(msg.Content))
			if err != nil {
				h.replyErr(err)
				continue
			}
			h.regions = regions
			h.send(model.Msg{Type: "projectSet", Content: "project is set"})
		case "env":
			env := envContent{
				MeshSize:            h.cfg.MeshSize,
				AdaptiveFactor:      h.cfg.AdaptiveFactor,
				InteriorTemperature: h.cfg.InteriorTemperature,
				ExteriorTemperature: h.cfg.ExteriorTemperature,
				InteriorAmbient:     h.cfg.InteriorAmbient,
				ExteriorAmbient:     h.cfg.ExteriorAmbient,
				HInterior:           h.cfg.HInterior,
				HExterior:           h.cfg.HExterior,
				MaxIterations:       h.cfg.MaxIterations,
				Tolerance:           h.cfg.Tolerance,
				RelativeHumidity:    h.humidity,
			}
			if err := json.Unmarshal([]byte(msg.Content), &env); err != nil {
				h.replyErr(err)
				continue
			}
			next := h.cfg
			next.MeshSize = env.MeshSize
			next.AdaptiveFactor = env.AdaptiveFactor
			next.InteriorTemperature = env.InteriorTemperature
			next.ExteriorTemperature = env.ExteriorTemperature
			next.InteriorAmbient = env.InteriorAmbient
			next.ExteriorAmbient = env.ExteriorAmbient
			next.HInterior = env.HInterior
			next.HExterior = env.HExterior
			next.MaxIterations = env.MaxIterations
			next.Tolerance = env.Tolerance
			if err := next.Validate(); err != nil {
				h.replyErr(err)
				continue
			}
			h.mu.Lock()
			h.cfg = next
			h.humidity = env.RelativeHumidity
			h.mu.Unlock()
			h.send(model.Msg{Type: "envSet", Content: "env is set"})
		case "materials":
			data, err := json.Marshal(calculator.Materials())
			if err != nil {
				h.replyErr(err)
				continue
			}
			h.send(model.Msg{Type: "materials", Content: string(data)})
		case "start":
			// 求解在独立 goroutine 中执行，结果经 calcHub 推回
			h.calcHub.RunAsync(h.regions, h.cfg)
			h.send(model.Msg{Type: "started"})
		case "stop":
			// StopSignal 幂等：start 之前或重复 stop 都是空操作
			h.calcHub.StopSignal()
			h.send(model.Msg{Type: "stopped", Content: "stopped"})
		default:
			log.Warn("no such type: ", msg.Type)
		}
	}
}

func (h *Hub) handleResponse() {
	for {
		select {
		case <-h.done:
			return
		case reply := <-h.out:
			h.writeMsg(reply)
		case result := <-h.calcHub.ResultReady:
			h.pushResult(result)
		case err := <-h.calcHub.Err:
			log.Warn("calc: ", err)
			h.writeMsg(model.Msg{Type: "error", Content: err.Error()})
		}
	}
}

// writeMsg 直接写连接，只在 handleResponse goroutine 内调用
func (h *Hub) writeMsg(m model.Msg) {
	if err := h.conn.WriteJSON(&m); err != nil {
		log.Warn("write: ", err)
	}
}

// send 投递一条响应；连接已关闭时直接丢弃，避免 goroutine 卡死
func (h *Hub) send(m model.Msg) {
	select {
	case h.out <- m:
	case <-h.done:
	}
}

// condensationInputs 取结露判定所需参数的一致快照
func (h *Hub) condensationInputs() (ti, te, rh float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg.InteriorTemperature, h.cfg.ExteriorTemperature, h.humidity
}

func (h *Hub) pushResult(result *calculator.SimulationResult) {
	if !result.Converged {
		log.Warn(calculator.ErrNotConverged)
	}
	content := resultContent{SimulationResult: result}
	ti, te, rh := h.condensationInputs()
	content.SurfaceTemperature, content.DewPoint, content.CondensationRisk =
		CondensationRisk(result.FRsiValue, ti, te, rh)
	data, err := json.Marshal(&content)
	if err != nil {
		log.Warn("marshal: ", err)
		h.writeMsg(model.Msg{Type: "error", Content: err.Error()})
		return
	}
	h.writeMsg(model.Msg{Type: "result", Content: string(data)})
}

func (h *Hub) replyErr(err error) {
	log.Warn("err: ", err)
	h.send(model.Msg{Type: "error", Content: err.Error()})
}
