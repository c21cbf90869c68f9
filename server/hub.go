package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"bprime/config"
	"bprime/grid"
	"bprime/model"
	"bprime/pipeline"
	"bprime/solver"
	"bprime/writer"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// 消息类型
const (
	TypeEnv     = "env"
	TypeGrid    = "grid"
	TypeStart   = "start"
	TypeStop    = "stop"
	TypeEnvSet  = "envSet"
	TypeGridSet = "gridSet"
	TypeStarted = "started"
	TypeResult  = "result"
	TypeStopped = "stopped"
	TypeError   = "error"
)

// Hub 负责单个连接: 请求在 handleRequest 中处理，回复统一由 handleResponse 写出
type Hub struct {
	id     string
	conn   *websocket.Conn
	runner Runner

	mixture solver.Mixture
	ranges  config.GridConfig

	// request
	msg chan model.Msg
	// response
	reply chan model.Msg

	running bool
	done    chan struct{} // 当前任务结束时关闭
	runs    sync.WaitGroup
}

func NewHub(conn *websocket.Conn, runner Runner, mixture solver.Mixture, ranges config.GridConfig) *Hub {
	return &Hub{
		id:      uuid.NewString(),
		conn:    conn,
		runner:  runner,
		mixture: mixture,
		ranges:  ranges,
		msg:     make(chan model.Msg, 10),
		reply:   make(chan model.Msg, 10),
	}
}

func (h *Hub) handleResponse(ctx context.Context, cancel context.CancelFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithError(err).WithField("session", h.id).Warn("发送消息失败")
				cancel()
				return
			}
			if reply.Type == TypeStopped {
				deadline := time.Now().Add(time.Second)
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stopped")
				_ = h.conn.WriteControl(websocket.CloseMessage, msg, deadline)
				_ = h.conn.SetReadDeadline(deadline)
				cancel()
				return
			}
		}
	}
}

func (h *Hub) handleRequest(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-h.msg:
			h.dispatch(ctx, msg)
		case <-h.done:
			h.running = false
			h.done = nil
		}
	}
}

func (h *Hub) dispatch(ctx context.Context, msg model.Msg) {
	logger := log.WithFields(log.Fields{"session": h.id, "type": msg.Type})
	switch msg.Type {
	case TypeEnv:
		mixture := h.mixture
		if err := json.Unmarshal([]byte(msg.Content), &mixture); err != nil {
			h.fail(ctx, fmt.Errorf("bad env: %w", err))
			return
		}
		h.mixture = mixture
		logger.WithField("mixture", mixture.Name).Info("设置混合物")
		h.send(ctx, model.Msg{Type: TypeEnvSet, Content: "env is set"})
	case TypeGrid:
		ranges := h.ranges
		if err := json.Unmarshal([]byte(msg.Content), &ranges); err != nil {
			h.fail(ctx, fmt.Errorf("bad grid: %w", err))
			return
		}
		g, err := grid.FromRanges(ranges.Temperature, ranges.Pressure, ranges.BlowingRate)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		h.ranges = ranges
		logger.WithField("cells", g.Cells()).Info("设置网格")
		h.send(ctx, model.Msg{Type: TypeGridSet, Content: fmt.Sprintf("%d cells", g.Cells())})
	case TypeStart:
		if h.running {
			h.fail(ctx, fmt.Errorf("a run is already in progress"))
			return
		}
		g, err := grid.FromRanges(h.ranges.Temperature, h.ranges.Pressure, h.ranges.BlowingRate)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		job := pipeline.NewJob(g, h.mixture)
		h.running = true
		h.done = make(chan struct{})
		h.send(ctx, model.Msg{Type: TypeStarted, Content: job.ID})
		h.runs.Add(1)
		go h.run(ctx, job, h.done)
	case TypeStop:
		h.send(ctx, model.Msg{Type: TypeStopped, Content: "stopped"})
	default:
		logger.Warn("no such type")
		h.fail(ctx, fmt.Errorf("unknown message type %q", msg.Type))
	}
}

func (h *Hub) run(ctx context.Context, job pipeline.Job, done chan struct{}) {
	defer h.runs.Done()
	defer close(done)
	res, err := h.runner.Run(ctx, job)
	if err != nil {
		log.WithError(err).WithField("run", job.ID).Error("生成 B' 表失败")
		h.fail(ctx, err)
		return
	}
	if res.Diagnostics != nil {
		res.Diagnostics.Log()
	}
	var buf bytes.Buffer
	if err := writer.WriteTable(&buf, res.Table); err != nil {
		h.fail(ctx, err)
		return
	}
	h.send(ctx, model.Msg{Type: TypeResult, Content: buf.String()})
}

func (h *Hub) send(ctx context.Context, msg model.Msg) {
	select {
	case h.reply <- msg:
	case <-ctx.Done():
	}
}

func (h *Hub) fail(ctx context.Context, err error) {
	h.send(ctx, model.Msg{Type: TypeError, Content: err.Error()})
}

// 等待进行中的任务退出
func (h *Hub) wait() {
	h.runs.Wait()
}
