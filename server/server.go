package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bprime/config"
	"bprime/model"
	"bprime/pipeline"
	"bprime/solver"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// 建表流程，*pipeline.Pipeline 实现此接口
type Runner interface {
	Run(ctx context.Context, job pipeline.Job) (*pipeline.Result, error)
}

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	runner   Runner

	// 新连接的初始混合物与网格
	mixture solver.Mixture
	ranges  config.GridConfig
}

func NewServer(addr string, upgrader websocket.Upgrader, runner Runner, mixture solver.Mixture, ranges config.GridConfig) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		runner:   runner,
		mixture:  mixture,
		ranges:   ranges,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket 升级失败")
		return
	}
	ctx, cancel := context.WithCancel(r.Context())
	hub := NewHub(conn, s.runner, s.mixture, s.ranges)
	log.WithFields(log.Fields{"session": hub.id, "remote": r.RemoteAddr}).Info("建立连接")
	defer func() {
		cancel()
		hub.wait()
		conn.Close()
		log.WithField("session", hub.id).Info("连接关闭")
	}()

	go hub.handleRequest(ctx)
	go hub.handleResponse(ctx, cancel)
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
				log.WithError(err).Warn("读取消息失败")
			}
			return
		}
		select {
		case hub.msg <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// 阻塞直到 ctx 结束或监听失败
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.addr).Info("服务启动")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
