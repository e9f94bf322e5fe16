package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"tb/model"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
}

func NewServer(addr string, upgrader websocket.Upgrader) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("upgrade: ", err)
		return
	}
	defer conn.Close()
	log.Info("client connected: ", conn.RemoteAddr())

	hub := NewHub()
	hub.conn = conn
	go hub.handleRequest()
	go hub.handleResponse()
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			log.Warn("read: ", err)
			// 两个处理 goroutine 随连接一起退出
			close(hub.msg)
			close(hub.done)
			return
		}
		hub.msg <- msg
	}
}

func (s *Server) Serve() error {
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.serveWs(w, r)
	})
	log.Info("listening on ", s.addr)
	return http.ListenAndServe(s.addr, nil)
}
