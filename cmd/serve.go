package cmd

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"gopkg.in/ini.v1"

	"tb/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the websocket simulation server",
	Long: `Serve the simulation engine over a websocket endpoint (/ws) for
the drawing editor frontend. Requests and responses are JSON frames
{"type": ..., "content": ...}.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 命令行未指定监听地址时尝试配置文件
		if !cmd.Flags().Changed("addr") {
			if file, err := ini.Load(cfgPath); err == nil {
				serveAddr = file.Section("server").Key("Addr").MustString(serveAddr)
			}
		}
		upgrader := websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}
		s := server.NewServer(serveAddr, upgrader)
		return s.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":9000", "Listen address")
}
