// internal/api/websocket.go
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lunaria-ai/lunaria/internal/models"
	"github.com/lunaria-ai/lunaria/internal/utils"
)

// WebSocket 升级器配置
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 在生产环境中应该进行更严格的检查
		return true
	},
}

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

// WebSocketClient 表示一个订阅了会话的客户端连接
type WebSocketClient struct {
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
	closed    int32 // 原子标志，0=开启，1=关闭
}

// Close 安全关闭客户端连接
func (client *WebSocketClient) Close() {
	if atomic.CompareAndSwapInt32(&client.closed, 0, 1) {
		// send通道由写循环的defer负责关闭
		if client.conn != nil {
			client.conn.Close()
		}
	}
}

// IsClosed 检查连接是否已关闭
func (client *WebSocketClient) IsClosed() bool {
	return atomic.LoadInt32(&client.closed) == 1
}

// SessionHub 管理按会话分组的 WebSocket 连接
// 实现 services.ChatNotifier：编排器送达回复或切换输入中标志时，
// 推送给订阅该会话的所有客户端。
type SessionHub struct {
	mu          sync.RWMutex
	connections map[string]map[*WebSocketClient]bool // sessionID -> clients
}

// NewSessionHub 创建会话连接管理器
func NewSessionHub() *SessionHub {
	return &SessionHub{
		connections: make(map[string]map[*WebSocketClient]bool),
	}
}

// register 注册新客户端
func (hub *SessionHub) register(client *WebSocketClient) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if hub.connections[client.sessionID] == nil {
		hub.connections[client.sessionID] = make(map[*WebSocketClient]bool)
	}
	hub.connections[client.sessionID][client] = true

	utils.GetLogger().Debug("WebSocket 客户端已连接", map[string]interface{}{"session": client.sessionID})
}

// unregister 注销客户端
func (hub *SessionHub) unregister(client *WebSocketClient) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if clients, ok := hub.connections[client.sessionID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(hub.connections, client.sessionID)
		}
	}

	if !client.IsClosed() {
		client.Close()
	}
}

// broadcastToSession 向订阅指定会话的客户端推送消息
func (hub *SessionHub) broadcastToSession(sessionID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		utils.GetLogger().Error("序列化推送消息失败", map[string]interface{}{"error": err.Error()})
		return
	}

	hub.mu.RLock()
	clients := make([]*WebSocketClient, 0, len(hub.connections[sessionID]))
	for client := range hub.connections[sessionID] {
		if !client.IsClosed() {
			clients = append(clients, client)
		}
	}
	hub.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- data:
		default:
			// 队列满说明客户端已经跟不上，直接断开
			client.Close()
		}
	}
}

// MessageDelivered 实现 services.ChatNotifier
func (hub *SessionHub) MessageDelivered(sessionID string, msg models.Message) {
	hub.broadcastToSession(sessionID, map[string]interface{}{
		"type":       "message",
		"session_id": sessionID,
		"message":    msg,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// TypingChanged 实现 services.ChatNotifier
func (hub *SessionHub) TypingChanged(sessionID string, typing bool) {
	hub.broadcastToSession(sessionID, map[string]interface{}{
		"type":       "typing",
		"session_id": sessionID,
		"typing":     typing,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// Status 返回连接状态（调试用）
func (hub *SessionHub) Status() map[string]interface{} {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	sessions := make(map[string]interface{})
	total := 0
	for sessionID, clients := range hub.connections {
		sessions[sessionID] = map[string]interface{}{"client_count": len(clients)}
		total += len(clients)
	}

	return map[string]interface{}{
		"total_sessions":    len(hub.connections),
		"total_connections": total,
	}
}

// Shutdown 关闭所有连接
func (hub *SessionHub) Shutdown() {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	for _, clients := range hub.connections {
		for client := range clients {
			client.Close()
		}
	}
	hub.connections = make(map[string]map[*WebSocketClient]bool)
}

// ServeSession 升级HTTP连接并订阅指定会话
func (hub *SessionHub) ServeSession(c *gin.Context, sessionID string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Warn("WebSocket 升级失败", map[string]interface{}{"error": err.Error()})
		return
	}

	client := &WebSocketClient{
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, 64),
	}

	hub.register(client)

	go hub.writePump(client)
	go hub.readPump(client)
}

// writePump 把队列中的消息写到连接，并维持ping
// send通道从不关闭：连接断开后写操作报错退出循环，通道交给GC。
func (hub *SessionHub) writePump(client *WebSocketClient) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		client.Close()
	}()

	for {
		select {
		case data := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 消费客户端消息；这个端点只做服务端推送，入站内容全部丢弃
func (hub *SessionHub) readPump(client *WebSocketClient) {
	defer hub.unregister(client)

	client.conn.SetReadLimit(4096)
	client.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}
