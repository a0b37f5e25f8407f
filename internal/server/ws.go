package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// 書き込みが途絶えたときにpingを送る間隔
const wsIdlePingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsMessage はWebSocketで交換するメッセージの外枠
type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// serveWS は1接続分のWebSocketを処理する
// 受信はこのgoroutineで直列に読む（UI入力の直列化）、送信は専用goroutine
func serveWS(session *Session, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	send := make(chan []byte, 16)
	go func() {
		defer conn.Close()
		if err := writeWithHeartbeat(conn, send); err != nil {
			log.Printf("[ws] write: %v", err)
		}
	}()
	defer close(send)

	// 接続直後に現在の状態を送る
	sendJSON(send, wsMessage{Type: "state", Payload: mustMarshal(session.State())})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "state":
			sendJSON(send, wsMessage{Type: "state", Payload: mustMarshal(session.State())})
		case "new":
			sendJSON(send, wsMessage{Type: "state", Payload: mustMarshal(session.NewGame())})
		case "continue":
			sendJSON(send, wsMessage{Type: "state", Payload: mustMarshal(session.AcknowledgeWin())})
		case "move":
			var payload struct {
				Direction string `json:"direction"`
			}
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			dir, ok := ParseDirection(payload.Direction)
			if !ok {
				continue
			}
			sendJSON(send, wsMessage{Type: "state", Payload: mustMarshal(session.Move(dir))})
		case "hint":
			sendJSON(send, wsMessage{Type: "hint", Payload: mustMarshal(session.Hint())})
		}
	}
}

// writeWithHeartbeat はsendの内容を書き出し、アイドル時はpingを送る
func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

func sendJSON(send chan<- []byte, msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[ws] marshal: %v", err)
		return
	}
	send <- data
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
