package session

import (
	"context"
	"errors"

	"github.com/coder/websocket"
)

var errServerClosed = errors.New("server closed connection")

type wsTransport struct {
	conn *websocket.Conn
}

func dialWebsocket(ctx context.Context, url string) (transport, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &wsTransport{conn: conn}, nil
}

func (t *wsTransport) Read(ctx context.Context) ([]byte, error) {
	_, data, err := t.conn.Read(ctx)
	if err != nil {
		// Treat clean close/going-away as the server hanging up, not a
		// transport fault.
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			return nil, errServerClosed
		}
		return nil, err
	}
	return data, nil
}

func (t *wsTransport) Write(ctx context.Context, data []byte) error {
	return t.conn.Write(ctx, websocket.MessageText, data)
}

func (t *wsTransport) Close() error {
	return t.conn.Close(websocket.StatusNormalClosure, "bye")
}
