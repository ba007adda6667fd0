package player

//go:generate mockgen -source=player.go -destination=mock/mock_connection.go -package=mock

// Connection is an interface that abstracts the websocket connection of a
// viewer attached to a session.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}
