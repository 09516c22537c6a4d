package game

// NetworkSession abstracts the websocket connection so sessions can be tested
// without a live transport.
type NetworkSession interface {
	Close(errCode string)
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
}

// TokenVerifier checks a connection's identity token and yields the stable
// player identity behind it.
type TokenVerifier interface {
	Verify(token string) (playerID, name string, err error)
}
