package protocol

// Master directory payloads, shared by the relay server's registration loop
// and the master service.

type RegisterRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
}

type RegisterResponse struct {
	ID string `json:"id"`
}

type HeartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}
