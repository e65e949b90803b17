package entities

// StatusEnvelope is the body of the controller's status response. Data keeps
// the raw camelCase records until they are structured into Cells.
type StatusEnvelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
