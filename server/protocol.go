package server

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"

	"go.viam.com/photonav/gridspace"
)

// Request is the single-line JSON document spec.md §6 defines as the
// whole wire protocol.
type Request struct {
	Type string      `json:"type"`
	Data RequestData `json:"data"`
}

// RequestData holds the exploration task payload. Extended is an
// enhancement over the wire protocol spec.md §6 defines literally:
// setting it opts the response into the `{"commands_string", "coords"}`
// form instead of the bare comma-separated string.
type RequestData struct {
	Task      string         `json:"task"`
	Robot     RobotWire      `json:"robot"`
	Obstacles []ObstacleWire `json:"obstacles"`
	Extended  bool           `json:"extended,omitempty"`
}

// RobotWire is the robot pose as it appears on the wire.
type RobotWire struct {
	ID  string `json:"id"`
	X   int    `json:"x"`
	Y   int    `json:"y"`
	Dir string `json:"dir"`
}

// ObstacleWire is one obstacle as it appears on the wire. ID accepts
// either a JSON number or a JSON string, per spec.md §6's `id: <int|str>`.
type ObstacleWire struct {
	ID  WireID `json:"id"`
	X   int    `json:"x"`
	Y   int    `json:"y"`
	Dir string `json:"dir"`
}

// WireID is an obstacle id that may arrive as a JSON integer or a JSON
// string. Int() resolves it to the integer gridspace.Obstacle.ID:
// numeric strings parse directly, non-numeric strings hash deterministically
// via gridspace.ObstacleIDFromLabel.
type WireID struct {
	raw string
}

// UnmarshalJSON accepts both `"id": 3` and `"id": "B3"`.
func (w *WireID) UnmarshalJSON(b []byte) error {
	var asInt int64
	if err := json.Unmarshal(b, &asInt); err == nil {
		w.raw = strconv.FormatInt(asInt, 10)
		return nil
	}
	var asString string
	if err := json.Unmarshal(b, &asString); err == nil {
		w.raw = asString
		return nil
	}
	return errors.Wrap(ErrBadRequest, "obstacle id must be a number or a string")
}

// Int resolves the wire id to the integer identifier gridspace.Obstacle
// stores.
func (w WireID) Int() int {
	if n, err := strconv.Atoi(w.raw); err == nil {
		return n
	}
	return gridspace.ObstacleIDFromLabel(w.raw)
}

// Response is the extended reply form from spec.md §6: the plain
// comma-separated command string plus the replayed coordinate trace.
// The boundary sends just CommandsString's bytes in the baseline wire
// form; Response is used when a caller opts into the extended form (see
// RequestData.Extended).
type Response struct {
	CommandsString string  `json:"commands_string"`
	Coords         string  `json:"coords"`
	Error          *string `json:"error,omitempty"`
}
