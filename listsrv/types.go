// Package listsrv hosts block lists and lets clients edit them by position over a WebSocket.
// Each socket is bound to a single list; many sockets may share one list.
package listsrv

import (
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

const (
	CodeUnknownProtocol = 3000
	CodeExcessTraffic   = 3001
	CodeUnknownList     = 3002
	CodeBadRequest      = 3003

	helloTimeout   = time.Second * 10 // how long to allow for initial handshake
	outgoingBuffer = 16
	maxRange       = 1024 // most values returned by a single range op
)

// Ops understood in Request.Op.
const (
	OpLen         = "len"
	OpGet         = "get"
	OpSet         = "set"
	OpInsert      = "insert"
	OpInsertFirst = "insertFirst"
	OpInsertLast  = "insertLast"
	OpRemove      = "remove"
	OpRemoveFirst = "removeFirst"
	OpRemoveLast  = "removeLast"
	OpRange       = "range"
	OpDrop        = "drop" // removes the list; the socket then closes normally
)

var (
	// ErrUnknownList is returned when an op targets a list that isn't hosted here.
	ErrUnknownList = errors.New("listsrv: unknown list")

	// ErrUnknownOp is reported to the caller for an unsupported Request.Op.
	ErrUnknownOp = errors.New("listsrv: unknown op")
)

// LimitConfig configures a token bucket.
type LimitConfig struct {
	Burst int        `json:"b" toml:"burst"`
	Rate  rate.Limit `json:"r" toml:"rate"`
}

func buildLimiter(lc *LimitConfig) *rate.Limiter {
	if lc == nil {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(lc.Rate, lc.Burst)
}

type helloMessage struct {
	Protocol string `json:"p"`
	List     string `json:"list,omitempty"`
}

type helloResponse struct {
	Ok      bool         `json:"ok"`
	Session int          `json:"session"`
	List    string       `json:"list"`
	Limit   *LimitConfig `json:"limit,omitzero"`
}

// Request is a single op against the list bound to a socket.
type Request struct {
	ID    int             `json:"id"`
	Op    string          `json:"op"`
	Index int             `json:"i,omitempty"`
	Count int             `json:"n,omitempty"`
	Value json.RawMessage `json:"v,omitempty"`
}

// Response answers the Request with the same ID.
// Len is always the length of the list after the op.
type Response struct {
	ID     int               `json:"id"`
	Value  json.RawMessage   `json:"v,omitempty"`
	Values []json.RawMessage `json:"vs,omitempty"`
	Len    int               `json:"len"`
	Err    string            `json:"err,omitempty"`
}
