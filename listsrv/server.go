package listsrv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Handler serves the lists in Store over WebSockets.
// Each socket says hello, is bound to a list, and then sends Request values which are answered in order.
type Handler struct {
	Store *Store

	// SkipOriginVerify allows any hostname to connect here, not just our own.
	SkipOriginVerify bool

	// OpLimit optionally limits the number of ops allowed by a single socket.
	// A socket will be killed if it exceeds this rate; the client is told it in the hello response.
	// Use SetOpLimit to change this once serving.
	OpLimit *LimitConfig

	// unexported fields

	once        sync.Once
	nextSession func() int
	override    atomic.Pointer[limitOverride]
}

type limitOverride struct {
	lc *LimitConfig
}

func (ch *Handler) init() {
	ch.once.Do(func() {
		ch.nextSession = newSessionIDs()
	})
}

// SetOpLimit replaces OpLimit for sockets that connect after this call.
// A nil LimitConfig removes the limit.
func (ch *Handler) SetOpLimit(lc *LimitConfig) {
	ch.override.Store(&limitOverride{lc: lc})
}

func (ch *Handler) opLimit() *LimitConfig {
	if o := ch.override.Load(); o != nil {
		return o.lc
	}
	return ch.OpLimit
}

func (ch *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ch.init()

	options := &websocket.AcceptOptions{InsecureSkipVerify: ch.SkipOriginVerify}
	sock, err := websocket.Accept(w, r, options)
	if err != nil {
		Log.WithFields(logrus.Fields{"path": r.URL.Path}).WithError(err).Warn("could not set up websocket")
		return
	}

	session := ch.nextSession()
	log := Log.WithFields(logrus.Fields{"session": session})

	ctx, cancel := context.WithCancelCause(context.Background())
	err = ch.runSocket(ctx, log, session, sock)
	cancel(err)

	var closeError websocket.CloseError
	if errors.As(err, &closeError) {
		log.WithFields(logrus.Fields{"code": int(closeError.Code)}).Infof("shutdown socket due to known reason: %s", closeError.Reason)
		sock.Close(closeError.Code, closeError.Reason)
	} else if err != nil && err != context.Canceled {
		log.WithError(err).Warn("shutdown socket due to error")
		sock.Close(websocket.StatusInternalError, "")
	} else {
		sock.Close(websocket.StatusNormalClosure, "")
	}
}

func (ch *Handler) runSocket(ctx context.Context, log *logrus.Entry, session int, sock *websocket.Conn) error {
	helloCtx, helloCancel := context.WithTimeout(ctx, helloTimeout)
	defer helloCancel()

	_, b, err := sock.Read(helloCtx)
	if err != nil {
		return err
	}
	var hello helloMessage
	if err := json.Unmarshal(b, &hello); err != nil {
		return websocket.CloseError{Code: CodeBadRequest, Reason: "bad hello"}
	} else if hello.Protocol != "1" {
		return websocket.CloseError{
			Code:   CodeUnknownProtocol,
			Reason: fmt.Sprintf("unknown protocol: %q", hello.Protocol),
		}
	}

	list := hello.List
	if list == "" {
		list = ch.Store.Create()
		log.WithFields(logrus.Fields{"list": list, "lists": ch.Store.Count()}).Info("created list")
	} else if !ch.Store.Has(list) {
		return websocket.CloseError{Code: CodeUnknownList, Reason: "unknown list"}
	}

	lc := ch.opLimit()
	err = wsjson.Write(helloCtx, sock, helloResponse{
		Ok:      true,
		Session: session,
		List:    list,
		Limit:   lc,
	})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"list": list}).Debug("socket bound")

	limiter := buildLimiter(lc)
	out := make(chan Response, outgoingBuffer)
	eg, groupCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(out)
		for {
			typ, b, err := sock.Read(groupCtx)
			if err != nil {
				return err
			}
			if !limiter.Allow() {
				// drop; sending too many ops
				return websocket.CloseError{Code: CodeExcessTraffic, Reason: "too many ops"}
			}

			var req Request
			if typ != websocket.MessageText || json.Unmarshal(b, &req) != nil {
				return websocket.CloseError{Code: CodeBadRequest, Reason: "bad request"}
			}

			res, err := ch.Store.Apply(list, req)
			if err != nil {
				// list was dropped under us
				return websocket.CloseError{Code: CodeUnknownList, Reason: "unknown list"}
			}

			select {
			case out <- res:
			case <-groupCtx.Done():
				return context.Cause(groupCtx)
			}

			if req.Op == OpDrop && res.Err == "" {
				log.WithFields(logrus.Fields{"list": list, "lists": ch.Store.Count()}).Info("dropped list")
				return nil
			}
		}
	})

	// writes use the socket ctx: canceling a write's ctx tears down the conn before any close code is sent
	eg.Go(func() error {
		for res := range out {
			if err := wsjson.Write(ctx, sock, res); err != nil {
				return err
			}
		}
		return nil
	})

	return eg.Wait()
}
