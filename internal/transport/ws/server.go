// Package ws serves the blueprint inspection endpoint. A client opens
// a websocket, sends a HELLO text message, then uploads blueprints as
// binary messages (gzipped NBT); the server answers each upload with a
// SUMMARY or ERROR text message.
package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"littlecad.dev/internal/littletiles"
	"littlecad.dev/internal/persistence/bpfile"
	"littlecad.dev/internal/persistence/indexdb"
	"littlecad.dev/internal/protocol"
)

type Server struct {
	log       *log.Logger
	index     *indexdb.DB // optional; nil disables cataloging
	maxUpload int64

	upgrader websocket.Upgrader
}

func NewServer(logger *log.Logger, index *indexdb.DB, maxUpload int64) *Server {
	return &Server{
		log:       logger,
		index:     index,
		maxUpload: maxUpload,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.SetReadLimit(s.maxUpload)
		if !s.handshake(conn) {
			return
		}

		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			kind, msg, err := conn.ReadMessage()
			if err != nil {
				// Oversized uploads surface here; gorilla already sent
				// the too-big close frame.
				if errors.Is(err, websocket.ErrReadLimit) {
					s.log.Printf("upload over %d bytes dropped", s.maxUpload)
				}
				return
			}
			if kind != websocket.BinaryMessage {
				// Text after the handshake is a client bug.
				_ = writeJSON(conn, protocol.NewError(protocol.ErrProtoBadRequest, "expected a binary blueprint upload"))
				continue
			}
			s.serveUpload(conn, msg)
		}
	}
}

func (s *Server) serveUpload(conn *websocket.Conn, blob []byte) {
	root, err := bpfile.Parse(blob)
	if err != nil {
		_ = writeJSON(conn, protocol.NewError(protocol.ErrBadBlueprint, err.Error()))
		return
	}
	bp, err := littletiles.ParseBlueprint(root)
	if err != nil {
		_ = writeJSON(conn, protocol.NewError(protocol.ErrBadBlueprint, err.Error()))
		return
	}

	digest := indexdb.Digest(blob)
	if s.index != nil {
		_, err := s.index.Put(indexdb.Entry{
			Digest:    digest,
			Path:      "ws-upload",
			Boxes:     int(bp.Boxes),
			Tiles:     int(bp.Tiles),
			Grid:      int(bp.Root.Grid),
			Min:       [3]int{int(bp.Min.X), int(bp.Min.Y), int(bp.Min.Z)},
			Size:      [3]int{int(bp.Max.X - bp.Min.X), int(bp.Max.Y - bp.Min.Y), int(bp.Max.Z - bp.Min.Z)},
			Materials: protocol.MaterialNames(bp),
		})
		if err != nil {
			s.log.Printf("index upload %s: %v", digest[:12], err)
		}
	}

	_ = writeJSON(conn, protocol.SummaryMsg{
		Type:            protocol.TypeSummary,
		ProtocolVersion: protocol.Version,
		Digest:          digest,
		Blueprint:       protocol.Summarize(bp),
	})
}

func (s *Server) handshake(conn *websocket.Conn) bool {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return false
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return false
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return false
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return false
	}

	return writeJSON(conn, protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		MaxUploadBytes:  s.maxUpload,
	}) == nil
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
