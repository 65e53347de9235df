// Command httpcodec-demo is the spec §4.G example host: a goroutine-
// per-connection net.Listener loop (grounded on
// pkg/shockwave/server.ShockwaveServer.Serve/handleConnection) that
// drives one engine.ServerEngine per connection, demonstrating the
// non-blocking decode/encode contract without adding protocol logic of
// its own.
//
// It ignores the request path and answers every request one of two ways:
//   - a WebSocket upgrade request gets a 101 (spec §4.F, S6), then its frames are echoed back
//   - any other request gets a small "hello" body, compressed via andybalholm/brotli
//     or klauspost/compress when Accept-Encoding lists br or gzip
package main

import (
	"bytes"
	"context"
	"flag"
	"log/slog"
	"net"
	"os"

	"github.com/andybalholm/brotli"
	kpgzip "github.com/klauspost/compress/gzip"

	"github.com/yourusername/httpcodec/encoder"
	"github.com/yourusername/httpcodec/engine"
	"github.com/yourusername/httpcodec/httpmsg"
	"github.com/yourusername/httpcodec/internal/pool"
	"github.com/yourusername/httpcodec/internal/sysconn"
	wsframe "github.com/yourusername/httpcodec/pkg/shockwave/websocket"
	"github.com/yourusername/httpcodec/wsupgrade"
)

var demoBody = []byte("hello from httpcodec-demo\n")

const scratchSize = 4096

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "listen address")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ln, err := sysconn.ListenConfig().Listen(context.Background(), "tcp", *addr)
	if err != nil {
		logger.Error("listen failed", "addr", *addr, "err", err)
		os.Exit(1)
	}
	logger.Info("listening", "addr", *addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			logger.Error("accept failed", "err", err)
			continue
		}
		if err := sysconn.TuneAccepted(conn); err != nil {
			logger.Warn("socket tuning failed", "err", err)
		}
		go handleConnection(conn, logger)
	}
}

func handleConnection(conn net.Conn, logger *slog.Logger) {
	defer conn.Close()

	readBB := pool.Get()
	decodeOutBB := pool.Get()
	defer pool.Put(readBB)
	defer pool.Put(decodeOutBB)
	readBB.B = growTo(readBB.B, scratchSize)
	decodeOutBB.B = growTo(decodeOutBB.B, scratchSize)

	eng := engine.NewServerEngine(wsupgrade.SwitchProvider(conn, scratchSize, scratchSize))

	var pending []byte
	for {
		n, err := conn.Read(readBB.B)
		if n == 0 && err != nil {
			return
		}
		pending = append(pending, readBB.B[:n]...)

		for len(pending) > 0 {
			nIn, nOut, res, decErr := eng.Decode(pending, decodeOutBB.B, false)
			pending = pending[nIn:]
			if nOut > 0 {
				logger.Debug("unexpected request body bytes ignored in demo", "n", nOut)
			}
			if decErr != nil {
				logger.Error("decode error", "err", decErr)
				return
			}
			if res.Underflow {
				break
			}
			if res.HeaderCompleted {
				req := eng.CurrentRequest()
				if err := respond(eng, conn, req, logger); err != nil {
					logger.Error("respond failed", "err", err)
					return
				}
				if _, ok := eng.Switched(); ok {
					serveWebsocket(eng.LastSwitch(), logger)
					return
				}
			}
		}
	}
}

func respond(eng *engine.ServerEngine, conn net.Conn, req *httpmsg.Request, logger *slog.Logger) error {
	if wsupgrade.IsUpgradeRequest(req) {
		resp := wsupgrade.BuildSwitchResponse(req, nil)
		if err := eng.EncodeHeader(resp); err != nil {
			return err
		}
		return flushEncoder(eng, conn, nil)
	}

	body, contentEncoding := negotiateBody(req)

	resp := httpmsg.NewResponse(200, req.Protocol(), true)
	if contentEncoding != "" {
		resp.SetField("Content-Encoding", contentEncoding)
	}
	if err := eng.EncodeHeader(resp); err != nil {
		return err
	}
	return flushEncoder(eng, conn, body)
}

// negotiateBody demonstrates the two compression libraries the core
// codec itself never touches (spec §1 scopes compression out of the
// decoder/encoder): gzip via klauspost/compress, brotli via
// andybalholm/brotli, selected by Accept-Encoding.
func negotiateBody(req *httpmsg.Request) ([]byte, string) {
	accept, _ := req.Field("Accept-Encoding")
	switch {
	case containsToken(accept, "br"):
		var buf bytes.Buffer
		w := brotli.NewWriter(&buf)
		w.Write(demoBody)
		w.Close()
		return buf.Bytes(), "br"
	case containsToken(accept, "gzip"):
		var buf bytes.Buffer
		w := kpgzip.NewWriter(&buf)
		w.Write(demoBody)
		w.Close()
		return buf.Bytes(), "gzip"
	default:
		return demoBody, ""
	}
}

func containsToken(value, token string) bool {
	for _, part := range splitComma(value) {
		if part == token {
			return true
		}
	}
	return false
}

func splitComma(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			out = append(out, trimSpace(s[start:i]))
			start = i + 1
		}
	}
	return out
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && s[start] == ' ' {
		start++
	}
	for end > start && s[end-1] == ' ' {
		end--
	}
	return s[start:end]
}

func flushEncoder(eng *engine.ServerEngine, conn net.Conn, body []byte) error {
	outBB := pool.Get()
	defer pool.Put(outBB)
	outBB.B = growTo(outBB.B, scratchSize)

	pos := 0
	for {
		eof := pos >= len(body)
		nIn, nOut, res := eng.Encode(body[pos:], outBB.B, eof)
		pos += nIn
		if nOut > 0 {
			if _, err := conn.Write(outBB.B[:nOut]); err != nil {
				return err
			}
		}
		if res.MessageDone {
			return nil
		}
		if res.Underflow && eof {
			return nil
		}
	}
}

// serveWebsocket hands the connection to the adapted teacher frame
// implementation once the protocol switch has taken effect (spec §4.F,
// S6); it simply echoes messages back, demonstrating the handoff.
func serveWebsocket(sw *encoder.ProtocolSwitchResult, logger *slog.Logger) {
	if sw == nil {
		return
	}
	conn, ok := sw.NewDecoder.(*wsframe.Conn)
	if !ok {
		return
	}
	defer conn.Close()
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(mt, data); err != nil {
			logger.Warn("websocket echo write failed", "err", err)
			return
		}
	}
}

func growTo(b []byte, n int) []byte {
	if cap(b) < n {
		return make([]byte, n)
	}
	return b[:n]
}
