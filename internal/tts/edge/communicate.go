package edge

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/voicelab/voiceplatform/internal/tts"
)

// Synthesize opens a WebSocket session, sends the speech config and SSML
// messages, and returns a stream of the MP3 frames as the service produces
// them. Closing the stream tears down the session.
func (e *Engine) Synthesize(ctx context.Context, in tts.SynthesisInput) (io.ReadCloser, error) {
	// The protocol requires a fresh 32-char hex connection ID per session,
	// reused as the SSML request ID.
	connID := strings.ReplaceAll(uuid.NewString(), "-", "")

	sep := "?"
	if strings.Contains(e.cfg.SynthesisURL, "?") {
		sep = "&"
	}
	wsURL := e.cfg.SynthesisURL + sep + "ConnectionId=" + connID

	header := http.Header{}
	header.Set("Origin", origin)
	header.Set("User-Agent", userAgent)

	conn, resp, err := e.dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("synthesis dial failed: %s (status %d)", err.Error(), resp.StatusCode)
		}
		return nil, fmt.Errorf("synthesis dial failed: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	deadline := time.Now().Add(e.cfg.Timeout)
	_ = conn.SetReadDeadline(deadline)
	_ = conn.SetWriteDeadline(deadline)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(speechConfigMessage())); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send speech config: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(ssmlMessage(connID, in))); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send ssml: %w", err)
	}

	pr, pw := io.Pipe()
	go pump(conn, pw)
	return &synthesisStream{pr: pr, conn: conn}, nil
}

// pump forwards audio payloads from the socket into the pipe until the
// service signals turn.end or the session fails.
func pump(conn *websocket.Conn, pw *io.PipeWriter) {
	defer conn.Close()
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			pw.CloseWithError(fmt.Errorf("synthesis read: %w", err))
			return
		}

		switch msgType {
		case websocket.TextMessage:
			if strings.Contains(string(data), "Path:turn.end") {
				pw.Close()
				return
			}
		case websocket.BinaryMessage:
			audio, err := audioPayload(data)
			if err != nil {
				pw.CloseWithError(err)
				return
			}
			if len(audio) == 0 {
				continue
			}
			if _, err := pw.Write(audio); err != nil {
				// Reader abandoned the stream; stop pumping.
				return
			}
		}
	}
}

// audioPayload strips the 2-byte big-endian header-length prefix and the
// header block from a binary frame. Frames whose header path is not "audio"
// yield nil.
func audioPayload(frame []byte) ([]byte, error) {
	if len(frame) < 2 {
		return nil, fmt.Errorf("binary frame too short (%d bytes)", len(frame))
	}
	headerLen := int(binary.BigEndian.Uint16(frame[:2]))
	if 2+headerLen > len(frame) {
		return nil, fmt.Errorf("binary frame header length %d exceeds frame size %d", headerLen, len(frame))
	}
	if !strings.Contains(string(frame[2:2+headerLen]), "Path:audio") {
		return nil, nil
	}
	return frame[2+headerLen:], nil
}

type synthesisStream struct {
	pr   *io.PipeReader
	conn *websocket.Conn
}

func (s *synthesisStream) Read(p []byte) (int, error) { return s.pr.Read(p) }

func (s *synthesisStream) Close() error {
	s.conn.Close()
	return s.pr.Close()
}

// timestamp renders the wall clock the way the Edge client does in its
// message headers.
func timestamp() string {
	return time.Now().UTC().Format("Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)")
}

func speechConfigMessage() string {
	return "X-Timestamp:" + timestamp() + "\r\n" +
		"Content-Type:application/json; charset=utf-8\r\n" +
		"Path:speech.config\r\n\r\n" +
		`{"context":{"synthesis":{"audio":{"metadataoptions":{` +
		`"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},` +
		`"outputFormat":"` + outputFormat + `"}}}}` + "\r\n"
}

func ssmlMessage(requestID string, in tts.SynthesisInput) string {
	return "X-RequestId:" + requestID + "\r\n" +
		"Content-Type:application/ssml+xml\r\n" +
		"X-Timestamp:" + timestamp() + "Z\r\n" +
		"Path:ssml\r\n\r\n" +
		buildSSML(in)
}

var ssmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func buildSSML(in tts.SynthesisInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='%s'>`, localeOf(in.Voice))
	fmt.Fprintf(&b, `<voice name='%s'><prosody pitch='%s' rate='%s' volume='%s'>`, in.Voice, in.Pitch, in.Rate, in.Volume)
	b.WriteString(ssmlEscaper.Replace(in.Text))
	b.WriteString(`</prosody></voice></speak>`)
	return b.String()
}

// localeOf extracts the locale tag from a voice short name
// ("en-US-AriaNeural" -> "en-US").
func localeOf(shortName string) string {
	parts := strings.SplitN(shortName, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}
