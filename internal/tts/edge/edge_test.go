package edge_test

import (
	"context"
	"encoding/binary"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicelab/voiceplatform/internal/tts"
	"github.com/voicelab/voiceplatform/internal/tts/edge"
)

const voiceListJSON = `[
  {"Name":"Microsoft Server Speech Text to Speech Voice (en-US, AriaNeural)","ShortName":"en-US-AriaNeural","Gender":"Female","Locale":"en-US","FriendlyName":"Microsoft Aria Online (Natural) - English (United States)"},
  {"Name":"Microsoft Server Speech Text to Speech Voice (zh-CN, XiaoxiaoNeural)","ShortName":"zh-CN-XiaoxiaoNeural","Gender":"Female","Locale":"zh-CN","FriendlyName":"Microsoft Xiaoxiao Online (Natural) - Chinese (Mainland)"}
]`

func TestVoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, voiceListJSON)
	}))
	defer srv.Close()

	engine := edge.New(edge.Config{VoiceListURL: srv.URL})
	voices, err := engine.Voices(context.Background())
	require.NoError(t, err)
	require.Len(t, voices, 2)

	assert.Equal(t, "en-US-AriaNeural", voices[0].ShortName)
	assert.Equal(t, "Female", voices[0].Gender)
	assert.Equal(t, "en-US", voices[0].Locale)
	assert.Equal(t, "en", voices[0].Language)
	assert.Equal(t, "zh", voices[1].Language)
}

func TestVoicesProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "access denied", http.StatusForbidden)
	}))
	defer srv.Close()

	engine := edge.New(edge.Config{VoiceListURL: srv.URL})
	_, err := engine.Voices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

// binaryFrame builds a provider frame: big-endian header length, header,
// payload.
func binaryFrame(header string, payload []byte) []byte {
	frame := make([]byte, 2+len(header)+len(payload))
	binary.BigEndian.PutUint16(frame[:2], uint16(len(header)))
	copy(frame[2:], header)
	copy(frame[2+len(header):], payload)
	return frame
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("ConnectionId"))

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		_, cfgMsg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(cfgMsg), "Path:speech.config")
		assert.Contains(t, string(cfgMsg), "audio-24khz-48kbitrate-mono-mp3")

		_, ssmlMsg, err := conn.ReadMessage()
		require.NoError(t, err)
		ssml := string(ssmlMsg)
		assert.Contains(t, ssml, "Path:ssml")
		assert.Contains(t, ssml, "name='en-US-AriaNeural'")
		assert.Contains(t, ssml, "rate='+20%'")
		assert.Contains(t, ssml, "pitch='+0Hz'")
		assert.Contains(t, ssml, "Fish &amp; chips") // XML escaping

		require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, binaryFrame("Path:audio\r\n", []byte("MP3-"))))
		// Non-audio binary frames carry no payload for the stream.
		require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, binaryFrame("Path:other\r\n", []byte("SKIP"))))
		require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, binaryFrame("Path:audio\r\n", []byte("DATA"))))
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("X-RequestId:x\r\nPath:turn.end\r\n\r\n{}")))
	}))
	defer srv.Close()

	engine := edge.New(edge.Config{
		SynthesisURL: "ws" + strings.TrimPrefix(srv.URL, "http"),
		Timeout:      5 * time.Second,
	})

	stream, err := engine.Synthesize(context.Background(), tts.SynthesisInput{
		Text:   "Fish & chips",
		Voice:  "en-US-AriaNeural",
		Rate:   "+20%",
		Volume: "+0%",
		Pitch:  "+0Hz",
	})
	require.NoError(t, err)
	defer stream.Close()

	audio, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "MP3-DATA", string(audio))
}

func TestSynthesizeSessionFailure(t *testing.T) {
	t.Parallel()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		// Drop the connection before any audio arrives.
		conn.Close()
	}))
	defer srv.Close()

	engine := edge.New(edge.Config{
		SynthesisURL: "ws" + strings.TrimPrefix(srv.URL, "http"),
		Timeout:      5 * time.Second,
	})

	stream, err := engine.Synthesize(context.Background(), tts.SynthesisInput{
		Text: "hello", Voice: "en-US-AriaNeural", Rate: "+0%", Volume: "+0%", Pitch: "+0Hz",
	})
	if err != nil {
		return // dial itself may observe the close; also acceptable
	}
	defer stream.Close()

	_, err = io.ReadAll(stream)
	require.Error(t, err)
}

func TestSynthesizeDialFailure(t *testing.T) {
	t.Parallel()

	engine := edge.New(edge.Config{
		SynthesisURL: "ws://127.0.0.1:1/unreachable",
		Timeout:      time.Second,
	})

	_, err := engine.Synthesize(context.Background(), tts.SynthesisInput{
		Text: "hello", Voice: "en-US-AriaNeural", Rate: "+0%", Volume: "+0%", Pitch: "+0Hz",
	})
	require.Error(t, err)
}
