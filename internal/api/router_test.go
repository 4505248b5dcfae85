package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicelab/voiceplatform/internal/api"
	"github.com/voicelab/voiceplatform/internal/config"
	"github.com/voicelab/voiceplatform/internal/language"
	"github.com/voicelab/voiceplatform/internal/store"
	"github.com/voicelab/voiceplatform/internal/tts"
)

type fakeEngine struct {
	voices []tts.Voice
	audio  []byte
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Voices(context.Context) ([]tts.Voice, error) {
	return f.voices, nil
}

func (f *fakeEngine) Synthesize(context.Context, tts.SynthesisInput) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.audio)), nil
}

var detector = language.NewDetector()

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{CORSOrigins: []string{"*"}},
		TTS:    config.TTSConfig{Backend: "edge"},
	}
	engine := &fakeEngine{
		voices: []tts.Voice{
			{Name: "Microsoft Server Speech Text to Speech Voice (en-US, AriaNeural)", ShortName: "en-US-AriaNeural", Gender: "Female", Locale: "en-US", Language: "en", FriendlyName: "Aria"},
			{Name: "Microsoft Server Speech Text to Speech Voice (zh-CN, XiaoxiaoNeural)", ShortName: "zh-CN-XiaoxiaoNeural", Gender: "Female", Locale: "zh-CN", Language: "zh", FriendlyName: "Xiaoxiao"},
		},
		audio: bytes.Repeat([]byte{0x11}, 600),
	}

	router := api.NewRouter(cfg, engine, detector, store.NewMemoryItems(), store.NewMemoryUsers())
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestHealth(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestRootDirectory(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Contains(t, body, "services")
	assert.Equal(t, "/api/v1/docs", body["docs"])
}

func TestEcho(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/echo", `{"message":"ping"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "ping", body["message"])

	resp = postJSON(t, srv.URL+"/api/v1/echo", `{"message":""}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Length limits count characters, so multi-byte messages near the limit pass.
func TestEchoMultiByteMessage(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	msg := strings.Repeat("中文消息", 200) // 800 chars, 2400 bytes
	body, err := json.Marshal(map[string]string{"message": msg})
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/api/v1/echo", string(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]interface{}
	decodeBody(t, resp, &got)
	assert.Equal(t, msg, got["message"])
}

func TestListVoices(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/tts/voices")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Voices     []tts.Voice `json:"voices"`
		TotalCount int         `json:"total_count"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 2, body.TotalCount)
	require.Len(t, body.Voices, 2)
	assert.Equal(t, "en-US-AriaNeural", body.Voices[0].ShortName)
}

func TestSearchVoices(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/tts/voices/search", `{"language":"zh","gender":"Female","limit":5}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Voices         []tts.Voice       `json:"voices"`
		TotalCount     int               `json:"total_count"`
		FilteredCount  int               `json:"filtered_count"`
		FiltersApplied map[string]string `json:"filters_applied"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 2, body.TotalCount)
	assert.Equal(t, 1, body.FilteredCount)
	require.Len(t, body.Voices, 1)
	assert.Equal(t, "zh", body.Voices[0].Language)
	assert.Equal(t, map[string]string{"language": "zh", "gender": "Female"}, body.FiltersApplied)
}

func TestSearchVoicesBadLimit(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/tts/voices/search", `{"limit":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "validation_error", body["error"])
}

func TestSynthesizeMetadata(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/tts/synthesize", `{"text":"Hello world!","voice":"en-US-AriaNeural","rate":"+20%"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var meta tts.Metadata
	decodeBody(t, resp, &meta)
	assert.Equal(t, "en-US-AriaNeural", meta.VoiceUsed)
	assert.Equal(t, "audio/mpeg", meta.ContentType)
	assert.Equal(t, 600, meta.AudioSize)
	assert.Equal(t, "+20%", meta.Parameters.Rate)
	assert.Equal(t, "+0Hz", meta.Parameters.Pitch)
}

func TestSynthesizeUnknownVoice(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/tts/synthesize", `{"text":"hi","voice":"fr-FR-NopeNeural"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "not_found", body["error"])
}

func TestSynthesizeStream(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/tts/synthesize/stream", `{"text":"hi","voice":"en-US-AriaNeural"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))

	audio, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Len(t, audio, 600)
}

func TestSupportedLanguages(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/language/supported")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Languages  []language.Info `json:"languages"`
		TotalCount int             `json:"total_count"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 18, body.TotalCount)
}

func TestDetect(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/language/detect", `{"text":"Hello world! This is clearly an English sentence.","with_confidence":true}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res language.Result
	decodeBody(t, resp, &res)
	assert.Equal(t, "en", res.Language)
	require.NotNil(t, res.Confidence)
	assert.GreaterOrEqual(t, *res.Confidence, 0.0)
	assert.LessOrEqual(t, *res.Confidence, 1.0)
}

func TestDetectEmptyText(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/language/detect", `{"text":"  "}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDetectBatch(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/language/detect/batch",
		`{"texts":["Hello world! This is clearly an English sentence.","这是一个完整的中文句子，用来测试语言检测。"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Results    []language.Result `json:"results"`
		TotalCount int               `json:"total_count"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "en", body.Results[0].Language)
	assert.Equal(t, "zh", body.Results[1].Language)
}

func TestDetectConfidenceAlwaysPopulated(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/language/detect/confidence", `{"text":"Hallo Welt, dies ist ein deutscher Satz."}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res language.Result
	decodeBody(t, resp, &res)
	assert.NotNil(t, res.Confidence)
}

func TestItemsLifecycle(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/items", `{"name":"widget","price":9.99}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var item store.Item
	decodeBody(t, resp, &item)
	assert.Equal(t, 1, item.ID)

	resp = postJSON(t, srv.URL+"/api/v1/items", `{"name":"","price":9.99}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/v1/items", `{"name":"free","price":0}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/items/1", strings.NewReader(`{"name":"widget v2","price":12.5}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	putResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	decodeBody(t, putResp, &item)
	assert.Equal(t, "widget v2", item.Name)

	delReq, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/items/1", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(delReq)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	getResp, err := http.Get(srv.URL + "/api/v1/items/1")
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestItemsMultiByteName(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	// 60 characters, 180 bytes: within the 100-character name limit.
	resp := postJSON(t, srv.URL+"/api/v1/items", `{"name":"`+strings.Repeat("豪华小部件", 12)+`","price":1.5}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var item store.Item
	decodeBody(t, resp, &item)
	assert.Equal(t, 60, len([]rune(item.Name)))
}

func TestUsersValidation(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/users", `{"username":"alice","email":"alice@example.com","password":"correcthorse"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var user store.User
	decodeBody(t, resp, &user)
	assert.True(t, user.IsActive)

	// Duplicate username.
	resp = postJSON(t, srv.URL+"/api/v1/users", `{"username":"alice","email":"alice2@example.com","password":"correcthorse"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Bad email.
	resp = postJSON(t, srv.URL+"/api/v1/users", `{"username":"bob","email":"not-an-email","password":"correcthorse"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Short password.
	resp = postJSON(t, srv.URL+"/api/v1/users", `{"username":"carol","email":"carol@example.com","password":"short"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
