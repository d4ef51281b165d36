package handlers

import (
	"context"
	"errors"
	"image"
	"net/http"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-chi/chi/v5"

	"github.com/mchen-dev/memedubber/internal/pipeline"
	"github.com/mchen-dev/memedubber/internal/tts"
)

// Processor runs the meme-to-speech pipeline for one request.
type Processor interface {
	Process(ctx context.Context, img image.Image, backend tts.Backend) pipeline.Result
}

type MemeHandler struct {
	pipeline Processor
	audioDir string
}

func NewMemeHandler(p Processor, audioDir string) *MemeHandler {
	return &MemeHandler{pipeline: p, audioDir: audioDir}
}

type dubResponse struct {
	Message     string `json:"message"`
	AudioURL    string `json:"audio_url,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Dub accepts a multipart form with an "image" file and a "backend" selector
// ("cloud" or "local", default "cloud") and runs the pipeline. Pipeline
// failures still come back as 200 with a status message; only malformed
// requests are client errors.
func (h *MemeHandler) Dub(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	backendStr := r.FormValue("backend")
	if backendStr == "" {
		backendStr = "cloud"
	}
	backend, err := tts.ParseBackend(backendStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// A missing file part is not a request error: the pipeline owns the
	// "please upload an image" response.
	var img image.Image
	file, _, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		img, _, err = image.Decode(file)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not decode image"})
			return
		}
	case errors.Is(err, http.ErrMissingFile):
		// img stays nil
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid image upload"})
		return
	}

	result := h.pipeline.Process(r.Context(), img, backend)

	resp := dubResponse{Message: result.Message}
	if result.Audio != nil {
		resp.AudioURL = "/api/v1/audio/" + filepath.Base(result.Audio.Path)
		resp.ContentType = result.Audio.ContentType
	}
	writeJSON(w, http.StatusOK, resp)
}

// Audio serves a generated artifact by file name.
func (h *MemeHandler) Audio(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid audio file name"})
		return
	}
	http.ServeFile(w, r, filepath.Join(h.audioDir, name))
}
