package handlers

import "net/http"

// IndexHandler serves the single-page upload form.
type IndexHandler struct{}

func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Meme Dubber</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; }
#message { white-space: pre-wrap; background: #f4f4f4; padding: 1rem; }
</style>
</head>
<body>
<h1>🎭 Meme Dubber</h1>
<p>Upload a meme image and generate an audio dub.</p>
<form id="dub-form">
  <p><input type="file" name="image" accept="image/*"></p>
  <p>
    <label><input type="radio" name="backend" value="cloud" checked> Cloud (MP3)</label>
    <label><input type="radio" name="backend" value="local"> Local (WAV)</label>
  </p>
  <p><button type="submit">🎬 Generate Audio Dub</button></p>
</form>
<div id="message"></div>
<audio id="player" controls hidden></audio>
<script>
document.getElementById('dub-form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const msg = document.getElementById('message');
  const player = document.getElementById('player');
  msg.textContent = 'Working…';
  player.hidden = true;
  const resp = await fetch('/api/v1/meme/dub', {
    method: 'POST',
    body: new FormData(e.target),
  });
  const data = await resp.json();
  msg.textContent = data.message || data.error || 'request failed';
  if (data.audio_url) {
    player.src = data.audio_url;
    player.hidden = false;
  }
});
</script>
</body>
</html>
`

func (h *IndexHandler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexPage))
}
