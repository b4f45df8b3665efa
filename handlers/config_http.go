package handlers

import (
	"html/template"
	"net/http"

	"mediaflow-iptv/logger"
	"mediaflow-iptv/store"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>MediaFlow IPTV Addon</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; }
        .form-group { margin-bottom: 15px; }
        label { display: block; margin-bottom: 5px; }
        input[type="text"], input[type="password"] { width: 100%; padding: 8px; }
        button { padding: 10px 15px; background: #4caf50; color: white; border: none; cursor: pointer; }
        .success { color: green; margin-top: 10px; }
    </style>
</head>
<body>
    <h1>MediaFlow IPTV Addon</h1>
    <p>Enter the streaming proxy coordinates to configure the addon.</p>

    <form action="/save-config" method="post">
        <div class="form-group">
            <label for="mediaflow_url">MediaFlow Proxy URL:</label>
            <input type="text" id="mediaflow_url" name="mediaflow_url" value="{{.URL}}" required>
        </div>

        <div class="form-group">
            <label for="mediaflow_psw">MediaFlow password:</label>
            <input type="password" id="mediaflow_psw" name="mediaflow_psw" value="{{.Psw}}" required>
        </div>

        <button type="submit">Save configuration</button>
    </form>

    {{if .URL}}
    <div class="success">Configuration saved. Install the addon with:</div>
    <p><a href="stremio://addon.stremio.com/{{.Host}}/mfp/{{.URL}}/psw/{{.Psw}}/manifest.json">Install in Stremio</a></p>
    {{end}}
</body>
</html>
`))

// ConfigHandler serves the configuration form and its save endpoint.
type ConfigHandler struct {
	refresher Refresher
	logger    logger.Logger
}

func NewConfigHandler(refresher Refresher, l logger.Logger) *ConfigHandler {
	return &ConfigHandler{
		refresher: refresher,
		logger:    l,
	}
}

func (h *ConfigHandler) Index(w http.ResponseWriter, r *http.Request) {
	cfg, err := store.LoadProxyConfig()
	if err != nil {
		h.logger.Errorf("Error loading proxy config: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := struct {
		URL  string
		Psw  string
		Host string
	}{cfg.MediaFlowURL, cfg.MediaFlowPsw, r.Host}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		h.logger.Errorf("Error rendering config form: %v", err)
	}
}

// SaveConfig validates and persists the proxy coordinates, then rebuilds
// the catalog. Missing fields are a client error; a failed rebuild is not,
// since the configuration itself was saved.
func (h *ConfigHandler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	cfg := store.ProxyConfig{
		MediaFlowURL: r.PostFormValue("mediaflow_url"),
		MediaFlowPsw: r.PostFormValue("mediaflow_psw"),
	}
	if !cfg.Complete() {
		http.Error(w, "Missing required parameters", http.StatusBadRequest)
		return
	}

	if err := store.SaveProxyConfig(cfg); err != nil {
		h.logger.Errorf("Error saving proxy config: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.refresher.Refresh(r.Context()); err != nil {
		h.logger.Warnf("Catalog refresh after config save failed: %v", err)
	}

	writeJSON(w, h.logger, map[string]any{"success": true})
}
