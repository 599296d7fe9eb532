package httpapi

import (
	"net/http"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/service"

	"go.uber.org/zap"
)

// PreferenceHandler 侧边栏 / 语言偏好
type PreferenceHandler struct {
	prefs  *service.PreferenceService
	lang   *service.LanguageService
	logger *zap.Logger
}

func NewPreferenceHandler(prefs *service.PreferenceService, lang *service.LanguageService, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs, lang: lang, logger: logger}
}

// PreferencesResponse 当前偏好
type PreferencesResponse struct {
	SidebarCollapsed   bool     `json:"sidebarCollapsed"`
	Language           string   `json:"language"`
	Dir                string   `json:"dir"`
	Degraded           bool     `json:"degraded"`
	SupportedLanguages []string `json:"supportedLanguages"`
}

func (h *PreferenceHandler) snapshot(r *http.Request) PreferencesResponse {
	return PreferencesResponse{
		SidebarCollapsed:   h.prefs.SidebarCollapsed(r.Context()),
		Language:           h.lang.Current(),
		Dir:                h.lang.Dir(),
		Degraded:           h.prefs.Degraded(),
		SupportedLanguages: service.SupportedLanguages(),
	}
}

// Preferences GET 读取；DELETE 恢复默认值
func (h *PreferenceHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodDelete:
		h.prefs.Reset(r.Context())
	default:
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.snapshot(r)))
}

// Sidebar PUT {"collapsed": bool}
func (h *PreferenceHandler) Sidebar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Collapsed *bool `json:"collapsed"`
	}
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil || req.Collapsed == nil {
		writeJSON(w, http.StatusBadRequest, Fail("collapsed is required"))
		return
	}
	h.prefs.SetSidebarCollapsed(r.Context(), *req.Collapsed)
	writeJSON(w, http.StatusOK, Ok(h.snapshot(r)))
}

// ToggleSidebar POST
func (h *PreferenceHandler) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	h.prefs.ToggleSidebar(r.Context())
	writeJSON(w, http.StatusOK, Ok(h.snapshot(r)))
}

// LanguageResponse changed=false 表示语言未变（相同或不支持）
type LanguageResponse struct {
	Changed  bool   `json:"changed"`
	Language string `json:"language"`
	Dir      string `json:"dir"`
}

// Language PUT {"language": "ar"}
func (h *PreferenceHandler) Language(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Language string `json:"language"`
	}
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	changed := h.lang.SetLanguage(r.Context(), req.Language)
	writeJSON(w, http.StatusOK, Ok(LanguageResponse{
		Changed:  changed,
		Language: h.lang.Current(),
		Dir:      h.lang.Dir(),
	}))
}
