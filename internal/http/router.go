package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterRecordRoutes 注册 /api/v1/{collection} 及其子路径
func (r *Router) RegisterRecordRoutes(h RecordRoutes) {
	base := "/api/v1/" + h.Collection()
	r.HandleHandler(base, h)
	r.HandleHandler(base+"/", h)
}

// RegisterPreferenceRoutes 偏好与语言
func (r *Router) RegisterPreferenceRoutes(h *PreferenceHandler) {
	r.Handle("/api/v1/preferences", h.Preferences)
	r.Handle("/api/v1/preferences/sidebar", h.Sidebar)
	r.Handle("/api/v1/preferences/sidebar/toggle", h.ToggleSidebar)
	r.Handle("/api/v1/preferences/language", h.Language)
}

// RegisterDoctorRoutes 健康 / 就绪检查
func (r *Router) RegisterDoctorRoutes(doctor *DoctorHandler) {
	r.Handle("/health", doctor.HealthCheck)
	r.Handle("/healthz", doctor.HealthCheck)
	r.Handle("/ready", doctor.Ready)
	r.Handle("/readyz", doctor.Ready)
}
