package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"
)

// HealthCheck 依赖检查函数（Redis Ping、DB Ping 等）
type HealthCheck func(ctx context.Context) error

// DoctorHandler 诊断处理器
type DoctorHandler struct {
	app      string
	version  string
	required map[string]HealthCheck
	optional map[string]HealthCheck
	logger   *zap.Logger
}

// NewDoctorHandler 创建诊断处理器
func NewDoctorHandler(app, version string, logger *zap.Logger) *DoctorHandler {
	return &DoctorHandler{
		app:      app,
		version:  version,
		required: map[string]HealthCheck{},
		optional: map[string]HealthCheck{},
		logger:   logger,
	}
}

// Require 就绪检查必须通过的依赖
func (d *DoctorHandler) Require(name string, check HealthCheck) *DoctorHandler {
	d.required[name] = check
	return d
}

// Observe 只在健康检查中报告的依赖（例如事件后端，失败不影响就绪）
func (d *DoctorHandler) Observe(name string, check HealthCheck) *DoctorHandler {
	d.optional[name] = check
	return d
}

// HealthCheckResponse 健康检查响应
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	App       string            `json:"app"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck 健康检查端点
func (d *DoctorHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "healthy"
	services := make(map[string]string)
	for _, name := range sortedNames(d.required) {
		if err := d.run(r.Context(), d.required[name], 2*time.Second); err != nil {
			status = "unhealthy"
			services[name] = "unhealthy: " + err.Error()
		} else {
			services[name] = "healthy"
		}
	}
	for _, name := range sortedNames(d.optional) {
		if err := d.run(r.Context(), d.optional[name], 2*time.Second); err != nil {
			services[name] = "degraded: " + err.Error()
		} else {
			services[name] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
		d.logger.Warn("Health check failed", zap.Any("services", services))
	}
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(HealthCheckResponse{
		Status:    status,
		App:       d.app,
		Version:   d.version,
		Timestamp: time.Now(),
		Services:  services,
	})
}

// Ready 就绪检查（用于 Kubernetes readiness probes）
func (d *DoctorHandler) Ready(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ready := true
	checks := make(map[string]bool)
	for name, check := range d.required {
		checks[name] = d.run(r.Context(), check, time.Second) == nil
		if !checks[name] {
			ready = false
		}
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":  ready,
		"checks": checks,
	})
}

func (d *DoctorHandler) run(ctx context.Context, check HealthCheck, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return check(ctx)
}

func sortedNames(m map[string]HealthCheck) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
