package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/filter"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/models"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/service"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// RecordRoutes 可挂载到 /api/v1/{collection} 的处理器
type RecordRoutes interface {
	http.Handler
	Collection() string
}

type listRecord interface {
	filter.Record
	filter.Named
}

// RecordService 单个集合的增删改查 + 列表状态
type RecordService[T listRecord, F any] interface {
	Collection() string
	Create(ctx context.Context, fields F) (*T, error)
	Update(ctx context.Context, id string, fields F) (*T, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (T, error)
	Records(ctx context.Context) ([]T, error)
	ListState() *filter.ListState[T]
}

// Registrar 支持通过记录 API 异步创建的集合
type Registrar[T any, F any] interface {
	Register(ctx context.Context, fields F) (*T, error)
	CreateState() service.CreateState
}

// RecordsHandler /api/v1/{collection} 下的全部路由
type RecordsHandler[T listRecord, F any] struct {
	svc       RecordService[T, F]
	registrar Registrar[T, F]
	sheet     ExportSheet[T]
	language  func() string
	logger    *zap.Logger
}

// NewRecordsHandler currentLanguage 返回当前界面语言，用于按姓名排序
func NewRecordsHandler[T listRecord, F any](svc RecordService[T, F], sheet ExportSheet[T], currentLanguage func() string, logger *zap.Logger) *RecordsHandler[T, F] {
	if currentLanguage == nil {
		currentLanguage = func() string { return service.DefaultLanguage }
	}
	return &RecordsHandler[T, F]{svc: svc, sheet: sheet, language: currentLanguage, logger: logger}
}

// WithRegistrar 启用 POST /register 与 GET /create-state
func (h *RecordsHandler[T, F]) WithRegistrar(reg Registrar[T, F]) *RecordsHandler[T, F] {
	h.registrar = reg
	return h
}

func (h *RecordsHandler[T, F]) Collection() string { return h.svc.Collection() }

// ListResponse 列表响应：items 为当前窗口，total 为过滤后的总数
type ListResponse[T any] struct {
	Items      []T                    `json:"items"`
	Total      int                    `json:"total"`
	Pagination models.PaginationEvent `json:"pagination"`
}

// ViewResponse 会话列表状态
type ViewResponse[T any] struct {
	Items      []T                    `json:"items"`
	Total      int                    `json:"total"`
	Criteria   filter.Criteria        `json:"criteria"`
	Pagination models.PaginationEvent `json:"pagination"`
	Selected   *T                     `json:"selected"`
}

func (h *RecordsHandler[T, F]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	base := "/api/v1/" + h.Collection()
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, base), "/")

	switch {
	case rest == "":
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			methodNotAllowed(w)
		}
	case rest == "export":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.export(w, r)
	case rest == "register" && h.registrar != nil:
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.register(w, r)
	case rest == "create-state" && h.registrar != nil:
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		writeJSON(w, http.StatusOK, Ok(h.registrar.CreateState()))
	case rest == "view":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		writeJSON(w, http.StatusOK, Ok(h.viewResponse()))
	case strings.HasPrefix(rest, "view/"):
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.viewEvent(w, r, strings.TrimPrefix(rest, "view/"))
	case !strings.Contains(rest, "/"):
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, rest)
		case http.MethodPut:
			h.update(w, r, rest)
		case http.MethodDelete:
			h.delete(w, r, rest)
		default:
			methodNotAllowed(w)
		}
	default:
		writeJSON(w, http.StatusNotFound, Fail("not found"))
	}
}

// filtered 无状态过滤：search / category / sort=name
func (h *RecordsHandler[T, F]) filtered(r *http.Request) ([]T, int, error) {
	records, err := h.svc.Records(r.Context())
	if err != nil {
		return nil, 0, err
	}
	q := r.URL.Query()
	items, total := filter.Apply(filter.Criteria{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}, records)
	if q.Get("sort") == "name" {
		items = filter.SortByName(items, language.Make(h.language()))
	}
	return items, total, nil
}

func (h *RecordsHandler[T, F]) list(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.filtered(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	q := r.URL.Query()
	rows := parseInt(q.Get("rows"), h.svc.ListState().Criteria().PageSize)
	first := parseInt(q.Get("first"), 0)
	if rows <= 0 || first < 0 {
		writeJSON(w, http.StatusBadRequest, Fail("first must be >= 0 and rows > 0"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(ListResponse[T]{
		Items:      filter.Window(items, first, rows),
		Total:      total,
		Pagination: models.NewPaginationEvent(first, rows, 0),
	}))
}

func (h *RecordsHandler[T, F]) export(w http.ResponseWriter, r *http.Request) {
	items, _, err := h.filtered(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	data, err := GenerateRecordsExport(h.sheet, items)
	if err != nil {
		h.logger.Error("Failed to generate export", zap.String("collection", h.Collection()), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-export.xlsx", h.Collection()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *RecordsHandler[T, F]) create(w http.ResponseWriter, r *http.Request) {
	var fields F
	if err := readBodyJSON(r, maxBodyBytes, &fields); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	rec, err := h.svc.Create(r.Context(), fields)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(rec))
}

func (h *RecordsHandler[T, F]) register(w http.ResponseWriter, r *http.Request) {
	var fields F
	if err := readBodyJSON(r, maxBodyBytes, &fields); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	rec, err := h.registrar.Register(r.Context(), fields)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(rec))
}

func (h *RecordsHandler[T, F]) get(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Ok(rec))
}

func (h *RecordsHandler[T, F]) update(w http.ResponseWriter, r *http.Request, id string) {
	var fields F
	if err := readBodyJSON(r, maxBodyBytes, &fields); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	rec, err := h.svc.Update(r.Context(), id, fields)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Ok(rec))
}

func (h *RecordsHandler[T, F]) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"id": id}))
}

type viewEventRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	First    int    `json:"first"`
	Rows     int    `json:"rows"`
	Page     int    `json:"page"`
	ID       string `json:"id"`
}

// viewEvent 会话列表事件：search 经防抖后生效（返回 202），其余立即生效
func (h *RecordsHandler[T, F]) viewEvent(w http.ResponseWriter, r *http.Request, event string) {
	var req viewEventRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	ls := h.svc.ListState()
	status := http.StatusOK
	switch event {
	case "search":
		ls.OnSearchInput(req.Text)
		status = http.StatusAccepted
	case "category":
		ls.OnCategoryChange(req.Category)
	case "page":
		if req.First < 0 {
			writeJSON(w, http.StatusBadRequest, Fail("first must be >= 0"))
			return
		}
		ls.OnPageChange(req.First, req.Rows, req.Page)
	case "select":
		ls.Select(req.ID)
	default:
		writeJSON(w, http.StatusNotFound, Fail("unknown view event"))
		return
	}
	writeJSON(w, status, Ok(h.viewResponse()))
}

func (h *RecordsHandler[T, F]) viewResponse() ViewResponse[T] {
	ls := h.svc.ListState()
	view := ls.View()
	resp := ViewResponse[T]{
		Items:      ls.Page(),
		Total:      view.Total,
		Criteria:   ls.Criteria(),
		Pagination: ls.PaginationSignal().Get(),
	}
	if sel, ok := ls.Selected(); ok {
		resp.Selected = &sel
	}
	return resp
}
