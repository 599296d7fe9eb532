package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/domain"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/filter"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/repository"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/seed"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/service"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testAPI struct {
	router       *Router
	employees    *service.EmployeeService
	patients     *service.PatientService
	reservations *service.ReservationService
	prefs        *service.PreferenceService
	lang         *service.LanguageService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()
	data, err := seed.Load()
	require.NoError(t, err)

	opts := filter.ListOptions{Debounce: time.Hour, PageSize: 5}
	employees, err := service.NewEmployeeService(ctx, repository.NewMemoryRecordsRepo(data.Employees), opts, nil, logger)
	require.NoError(t, err)
	patients, err := service.NewPatientService(ctx, repository.NewMemoryRecordsRepo(data.Patients), nil, opts, nil, logger)
	require.NoError(t, err)
	reservations, err := service.NewReservationService(ctx, repository.NewMemoryRecordsRepo(data.Reservations), nil, opts, nil, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		employees.Close()
		patients.Close()
		reservations.Close()
	})

	prefs := service.NewPreferenceService(ctx, store.NewMemoryKV(), "", logger)
	lang := service.NewLanguageService(ctx, prefs, logger)

	router := NewRouter(logger)
	router.RegisterRecordRoutes(NewRecordsHandler[domain.Employee, service.EmployeeFields](employees, EmployeeSheet, lang.Current, logger))
	router.RegisterRecordRoutes(NewRecordsHandler[domain.Patient, service.PatientFields](patients, PatientSheet, lang.Current, logger).WithRegistrar(patients))
	router.RegisterRecordRoutes(NewRecordsHandler[domain.Reservation, service.ReservationFields](reservations, ReservationSheet, lang.Current, logger).WithRegistrar(reservations))
	router.RegisterPreferenceRoutes(NewPreferenceHandler(prefs, lang, logger))
	router.RegisterDoctorRoutes(NewDoctorHandler("clinic-data", "test", logger))

	return &testAPI{
		router:       router,
		employees:    employees,
		patients:     patients,
		reservations: reservations,
		prefs:        prefs,
		lang:         lang,
	}
}

func (a *testAPI) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// decode 解析 Result 包装，返回 result 字段
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) (Result[T], T) {
	t.Helper()
	var res Result[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res, res.Result
}
