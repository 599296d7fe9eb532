package httpapi

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/domain"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRecords_ListFiltersAndWindows(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/employees?category=Doctor&search=JANE", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res, list := decode[ListResponse[domain.Employee]](t, rec)
	assert.Equal(t, ResultSuccess, res.Code)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "EMP-003", list.Items[0].ID)

	rec = api.do(t, http.MethodGet, "/api/v1/employees?category=Doctor&first=5&rows=5", nil)
	_, list = decode[ListResponse[domain.Employee]](t, rec)
	assert.Equal(t, 6, list.Total)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Pagination.Page)

	// 默认每页行数取列表配置
	rec = api.do(t, http.MethodGet, "/api/v1/employees", nil)
	_, list = decode[ListResponse[domain.Employee]](t, rec)
	assert.Equal(t, 12, list.Total)
	assert.Len(t, list.Items, 5)

	rec = api.do(t, http.MethodGet, "/api/v1/employees?rows=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecords_ListSortedByName(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/patients?sort=name&rows=10", nil)
	_, list := decode[ListResponse[domain.Patient]](t, rec)
	require.Len(t, list.Items, 5)
	names := make([]string, 0, len(list.Items))
	for _, p := range list.Items {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Aya Mahmoud", "Fatma Hussein", "Hassan Gamal", "John Smith", "Mohamed Ali"}, names)
}

func TestRecords_PatientsHaveNoCategory(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/api/v1/patients?category=Doctor", nil)
	_, list := decode[ListResponse[domain.Patient]](t, rec)
	assert.Equal(t, 0, list.Total)
	assert.Empty(t, list.Items)
}

func TestRecords_CRUD(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/employees", service.EmployeeFields{
		Name: "Dr. Salma Adel", Email: "salma@brite.com", PhoneNumber: "+20 100 000 0000", Role: domain.RoleDoctor,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	_, created := decode[domain.Employee](t, rec)
	assert.Equal(t, domain.EmployeeActive, created.Status)
	assert.Equal(t, 13, api.employees.ListState().View().Total)

	rec = api.do(t, http.MethodGet, "/api/v1/employees/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/v1/employees/"+created.ID, service.EmployeeFields{
		Name: "Dr. Salma Adel", Email: "salma.adel@brite.com", PhoneNumber: "+20 100 000 0000", Role: domain.RoleDoctor,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	_, updated := decode[domain.Employee](t, rec)
	assert.Equal(t, "salma.adel@brite.com", updated.Email)

	rec = api.do(t, http.MethodDelete, "/api/v1/employees/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, api.employees.ListState().View().Total)

	rec = api.do(t, http.MethodDelete, "/api/v1/employees/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	res, _ := decode[any](t, rec)
	assert.Equal(t, ResultError, res.Code)
}

func TestRecords_Errors(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/employees", service.EmployeeFields{Name: "No Email", PhoneNumber: "1", Role: domain.RoleDoctor})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	res, _ := decode[any](t, rec)
	assert.Equal(t, "email is required", res.Message)

	rec = api.do(t, http.MethodPut, "/api/v1/patients/PAT-404", service.PatientFields{Name: "X", Email: "x@example.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPatch, "/api/v1/patients/PAT-001", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/patients/PAT-001/history", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/v1/patients", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "empty body fails validation")
}

func TestRecords_RegisterLocally(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/patients/register", service.PatientFields{Name: "Mai Tarek", Email: "mai@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 6, api.patients.ListState().View().Total)

	rec = api.do(t, http.MethodGet, "/api/v1/patients/create-state", nil)
	_, state := decode[service.CreateState](t, rec)
	assert.Equal(t, service.CreateState{}, state)

	// 员工没有异步创建
	rec = api.do(t, http.MethodPost, "/api/v1/employees/register", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecords_SessionView(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/reservations/view/category", map[string]string{"category": "Confirmed"})
	require.Equal(t, http.StatusOK, rec.Code)
	_, view := decode[ViewResponse[domain.Reservation]](t, rec)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, "Confirmed", view.Criteria.Category)

	rec = api.do(t, http.MethodPost, "/api/v1/reservations/view/select", map[string]string{"id": "RES-1005"})
	_, view = decode[ViewResponse[domain.Reservation]](t, rec)
	require.NotNil(t, view.Selected)
	assert.Equal(t, "Hassan Gamal", view.Selected.Patient.Name)

	// 搜索经防抖，尚未生效
	rec = api.do(t, http.MethodPost, "/api/v1/reservations/view/search", map[string]string{"text": "dental"})
	assert.Equal(t, http.StatusAccepted, rec.Code)
	_, view = decode[ViewResponse[domain.Reservation]](t, rec)
	assert.Equal(t, "", view.Criteria.Search)

	rec = api.do(t, http.MethodPost, "/api/v1/employees/view/page", map[string]int{"first": 5, "rows": 5})
	_, emp := decode[ViewResponse[domain.Employee]](t, rec)
	assert.Equal(t, 1, emp.Pagination.Page)
	assert.Len(t, emp.Items, 5)
	assert.Equal(t, "EMP-006", emp.Items[0].ID)

	rec = api.do(t, http.MethodGet, "/api/v1/employees/view", nil)
	_, emp = decode[ViewResponse[domain.Employee]](t, rec)
	assert.Equal(t, 12, emp.Total)

	rec = api.do(t, http.MethodPost, "/api/v1/employees/view/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecords_Export(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/employees/export?category=Receptionist", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "employees-export.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(EmployeeSheet.Name)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, EmployeeSheet.Headers(), rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, "Receptionist", row[4])
	}
}

func TestGenerateRecordsExport_HeaderOnly(t *testing.T) {
	data, err := GenerateRecordsExport(ReservationSheet, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Reservations"}, f.GetSheetList())
	rows, err := f.GetRows("Reservations")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestYesNo(t *testing.T) {
	yes, no := true, false
	assert.Equal(t, "Yes", yesNo(&yes))
	assert.Equal(t, "No", yesNo(&no))
	assert.Equal(t, "", yesNo(nil))
}
