package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/vaccine-tracker/internal/config"
	"github.com/deppfellow/vaccine-tracker/internal/errs"
	"github.com/deppfellow/vaccine-tracker/internal/handler"
	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/deppfellow/vaccine-tracker/internal/repository/memstore"
	"github.com/deppfellow/vaccine-tracker/internal/router"
	"github.com/deppfellow/vaccine-tracker/internal/server"
	"github.com/deppfellow/vaccine-tracker/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t *testing.T
	e *echo.Echo
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "development"},
			Server:        config.ServerConfig{Port: "8080"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}

	store := memstore.New()
	services := service.New(store.Patients(), store.Vaccines(), store.Doses())

	return &testAPI{t: t, e: router.NewRouter(s, handler.NewHandlers(s, services))}
}

func (a *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	a.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *testAPI) createPatient(name, lastName string) model.Patient {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/patients", `{"name":"`+name+`","last_name":"`+lastName+`"}`)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Patient](a.t, rec)
}

func TestPatientLifecycle(t *testing.T) {
	api := newTestAPI(t)

	created := api.createPatient("Ana", "Silva")
	assert.Positive(t, created.ID)

	rec := api.do(http.MethodGet, "/patients/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[model.Patient](t, rec))

	rec = api.do(http.MethodPut, "/patients", `{"id":1,"name":"Ana","last_name":"Souza"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Souza", decode[model.Patient](t, rec).LastName)

	rec = api.do(http.MethodGet, "/patients", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]model.Patient](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)

	rec = api.do(http.MethodDelete, "/patients?id=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.DeleteResponse{Message: "Patient deleted"}, decode[model.DeleteResponse](t, rec))

	rec = api.do(http.MethodGet, "/patients/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "PATIENT_NOT_FOUND", body.Code)
	assert.Equal(t, "Patient does not exist", body.Message)
}

func TestEmptyListsAreArrays(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/patients", "/vaccines", "/doses"} {
		rec := api.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
	}
}

func TestCompositeReadScenario(t *testing.T) {
	api := newTestAPI(t)

	patient := api.createPatient("Ana", "Silva")

	rec := api.do(http.MethodPost, "/vaccines",
		`{"vaccine_name":"Covid","dose_number":1,"vaccine_type":"first","patient_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	vaccine := decode[model.Vaccine](t, rec)
	assert.False(t, vaccine.DoseDate.IsZero())

	rec = api.do(http.MethodPost, "/doses",
		`{"type_dose":"first","dose_number":1,"application_type":"intramuscular","vaccine_id":1,"dose_date":"2024-03-01T10:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	dose := decode[model.Dose](t, rec)
	assert.Equal(t, "2024-03-01T10:00:00Z", dose.DoseDate.UTC().Format("2006-01-02T15:04:05Z07:00"))

	for _, path := range []string{"/patientsAndVaccinesAndDoses/1", "/pacientsAndVaccinesAndDoses/1"} {
		rec = api.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)

		composite := decode[model.PatientWithVaccines](t, rec)
		assert.Equal(t, patient, composite.Patient)
		require.Len(t, composite.Vaccines, 1)
		assert.Equal(t, "Covid", composite.Vaccines[0].VaccineName)
		require.Len(t, composite.Vaccines[0].Doses, 1)
		assert.Equal(t, dose.ID, composite.Vaccines[0].Doses[0].ID)
	}

	rec = api.do(http.MethodGet, "/vaccinesAndDoses/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	withDoses := decode[model.VaccineWithDoses](t, rec)
	assert.Equal(t, vaccine.ID, withDoses.ID)
	require.Len(t, withDoses.Doses, 1)
}

func TestCompositeReadWithoutChildren(t *testing.T) {
	api := newTestAPI(t)
	api.createPatient("Ana", "Silva")

	rec := api.do(http.MethodGet, "/patientsAndVaccinesAndDoses/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.JSONEq(t, `[]`, string(raw["vaccines"]))
	assert.JSONEq(t, `"Ana"`, string(raw["name"]))
}

func TestDeletePatientCascades(t *testing.T) {
	api := newTestAPI(t)
	api.createPatient("Ana", "Silva")

	rec := api.do(http.MethodPost, "/vaccines", `{"vaccine_name":"Covid","dose_number":1,"vaccine_type":"first","patient_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = api.do(http.MethodPost, "/doses", `{"type_dose":"first","dose_number":1,"application_type":"oral","vaccine_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodDelete, "/patients", `{"id":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/vaccinesAndDoses/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "VACCINE_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)

	rec = api.do(http.MethodGet, "/doses/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "DOSE_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)
}

func TestUpdateVaccineKeepsDoseDate(t *testing.T) {
	api := newTestAPI(t)
	api.createPatient("Ana", "Silva")

	rec := api.do(http.MethodPost, "/vaccines",
		`{"vaccine_name":"Covid","dose_number":1,"vaccine_type":"first","patient_id":1,"dose_date":"2024-01-15T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.Vaccine](t, rec)

	rec = api.do(http.MethodPut, "/vaccines",
		`{"id":1,"vaccine_name":"Covid","dose_number":2,"vaccine_type":"booster","patient_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/vaccines/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[model.Vaccine](t, rec)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, created.DoseDate.Equal(got.DoseDate))
	assert.Equal(t, int32(2), got.DoseNumber)
	assert.Equal(t, "booster", got.VaccineType)
}

func TestForeignKeyViolationIsBadRequest(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/vaccines", `{"vaccine_name":"Covid","dose_number":1,"vaccine_type":"first","patient_id":42}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "PATIENT_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)

	rec = api.do(http.MethodPost, "/doses", `{"type_dose":"first","dose_number":1,"application_type":"oral","vaccine_id":42}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "VACCINE_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)
}

func TestBadInput(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"non-integer path id", http.MethodGet, "/patients/abc", ""},
		{"zero path id", http.MethodGet, "/vaccines/0", ""},
		{"malformed json", http.MethodPost, "/patients", `{"name":`},
		{"update without id", http.MethodPut, "/doses", `{"type_dose":"first"}`},
		{"delete without id", http.MethodDelete, "/patients", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(tc.method, tc.target, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateAndUpdateFromQueryParams(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/patients?name=Ana&last_name=Silva", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, model.Patient{ID: 1, Name: "Ana", LastName: "Silva"}, decode[model.Patient](t, rec))

	rec = api.do(http.MethodPost, "/vaccines?vaccine_name=Covid&dose_number=1&vaccine_type=first&patient_id=1", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	vaccine := decode[model.Vaccine](t, rec)
	assert.Equal(t, "Covid", vaccine.VaccineName)
	assert.Equal(t, int32(1), vaccine.DoseNumber)
	assert.Equal(t, int64(1), vaccine.PatientID)

	rec = api.do(http.MethodPut, "/patients?id=1&name=Ana&last_name=Souza", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Souza", decode[model.Patient](t, rec).LastName)
}

func TestJSONBodyOverridesQueryParams(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/patients?name=Query&last_name=Silva", `{"name":"Body"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[model.Patient](t, rec)
	assert.Equal(t, "Body", created.Name)
	assert.Equal(t, "Silva", created.LastName)
}

func TestBindErrorsNameTheField(t *testing.T) {
	api := newTestAPI(t)
	api.createPatient("Ana", "Silva")

	cases := []struct {
		name   string
		method string
		target string
		body   string
		field  string
	}{
		{"path id", http.MethodGet, "/patients/abc", "", "id"},
		{"query id", http.MethodDelete, "/vaccines?id=abc", "", "id"},
		{"body id as string", http.MethodPost, "/vaccines", `{"vaccine_name":"Covid","patient_id":"1"}`, "patient_id"},
		{"dose number overflow", http.MethodPost, "/vaccines", `{"vaccine_name":"Covid","dose_number":3000000000,"patient_id":1}`, "dose_number"},
		{"query dose number overflow", http.MethodPost, "/doses?dose_number=3000000000", "", "dose_number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(tc.method, tc.target, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := decode[errs.HTTPError](t, rec)
			assert.Equal(t, "invalid value for "+tc.field, body.Message)
			assert.Equal(t, []errs.FieldError{{Field: tc.field, Error: "must be a valid integer"}}, body.Errors)
		})
	}
}

func TestNotFoundOnEveryEntity(t *testing.T) {
	api := newTestAPI(t)

	cases := map[string]string{
		"/patients/9":                    "PATIENT_NOT_FOUND",
		"/vaccines/9":                    "VACCINE_NOT_FOUND",
		"/doses/9":                       "DOSE_NOT_FOUND",
		"/patientsAndVaccinesAndDoses/9": "PATIENT_NOT_FOUND",
		"/vaccinesAndDoses/9":            "VACCINE_NOT_FOUND",
	}

	for path, code := range cases {
		rec := api.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, code, decode[errs.HTTPError](t, rec).Code, path)
	}

	rec := api.do(http.MethodPut, "/patients", `{"id":9,"name":"x","last_name":"y"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = api.do(http.MethodDelete, "/doses?id=9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUniqueIDs(t *testing.T) {
	api := newTestAPI(t)

	seen := map[int64]bool{}
	for range 5 {
		p := api.createPatient("Ana", "Silva")
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}

func TestStatusAndUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = api.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)
}
