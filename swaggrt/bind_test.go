package swaggrt

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The types below have the shape of generated code.

type pet struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Tag  *string `json:"tag,omitempty"`
}

type petResponse interface {
	Responder
	isPetResponse()
}

type petOk struct {
	Body pet
}

func (petOk) StatusCode() int     { return 200 }
func (petOk) ContentType() string { return "application/json" }
func (r petOk) Payload() any      { return r.Body }
func (petOk) isPetResponse()      {}

type petCreated struct {
	Meta
	Body pet
}

func (petCreated) StatusCode() int     { return 201 }
func (petCreated) ContentType() string { return "application/json" }
func (r petCreated) Payload() any      { return r.Body }
func (petCreated) isPetResponse()      {}

type petNotFound struct {
	Meta
}

func (petNotFound) StatusCode() int     { return 404 }
func (petNotFound) ContentType() string { return "" }
func (petNotFound) Payload() any        { return nil }
func (petNotFound) isPetResponse()      {}

type petForm struct {
	Body pet
}

func (petForm) StatusCode() int     { return 200 }
func (petForm) ContentType() string { return "application/x-www-form-urlencoded" }
func (r petForm) Payload() any      { return r.Body }
func (petForm) isPetResponse()      {}

type listQuery struct {
	Limit  *int32   `query:"limit"`
	Status []string `query:"status"`
	Owner  string   `query:"owner,required"`
}

func serve(api *API, method, target, contentType, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestBindPathParameter(t *testing.T) {
	t.Parallel()

	api := New()
	Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/pets/{petId}"},
		func(r *Request[None, None]) (petResponse, error) {
			if r.Param("petId") != "42" {
				return petNotFound{}, nil
			}
			return petOk{Body: pet{ID: 42, Name: "rex"}}, nil
		})
	require.NoError(t, api.Err())

	rec := serve(api, "GET", "/pets/42", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":42,"name":"rex"}`, rec.Body.String())

	rec = serve(api, "GET", "/pets/7", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Type"))
	assert.Zero(t, rec.Body.Len())

	rec = serve(api, "GET", "/pets/42/extra", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(api, "DELETE", "/pets/42", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestParamUnknownName(t *testing.T) {
	t.Parallel()

	var got string
	api := New()
	Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/pets/{petId}"},
		func(r *Request[None, None]) (petResponse, error) {
			got = r.Param("other")
			return petNotFound{}, nil
		})

	serve(api, "GET", "/pets/1", "", "")
	assert.Empty(t, got)
}

func TestBindQuery(t *testing.T) {
	t.Parallel()

	var got listQuery
	api := New()
	Bind[listQuery, None, petResponse](api, Route{Method: "GET", Pattern: "/pets"},
		func(r *Request[listQuery, None]) (petResponse, error) {
			got = r.Query
			return petNotFound{}, nil
		})

	rec := serve(api, "GET", "/pets?limit=5&status=a&status=b&owner=sam", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, got.Limit)
	assert.Equal(t, int32(5), *got.Limit)
	assert.Equal(t, []string{"a", "b"}, got.Status)
	assert.Equal(t, "sam", got.Owner)

	rec = serve(api, "GET", "/pets?limit=5", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `missing required query parameter "owner"`, errorMessage(t, rec))

	rec = serve(api, "GET", "/pets?owner=sam&limit=many", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), `invalid query parameter "limit"`)
}

func TestBindJSONBody(t *testing.T) {
	t.Parallel()

	route := Route{Method: "POST", Pattern: "/pets", Body: BodyJSON, BodyRequired: true}
	api := New()
	Bind[None, pet, petResponse](api, route, func(r *Request[None, pet]) (petResponse, error) {
		r.Body.ID = 1
		return petCreated{Body: r.Body}, nil
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantError   string
	}{
		{name: "valid", contentType: "application/json", body: `{"name":"rex","tag":"dog"}`, wantStatus: http.StatusCreated},
		{name: "no content type", body: `{"name":"rex"}`, wantStatus: http.StatusCreated},
		{name: "missing body", contentType: "application/json", wantStatus: http.StatusBadRequest, wantError: "request body is required"},
		{name: "unknown member", contentType: "application/json", body: `{"name":"rex","color":"red"}`, wantStatus: http.StatusBadRequest, wantError: "invalid JSON body"},
		{name: "trailing data", contentType: "application/json", body: `{"name":"rex"} {}`, wantStatus: http.StatusBadRequest, wantError: "invalid JSON body"},
		{name: "wrong media type", contentType: "text/plain", body: `{"name":"rex"}`, wantStatus: http.StatusUnsupportedMediaType, wantError: "is not JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(api, "POST", "/pets", tt.contentType, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Contains(t, errorMessage(t, rec), tt.wantError)
			}
		})
	}

	rec := serve(api, "POST", "/pets", "application/json", `{"name":"rex","tag":"dog"}`)
	assert.JSONEq(t, `{"id":1,"name":"rex","tag":"dog"}`, rec.Body.String())
}

func TestBindOptionalBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		hasBody bool
		want    pet
	}{
		{name: "absent"},
		{name: "present", body: `{"id":3,"name":"rex"}`, hasBody: true, want: pet{ID: 3, Name: "rex"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *Request[None, pet]
			api := New()
			Bind[None, pet, petResponse](api, Route{Method: "PUT", Pattern: "/pets", Body: BodyJSON},
				func(r *Request[None, pet]) (petResponse, error) {
					got = r
					return petNotFound{}, nil
				})

			rec := serve(api, "PUT", "/pets", "application/json", tt.body)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			require.NotNil(t, got)
			assert.Equal(t, tt.hasBody, got.HasBody)
			assert.Equal(t, tt.want, got.Body)
			assert.Equal(t, "PUT", got.Method)
			assert.Equal(t, None{}, got.Query)
		})
	}
}

func TestResponseMeta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		respond    func() petResponse
		wantStatus int
		wantHeader http.Header
		wantCookie []string
	}{
		{
			name: "location and cookie",
			respond: func() petResponse {
				resp := petCreated{Body: pet{ID: 7, Name: "rex"}}
				resp.SetHeader("Location", "/pets/7")
				resp.AddCookie(&http.Cookie{Name: "last", Value: "7", Path: "/"})
				return resp
			},
			wantStatus: http.StatusCreated,
			wantHeader: http.Header{"Location": {"/pets/7"}, "Content-Type": {"application/json"}},
			wantCookie: []string{"last=7; Path=/"},
		},
		{
			name: "repeated header without body",
			respond: func() petResponse {
				resp := petNotFound{Meta: Meta{Header: http.Header{"Vary": {"Accept", "Origin"}}}}
				resp.AddCookie(&http.Cookie{Name: "a", Value: "1"})
				resp.AddCookie(&http.Cookie{Name: "b", Value: "2"})
				return resp
			},
			wantStatus: http.StatusNotFound,
			wantHeader: http.Header{"Vary": {"Accept", "Origin"}},
			wantCookie: []string{"a=1", "b=2"},
		},
		{
			name:       "no meta",
			respond:    func() petResponse { return petOk{Body: pet{ID: 1}} },
			wantStatus: http.StatusOK,
			wantHeader: http.Header{"Content-Type": {"application/json"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := New()
			Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/pets"},
				func(*Request[None, None]) (petResponse, error) { return tt.respond(), nil })

			rec := serve(api, "GET", "/pets", "", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			for key, values := range tt.wantHeader {
				assert.Equal(t, values, rec.Header().Values(key), key)
			}
			assert.Equal(t, tt.wantCookie, rec.Header().Values("Set-Cookie"))
		})
	}
}

func TestBindFormBody(t *testing.T) {
	t.Parallel()

	var got pet
	api := New()
	Bind[None, pet, petResponse](api, Route{Method: "POST", Pattern: "/pets", Body: BodyForm},
		func(r *Request[None, pet]) (petResponse, error) {
			got = r.Body
			return petForm{Body: r.Body}, nil
		})

	rec := serve(api, "POST", "/pets", "application/x-www-form-urlencoded", "id=3&name=rex&tag=dog")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, "rex", got.Name)
	require.NotNil(t, got.Tag)
	assert.Equal(t, "dog", *got.Tag)
	assert.Equal(t, "application/x-www-form-urlencoded", rec.Header().Get("Content-Type"))
	assert.Equal(t, "id=3&name=rex&tag=dog", rec.Body.String())

	rec = serve(api, "POST", "/pets", "application/json", `{"name":"rex"}`)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestBodyTooLarge(t *testing.T) {
	t.Parallel()

	api := New(WithMaxBodySize(8))
	Bind[None, pet, petResponse](api, Route{Method: "POST", Pattern: "/pets", Body: BodyJSON},
		func(r *Request[None, pet]) (petResponse, error) {
			return petCreated{Body: r.Body}, nil
		})

	rec := serve(api, "POST", "/pets", "application/json", `{"name":"a long name"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandlerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		resp       petResponse
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "plain error", err: errors.New("database is down"), wantStatus: 500, wantError: "Internal Server Error"},
		{name: "http error", err: Errorf(http.StatusConflict, "pet exists"), wantStatus: 409, wantError: "pet exists"},
		{name: "wrapped http error", err: &HTTPError{Status: 422, Message: "bad pet", Cause: errors.New("no name")}, wantStatus: 422, wantError: "bad pet: no name"},
		{name: "nil response", wantStatus: 500, wantError: "handler returned no response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := New()
			Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/pets"},
				func(*Request[None, None]) (petResponse, error) {
					return tt.resp, tt.err
				})

			rec := serve(api, "GET", "/pets", "", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, errorMessage(t, rec))
		})
	}
}

func TestCustomErrorHandler(t *testing.T) {
	t.Parallel()

	api := New(WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(err.Error()))
	}))
	Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/pets"},
		func(*Request[None, None]) (petResponse, error) {
			return nil, errors.New("boom")
		})

	rec := serve(api, "GET", "/pets", "", "")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "boom", rec.Body.String())
}

func TestRegistrationErrors(t *testing.T) {
	t.Parallel()

	ok := func(*Request[None, None]) (petResponse, error) { return petNotFound{}, nil }

	api := New()
	Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/pets/x{id}"}, ok)
	Bind[None, None, petResponse](api, Route{Pattern: "/pets"}, ok)
	Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/pets"}, nil)
	Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/owners"}, ok)
	Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/owners"}, ok)

	err := api.Err()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "bind GET /pets/x{id}: path segment")
	assert.Contains(t, msg, "missing method")
	assert.Contains(t, msg, "nil handler")
	assert.Contains(t, msg, "register GET /owners")

	rec := serve(api, "GET", "/owners", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTranslatePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tmpl       string
		want       string
		wantParams []string
		wantErr    bool
	}{
		{tmpl: "/pets", want: "/pets"},
		{tmpl: "/pets/{petId}/tags/{tag}", want: "/pets/{p0}/tags/{p1}", wantParams: []string{"petId", "tag"}},
		{tmpl: "/files/{file-name}", want: "/files/{p0}", wantParams: []string{"file-name"}},
		{tmpl: "/", want: "/{$}"},
		{tmpl: "/pets/", want: "/pets/{$}"},
		{tmpl: "pets", wantErr: true},
		{tmpl: "/pets/{a}{b}", wantErr: true},
		{tmpl: "/pets/{}", wantErr: true},
		{tmpl: "/pets/{id}/{id}", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			got, params, err := translatePattern(tt.tmpl)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	type entry struct {
		method, pattern string
		status          int
	}
	var got []entry
	api := New(WithRequestLogger(func(method, pattern string, status int, _ time.Duration) {
		got = append(got, entry{method, pattern, status})
	}))
	Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/pets/{petId}"},
		func(*Request[None, None]) (petResponse, error) {
			return petNotFound{}, nil
		})

	serve(api, "GET", "/pets/1", "", "")
	assert.Equal(t, []entry{{"GET", "/pets/{petId}", 404}}, got)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	api := New(WithRequestID(RequestIDConfig{TrustIncoming: true}))
	Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/pets"},
		func(r *Request[None, None]) (petResponse, error) {
			seen = RequestIDFromContext(r.Context())
			return petNotFound{}, nil
		})

	rec := serve(api, "GET", "/pets", "", "")
	id := rec.Header().Get(DefaultRequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, seen)

	req := httptest.NewRequest("GET", "/pets", nil)
	req.Header.Set(DefaultRequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(DefaultRequestIDHeader))
	assert.Equal(t, "abc", seen)
}

func TestRequestIDCustomGenerator(t *testing.T) {
	t.Parallel()

	h := RequestIDMiddleware(RequestIDConfig{
		Header:   "X-Trace",
		Generate: func(*http.Request) string { return "fixed" },
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fixed", RequestIDFromContext(r.Context()))
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace", "ignored")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "fixed", rec.Header().Get("X-Trace"))
	assert.Empty(t, RequestIDFromContext(req.Context()))
}

func TestNewUUIDv7IsOrdered(t *testing.T) {
	t.Parallel()

	a := NewUUIDv7(nil)
	time.Sleep(2 * time.Millisecond)
	b := NewUUIDv7(nil)
	assert.Less(t, a, b)
}

func TestMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	api := New(WithMiddleware(mw("outer"), mw("inner")))
	Bind[None, None, petResponse](api, Route{Method: "GET", Pattern: "/pets"},
		func(*Request[None, None]) (petResponse, error) {
			order = append(order, "handler")
			return petNotFound{}, nil
		})

	serve(api, "GET", "/pets", "", "")
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
