package swaggrt

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// BodyKind is the encoding of a request body.
type BodyKind int

const (
	// BodyNone means the operation takes no body.
	BodyNone BodyKind = iota
	// BodyJSON is an application/json body.
	BodyJSON
	// BodyForm is an application/x-www-form-urlencoded body.
	BodyForm
)

// Route is what a generated bind method registers.
type Route struct {
	// Method is the upper-case HTTP method.
	Method string
	// Pattern is the OpenAPI path template, e.g. "/pets/{petId}".
	Pattern      string
	Body         BodyKind
	BodyRequired bool
}

// None stands for an absent query struct or body in a Handler.
type None struct{}

// Responder is implemented by every generated response variant.
type Responder interface {
	StatusCode() int
	// ContentType is "" when the response has no body.
	ContentType() string
	Payload() any
}

// Meta holds the headers and cookies of a response. Generated response
// variants embed it:
//
//	resp := CreatePetResponseCreated{Body: pet}
//	resp.SetHeader("Location", "/pets/"+pet.ID)
//	resp.AddCookie(&http.Cookie{Name: "last", Value: pet.ID})
//	return resp, nil
type Meta struct {
	Header  http.Header
	Cookies []*http.Cookie
}

// SetHeader sets the response header key to value.
func (m *Meta) SetHeader(key, value string) {
	if m.Header == nil {
		m.Header = make(http.Header)
	}
	m.Header.Set(key, value)
}

// AddCookie adds a Set-Cookie header for c.
func (m *Meta) AddCookie(c *http.Cookie) { m.Cookies = append(m.Cookies, c) }

// ResponseMeta returns m.
func (m Meta) ResponseMeta() Meta { return m }

// MetaCarrier is implemented by responses with headers or cookies,
// usually by embedding Meta.
type MetaCarrier interface {
	ResponseMeta() Meta
}

// Request is the decoded request passed to a Handler.
type Request[Q, B any] struct {
	*http.Request
	Query Q
	Body  B
	// HasBody is false when the client sent no body.
	HasBody bool

	params []string
}

// Param returns the value of the path parameter name, "" when the route
// has no such parameter.
func (r *Request[Q, B]) Param(name string) string {
	for i, p := range r.params {
		if p == name {
			return r.PathValue(wildcard(i))
		}
	}
	return ""
}

// Handler serves one operation. Returning an error makes the API answer
// through its ErrorHandler; return an *HTTPError to pick the status.
type Handler[Q, B any, R Responder] func(*Request[Q, B]) (R, error)

// Bind registers h for route on api. Registration failures are collected
// and reported by api.Err.
func Bind[Q, B any, R Responder](api *API, route Route, h Handler[Q, B, R]) {
	where := route.Method + " " + route.Pattern
	if h == nil {
		api.fail(fmt.Errorf("bind %s: nil handler", where))
		return
	}
	if route.Method == "" {
		api.fail(fmt.Errorf("bind %s: missing method", where))
		return
	}
	pattern, params, err := translatePattern(route.Pattern)
	if err != nil {
		api.fail(fmt.Errorf("bind %s: %w", where, err))
		return
	}
	_, noQuery := any(new(Q)).(*None)
	_, noBody := any(new(B)).(*None)

	api.handle(route.Method+" "+pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		if api.cfg.requestLogger != nil {
			defer func() {
				api.cfg.requestLogger(r.Method, route.Pattern, rec.status, time.Since(start))
			}()
		}

		req := &Request[Q, B]{Request: r, params: params}
		if !noQuery {
			if err := DecodeQuery(r.URL.Query(), &req.Query); err != nil {
				api.cfg.errorHandler(rec, r, err)
				return
			}
		}
		if !noBody && route.Body != BodyNone {
			present, err := decodeBody(r, route.Body, api.cfg.maxBodySize, &req.Body)
			if err == nil && !present && route.BodyRequired {
				err = Errorf(http.StatusBadRequest, "request body is required")
			}
			if err != nil {
				api.cfg.errorHandler(rec, r, err)
				return
			}
			req.HasBody = present
		}

		resp, err := h(req)
		if err != nil {
			api.cfg.logger.Debug("handler failed", "route", where, "error", err)
			api.cfg.errorHandler(rec, r, err)
			return
		}
		if any(resp) == nil {
			api.cfg.errorHandler(rec, r, Errorf(http.StatusInternalServerError, "handler returned no response"))
			return
		}
		if err := WriteResponse(rec, resp); err != nil {
			api.cfg.logger.Error("write response failed", "route", where, "error", err)
		}
	}))
}

func wildcard(i int) string {
	return "p" + strconv.Itoa(i)
}

// translatePattern turns an OpenAPI path template into a ServeMux pattern.
// Parameters are renamed p0, p1, ... because ServeMux only accepts Go
// identifiers as wildcard names; the original names are returned in order.
func translatePattern(tmpl string) (string, []string, error) {
	if !strings.HasPrefix(tmpl, "/") {
		return "", nil, fmt.Errorf("path %q must start with /", tmpl)
	}
	var (
		params []string
		seen   = make(map[string]bool)
	)
	segments := strings.Split(tmpl[1:], "/")
	for i, seg := range segments {
		if !strings.ContainsAny(seg, "{}") {
			continue
		}
		if len(seg) < 3 || seg[0] != '{' || seg[len(seg)-1] != '}' || strings.ContainsAny(seg[1:len(seg)-1], "{}") {
			return "", nil, fmt.Errorf("path segment %q: parameters must span a whole segment", seg)
		}
		name := seg[1 : len(seg)-1]
		if seen[name] {
			return "", nil, fmt.Errorf("path parameter %q appears twice", name)
		}
		seen[name] = true
		segments[i] = "{" + wildcard(len(params)) + "}"
		params = append(params, name)
	}
	pattern := "/" + strings.Join(segments, "/")
	if strings.HasSuffix(pattern, "/") {
		pattern += "{$}"
	}
	return pattern, params, nil
}
