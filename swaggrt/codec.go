package swaggrt

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-json-experiment/json"
	"github.com/swagg-dev/swagg/internal/httputil"
)

// decodeBody reads the request body into dst. It reports false, without
// error, when the body is empty. Unknown JSON members are rejected.
func decodeBody(r *http.Request, kind BodyKind, limit int64, dst any) (bool, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return false, nil
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return false, &HTTPError{Status: http.StatusBadRequest, Message: "cannot read request body", Cause: err}
	}
	if int64(len(data)) > limit {
		return false, Errorf(http.StatusRequestEntityTooLarge, "request body exceeds %d bytes", limit)
	}
	if len(data) == 0 {
		return false, nil
	}

	ct := r.Header.Get("Content-Type")
	switch kind {
	case BodyJSON:
		if ct != "" && httputil.ClassifyMediaType(ct) != httputil.MediaJSON {
			return false, Errorf(http.StatusUnsupportedMediaType, "content type %q is not JSON", ct)
		}
		if err := json.Unmarshal(data, dst, json.RejectUnknownMembers(true)); err != nil {
			return false, &HTTPError{Status: http.StatusBadRequest, Message: "invalid JSON body", Cause: err}
		}
	case BodyForm:
		if httputil.ClassifyMediaType(ct) != httputil.MediaForm {
			return false, Errorf(http.StatusUnsupportedMediaType, "content type %q is not a form", ct)
		}
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return false, &HTTPError{Status: http.StatusBadRequest, Message: "invalid form body", Cause: err}
		}
		if err := decodeValues(values, dst, "json", "form field"); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unknown body kind %d", kind)
	}
	return true, nil
}

// WriteResponse writes resp: its headers and cookies when it is a
// MetaCarrier, its status, and its payload encoded for its content type. A
// nil payload or empty content type writes no body.
func WriteResponse(w http.ResponseWriter, resp Responder) error {
	status, ct, payload := resp.StatusCode(), resp.ContentType(), resp.Payload()
	if mc, ok := resp.(MetaCarrier); ok {
		meta := mc.ResponseMeta()
		for key, values := range meta.Header {
			for _, v := range values {
				w.Header().Add(key, v)
			}
		}
		for _, c := range meta.Cookies {
			http.SetCookie(w, c)
		}
	}
	if payload == nil || ct == "" {
		w.WriteHeader(status)
		return nil
	}

	var (
		data []byte
		err  error
	)
	if httputil.ClassifyMediaType(ct) == httputil.MediaForm {
		var values url.Values
		values, err = encodeValues(payload, "json")
		data = []byte(values.Encode())
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("encode %d response: %w", status, err)
	}

	w.Header().Set("Content-Type", ct)
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}
