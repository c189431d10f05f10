package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	maxJSONBytes      = 10 << 20
	maxMultipartBytes = 20 << 20
	payloadDataField  = "data"
)

var (
	errBodyTooLarge   = errors.New("request body too large")
	errInvalidPayload = errors.New("invalid request body")
)

// payload is the request body resolved once at the boundary: either a plain
// JSON body or a multipart form whose "data" field holds the JSON document.
type payload interface {
	decode(dst any) error
	files(field string) []*multipart.FileHeader
}

type jsonPayload struct {
	r *http.Request
}

type multipartPayload struct {
	form *multipart.Form
}

// readPayload picks the payload kind from the Content-Type header.
func readPayload(w http.ResponseWriter, r *http.Request) (payload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
		return jsonPayload{r: r}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBytes)
	if err := r.ParseMultipartForm(maxMultipartBytes); err != nil {
		return nil, bodyError(err)
	}
	return multipartPayload{form: r.MultipartForm}, nil
}

func (p jsonPayload) decode(dst any) error {
	if err := json.NewDecoder(p.r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return bodyError(err)
	}
	return nil
}

func (jsonPayload) files(string) []*multipart.FileHeader {
	return nil
}

// decode reads the "data" field when present. Without it, plain form values
// are weakly typed onto dst by their json tags: "true" fills a bool, "80" an
// int, and repeated fields fill a slice.
func (p multipartPayload) decode(dst any) error {
	if data := p.form.Value[payloadDataField]; len(data) > 0 && strings.TrimSpace(data[0]) != "" {
		if err := json.Unmarshal([]byte(data[0]), dst); err != nil {
			return errInvalidPayload
		}
		return nil
	}

	fields := make(map[string]any, len(p.form.Value))
	for k, v := range p.form.Value {
		switch len(v) {
		case 0:
		case 1:
			fields[k] = v[0]
		default:
			fields[k] = v
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return errInvalidPayload
	}
	if err := dec.Decode(fields); err != nil {
		return errInvalidPayload
	}
	return nil
}

func (p multipartPayload) files(field string) []*multipart.FileHeader {
	return p.form.File[field]
}

// firstFile returns the first upload under field, or nil.
func firstFile(p payload, field string) *multipart.FileHeader {
	if fs := p.files(field); len(fs) > 0 {
		return fs[0]
	}
	return nil
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errBodyTooLarge
	}
	return errInvalidPayload
}
