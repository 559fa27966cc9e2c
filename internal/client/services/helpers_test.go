package services

import (
	"context"
	"encoding/json"
	"net/url"
)

// apiCall records one request issued through the fake transport.
type apiCall struct {
	Method string
	Path   string
	Body   any
	Form   url.Values
}

// fakeAPI implements api.Client for unit tests. Responses are served per
// path from the Responses map (raw JSON decoded into out); unknown paths
// succeed with an untouched out. Err, when set, fails every call.
type fakeAPI struct {
	Calls     []apiCall
	Responses map[string]string
	Err       error

	DownloadRet []byte
	DownloadErr error
}

func (f *fakeAPI) serve(path string, out any) error {
	if f.Err != nil {
		return f.Err
	}
	if out == nil {
		return nil
	}
	raw, ok := f.Responses[path]
	if !ok {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}

func (f *fakeAPI) JSON(ctx context.Context, method, path string, body any, out any) error {
	f.Calls = append(f.Calls, apiCall{Method: method, Path: path, Body: body})
	return f.serve(path, out)
}

func (f *fakeAPI) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	f.Calls = append(f.Calls, apiCall{Method: "POST", Path: path, Form: form})
	return f.serve(path, out)
}

func (f *fakeAPI) Download(ctx context.Context, path string) ([]byte, error) {
	f.Calls = append(f.Calls, apiCall{Method: "GET", Path: path})
	if f.DownloadErr != nil {
		return nil, f.DownloadErr
	}
	return f.DownloadRet, nil
}

// paths lists the fake's recorded request paths in order.
func (f *fakeAPI) paths() []string {
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.Path)
	}
	return out
}
