package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	// revive:disable:dot-imports
	. "github.com/onsi/gomega"
	// revive:enable:dot-imports
)

func newRequest(method, url string) *http.Request {
	req, err := http.NewRequestWithContext(context.Background(), method, url, nil)
	Expect(err).NotTo(HaveOccurred())
	return req
}

func newJSONRequest(method, url string, body interface{}) *http.Request {
	data, err := json.Marshal(body)
	Expect(err).NotTo(HaveOccurred())
	req, err := http.NewRequestWithContext(context.Background(), method, url, bytes.NewReader(data))
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Content-Type", "application/json")
	return req
}

func doRequest(req *http.Request) *http.Response {
	resp, err := http.DefaultTransport.RoundTrip(req)
	Expect(err).NotTo(HaveOccurred())
	return resp
}

func postJSON(path string, body interface{}) *http.Response {
	return doRequest(newJSONRequest(http.MethodPost, apiURL(apiPort, path), body))
}

func readBody(resp *http.Response) string {
	defer resp.Body.Close()
	bytes, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	return string(bytes)
}

func readJSONBody(resp *http.Response, data interface{}) {
	defer resp.Body.Close()
	bytes, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	err = json.Unmarshal(bytes, data)
	Expect(err).NotTo(HaveOccurred())
}
