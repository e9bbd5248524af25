package integration

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("/metrics API endpoint", func() {
	Context("response body", func() {
		It("should contain the wordtrie metrics", func() {
			postJSON("/distinct-substrings", map[string]string{"text": "abc"}).Body.Close()

			resp := doRequest(newRequest(http.MethodGet, apiURL(apiPort, "/metrics")))
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			body := readBody(resp)
			Expect(body).To(ContainSubstring("wordtrie_operation_total"))
			Expect(body).To(ContainSubstring("wordtrie_dictionary_reload_total"))
		})
	})
})
