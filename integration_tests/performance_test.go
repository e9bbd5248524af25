package integration

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const latencyThreshold = 20 * time.Millisecond

var _ = Describe("Performance", func() {
	BeforeEach(func() {
		addWords("a", "aa", "aaa", "aaaa", "leet", "code", "cats", "and", "sand", "dog", "cat")
		reloadDictionary(apiPort)
	})

	It("should serve segmentation quickly and without errors", func() {
		targets := []vegeta.Target{
			jsonTarget("/segment", map[string]string{"key": "leetcodecatsanddog"}),
			jsonTarget("/segment", map[string]string{"key": strings.Repeat("a", 500) + "b"}),
			jsonTarget("/distinct-substrings", map[string]string{"text": strings.Repeat("ab", 100)}),
		}
		assertPerformant(targets, 100)
	})

	Describe("when the dictionary is being reloaded repeatedly", func() {
		It("should serve quickly and without errors", func() {
			stopCh := make(chan struct{})
			defer close(stopCh)
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-stopCh:
						return
					case <-ticker.C:
						resp, err := http.Post(apiURL(apiPort, "/reload"), "", http.NoBody)
						if err == nil {
							resp.Body.Close()
						}
					}
				}
			}()

			targets := []vegeta.Target{
				jsonTarget("/longest-word", map[string]interface{}{}),
				jsonTarget("/segment", map[string]string{"key": "catsanddog"}),
			}
			assertPerformant(targets, 100)
		})
	})
})

func jsonTarget(path string, body interface{}) vegeta.Target {
	data, err := json.Marshal(body)
	Expect(err).NotTo(HaveOccurred())
	return vegeta.Target{
		Method: http.MethodPost,
		URL:    apiURL(apiPort, path),
		Body:   data,
		Header: http.Header{"Content-Type": []string{"application/json"}},
	}
}

func assertPerformant(targets []vegeta.Target, rps int) {
	results := <-generateLoad(targets, rps)

	Expect(results.Success).To(BeNumerically("~", 1.0))
	Expect(results.StatusCodes).To(HaveKeyWithValue("200", BeNumerically("==", results.Requests)))
	Expect(results.Latencies.P95).To(BeNumerically("<", latencyThreshold))
	Expect(results.Latencies.P99).To(BeNumerically("<", latencyThreshold*2))
}

func generateLoad(targets []vegeta.Target, rps int) chan *vegeta.Metrics {
	targeter := vegeta.NewStaticTargeter(targets...)
	metrics := make(chan *vegeta.Metrics, 1)
	veg := vegeta.NewAttacker()
	go vegetaAttack(veg, targeter, rps, metrics)
	return metrics
}

func vegetaAttack(veg *vegeta.Attacker, targets vegeta.Targeter, rps int, metrics chan *vegeta.Metrics) {
	pace := vegeta.Pacer(vegeta.ConstantPacer{Freq: rps, Per: time.Second})

	var m vegeta.Metrics
	for res := range veg.Attack(targets, pace, 5*time.Second, "load") {
		m.Add(res)
	}
	m.Close()

	metrics <- &m
}
