package wordtrie

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	prommodel "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
)

func operationSampleCount(operation string) uint64 {
	m := &prommodel.Metric{}
	summary, ok := operationDurationMetric.WithLabelValues(operation).(prometheus.Summary)
	Expect(ok).To(BeTrue())
	Expect(summary.Write(m)).To(Succeed())
	return m.GetSummary().GetSampleCount()
}

var _ = Describe("Server", func() {
	var (
		logger    zerolog.Logger
		wordsFile string
	)

	writeWords := func(content string) {
		Expect(os.WriteFile(wordsFile, []byte(content), 0600)).To(Succeed())
	}

	BeforeEach(func() {
		logger = zerolog.New(GinkgoWriter)
		wordsFile = filepath.Join(GinkgoT().TempDir(), "words.txt")
	})

	Context("with a words file", func() {
		var srv *Server

		BeforeEach(func() {
			writeWords("leet\ncode\n")
			var err error
			srv, err = NewServer(Options{WordsFile: wordsFile, Logger: logger})
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			srv.Close()
		})

		It("should load the dictionary on start", func() {
			Expect(srv.Dictionary()).To(Equal([]string{"leet", "code"}))
			Expect(promtest.ToFloat64(dictionaryWordsMetric.WithLabelValues(SourceFile))).To(Equal(2.0))
		})

		It("should pick up changes when a reload is queued", func() {
			writeWords("cats\nand\ndog\n")
			Expect(srv.QueueReload()).To(BeTrue())
			Eventually(srv.Dictionary).Should(Equal([]string{"cats", "and", "dog"}))
		})

		It("should keep the existing dictionary when a reload fails", func() {
			failuresBefore := promtest.ToFloat64(dictionaryReloadCountMetric.WithLabelValues("false"))
			Expect(os.Remove(wordsFile)).To(Succeed())

			srv.reloadDictionary()

			Expect(srv.Dictionary()).To(Equal([]string{"leet", "code"}))
			Expect(promtest.ToFloat64(dictionaryReloadCountMetric.WithLabelValues("false"))).To(Equal(failuresBefore + 1))
		})

		It("should record when a reload was last attempted", func() {
			Expect(srv.lastAttemptReload()).To(BeTemporally("~", time.Now(), 5*time.Second))
		})

		It("should ignore reloads queued after it is closed", func() {
			srv.Close()
			writeWords("after\nclose\n")
			srv.QueueReload()

			Consistently(srv.Dictionary, 200*time.Millisecond).Should(Equal([]string{"leet", "code"}))
		})
	})

	Context("when closed", func() {
		It("should stop periodic dictionary updates", func() {
			srv := &Server{
				Logger:     logger,
				source:     SourcePostgres,
				ReloadChan: make(chan bool, 1),
				opts:       Options{ReloadInterval: time.Minute},
			}
			srv.ctx, srv.cancel = context.WithCancel(context.Background())

			done := make(chan struct{})
			go func() {
				srv.PeriodicDictionaryUpdates()
				close(done)
			}()

			srv.Close()
			Eventually(done).Should(BeClosed())
		})
	})

	Context("with a missing words file", func() {
		It("should start with an empty dictionary", func() {
			srv, err := NewServer(Options{WordsFile: wordsFile, Logger: logger})
			Expect(err).NotTo(HaveOccurred())
			Expect(srv.Dictionary()).To(BeEmpty())
			Expect(srv.ReloadChan).NotTo(BeNil())
		})
	})

	Context("without a dictionary source", func() {
		It("should not accept reloads", func() {
			srv, err := NewServer(Options{Logger: logger})
			Expect(err).NotTo(HaveOccurred())
			Expect(srv.ReloadChan).To(BeNil())
			Expect(srv.QueueReload()).To(BeFalse())
			Expect(srv.Dictionary()).To(BeEmpty())
		})
	})

	Context("when running operations", func() {
		var srv *Server

		BeforeEach(func() {
			srv = &Server{Logger: logger}
		})

		It("should count operations, durations and nodes", func() {
			lbls := prometheus.Labels{"operation": OperationDistinctSubstrings, "success": "true"}
			countBefore := promtest.ToFloat64(operationCountMetric.With(lbls))
			nodesBefore := promtest.ToFloat64(nodesCreatedCountMetric.WithLabelValues(OperationDistinctSubstrings))
			samplesBefore := operationSampleCount(OperationDistinctSubstrings)

			Expect(srv.CountDistinctSubstrings("ababa")).To(Equal(9))

			Expect(promtest.ToFloat64(operationCountMetric.With(lbls))).To(Equal(countBefore + 1))
			Expect(promtest.ToFloat64(nodesCreatedCountMetric.WithLabelValues(OperationDistinctSubstrings))).To(Equal(nodesBefore + 9))
			Expect(operationSampleCount(OperationDistinctSubstrings)).To(Equal(samplesBefore + 1))
		})

		It("should count rejected input", func() {
			before := promtest.ToFloat64(invalidInputCountMetric.WithLabelValues(OperationSegment))

			_, _, err := srv.Segment("no spaces", []string{"no", "spaces"})
			Expect(err).To(HaveOccurred())

			Expect(promtest.ToFloat64(invalidInputCountMetric.WithLabelValues(OperationSegment))).To(Equal(before + 1))
		})

		It("should answer like the uninstrumented functions", func() {
			words := []string{"zebra", "dog", "duck", "dove"}
			Expect(srv.ShortestUniquePrefixes(words)).To(Equal([]string{"z", "dog", "du", "dov"}))
			Expect(srv.LongestValidWord([]string{"p", "pr", "pro", "probl", "problem", "pros", "process"})).To(Equal("pros"))

			split, ok, err := srv.Segment("leetcode", []string{"leet", "code"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(split).To(Equal([]string{"leet", "code"}))
		})
	})
})
