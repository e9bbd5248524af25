package wordtrie

import (
	"runtime/debug"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("versionFromBuildInfo", func() {
	buildInfo := func(settings ...debug.BuildSetting) *debug.BuildInfo {
		return &debug.BuildInfo{GoVersion: "go1.23.5", Main: debug.Module{Version: "(devel)"}, Settings: settings}
	}

	It("should describe a clean build", func() {
		bi := buildInfo(
			debug.BuildSetting{Key: "vcs.revision", Value: "0123456789abcdef"},
			debug.BuildSetting{Key: "vcs.time", Value: "2024-01-02T03:04:05Z"},
			debug.BuildSetting{Key: "vcs.modified", Value: "false"},
		)
		Expect(versionFromBuildInfo(bi)).To(Equal("built from commit 01234567 (2024-01-02T03:04:05Z) using go1.23.5"))
	})

	It("should flag a dirty build", func() {
		bi := buildInfo(
			debug.BuildSetting{Key: "vcs.revision", Value: "0123456789abcdef"},
			debug.BuildSetting{Key: "vcs.modified", Value: "true"},
		)
		Expect(versionFromBuildInfo(bi)).To(Equal("built from commit 01234567 (dirty) using go1.23.5"))
	})

	It("should use the module version when there is no VCS info", func() {
		bi := buildInfo()
		bi.Main.Version = "v1.2.3"
		Expect(versionFromBuildInfo(bi)).To(Equal("v1.2.3 using go1.23.5"))
	})

	It("should admit when nothing is known", func() {
		Expect(versionFromBuildInfo(buildInfo())).To(Equal("(version info unavailable)"))
	})
})
