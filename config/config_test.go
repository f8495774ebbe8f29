package config_test

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ror-speedrun/autosplitter/autosplitter"
	"github.com/ror-speedrun/autosplitter/config"
	"github.com/ror-speedrun/autosplitter/timing"
)

var _ = Describe("Config", func() {
	It("should default to a local LiveSplit Server at 120Hz", func() {
		c := config.Default()

		Expect(c.TimerAddress).To(Equal("localhost:16834"))
		Expect(c.PollRate).To(Equal(120 * timing.Hz))
		Expect(c.Settings).To(Equal(autosplitter.DefaultSettings()))
		Expect(c.Monitor).To(BeFalse())
		Expect(c.Record).To(BeFalse())
		Expect(c.ROR1Stages).To(BeFalse())
		Expect(c.RORRStages).To(BeFalse())
		Expect(c.Validate()).To(Succeed())
	})

	It("should read the environment", func() {
		GinkgoT().Setenv("AUTOSPLITTER_TIMER_ADDRESS", "192.168.1.5:16834")
		GinkgoT().Setenv("AUTOSPLITTER_POLL_RATE", "60Hz")
		GinkgoT().Setenv("AUTOSPLITTER_ALLOW_RESET", "false")
		GinkgoT().Setenv("AUTOSPLITTER_RORR_STAGES", "1")

		c, err := config.FromEnv(config.Default())

		Expect(err).NotTo(HaveOccurred())
		Expect(c.TimerAddress).To(Equal("192.168.1.5:16834"))
		Expect(c.PollRate).To(Equal(60 * timing.Hz))
		Expect(c.Settings).To(Equal(autosplitter.Settings{
			AllowStart: true,
			AllowSplit: true,
			AllowReset: false,
		}))
		Expect(c.RORRStages).To(BeTrue())
		Expect(c.ROR1Stages).To(BeFalse())
	})

	It("should read .env content", func() {
		env, err := godotenv.Unmarshal(`
# monitor on a fixed port
AUTOSPLITTER_MONITOR=true
AUTOSPLITTER_MONITOR_PORT=8765
AUTOSPLITTER_RECORD=true
AUTOSPLITTER_RECORD_PATH=runs/today
`)
		Expect(err).NotTo(HaveOccurred())

		c, err := config.FromMap(config.Default(), env)

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Monitor).To(BeTrue())
		Expect(c.MonitorPort).To(Equal(8765))
		Expect(c.Record).To(BeTrue())
		Expect(c.RecordPath).To(Equal("runs/today"))
	})

	It("should report every malformed variable", func() {
		c, err := config.FromMap(config.Default(), map[string]string{
			"AUTOSPLITTER_VERBOSE":      "loud",
			"AUTOSPLITTER_MONITOR_PORT": "eighty",
			"AUTOSPLITTER_POLL_RATE":    "fast",
		})

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("AUTOSPLITTER_VERBOSE"))
		Expect(err.Error()).To(ContainSubstring("AUTOSPLITTER_MONITOR_PORT"))
		Expect(err.Error()).To(ContainSubstring("AUTOSPLITTER_POLL_RATE"))
		Expect(c.PollRate).To(Equal(timing.DefaultPollRate))
	})

	It("should ignore empty variables", func() {
		c, err := config.FromMap(config.Default(), map[string]string{
			"AUTOSPLITTER_ALLOW_START": "",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Settings.AllowStart).To(BeTrue())
	})

	Context("with .env files", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("should load a named file without overriding the environment", func() {
			path := filepath.Join(dir, "autosplitter.env")
			Expect(os.WriteFile(path, []byte(
				"AUTOSPLITTER_VERBOSE=true\nAUTOSPLITTER_POLL_RATE=30\n"),
				0o600)).To(Succeed())
			GinkgoT().Setenv("AUTOSPLITTER_POLL_RATE", "90")
			GinkgoT().Setenv("AUTOSPLITTER_VERBOSE", "")
			os.Unsetenv("AUTOSPLITTER_VERBOSE")

			Expect(config.LoadDotEnv(path)).To(Succeed())
			c, err := config.FromEnv(config.Default())

			Expect(err).NotTo(HaveOccurred())
			Expect(c.Verbose).To(BeTrue())
			Expect(c.PollRate).To(Equal(90 * timing.Hz))
		})

		It("should fail on a missing named file", func() {
			Expect(config.LoadDotEnv(filepath.Join(dir, "missing.env"))).NotTo(Succeed())
		})

		It("should not require a default .env file", func() {
			wd, err := os.Getwd()
			Expect(err).NotTo(HaveOccurred())
			Expect(os.Chdir(dir)).To(Succeed())
			DeferCleanup(os.Chdir, wd)

			Expect(config.LoadDotEnv()).To(Succeed())
		})
	})

	DescribeTable("frequencies",
		func(s string, want timing.Freq) {
			f, err := config.ParseFreq(s)

			Expect(err).NotTo(HaveOccurred())
			Expect(f).To(Equal(want))
		},
		Entry("plain number", "120", 120*timing.Hz),
		Entry("hertz", "60Hz", 60*timing.Hz),
		Entry("kilohertz", "1kHz", 1*timing.KHz),
		Entry("spaces", " 30 hz ", 30*timing.Hz),
	)

	DescribeTable("validation",
		func(mutate func(c *config.Config)) {
			c := config.Default()
			mutate(&c)

			Expect(c.Validate()).NotTo(Succeed())
			Expect(c.MustBeValid).To(Panic())
		},
		Entry("timer address without port", func(c *config.Config) {
			c.TimerAddress = "localhost"
		}),
		Entry("zero poll rate", func(c *config.Config) {
			c.PollRate = 0
		}),
		Entry("poll rate too high", func(c *config.Config) {
			c.PollRate = 10 * timing.KHz
		}),
		Entry("monitor port out of range", func(c *config.Config) {
			c.MonitorPort = 70000
		}),
		Entry("browser without monitor", func(c *config.Config) {
			c.OpenBrowser = true
		}),
	)
})
