package common_test

import (
	"launchmaster/common"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("Log", func() {
	AfterEach(func() {
		common.SetupLogger("launchmaster", "info", "text")
	})

	Describe("SetupLogger", func() {
		It("should apply level and json format", func() {
			common.SetupLogger("launch-test", "debug", "JSON")
			Expect(logrus.GetLevel()).To(Equal(logrus.DebugLevel))
			Expect(logrus.StandardLogger().Formatter).To(BeAssignableToTypeOf(&logrus.JSONFormatter{}))
			Expect(common.GetServiceName()).To(Equal("launch-test"))
		})

		It("should fall back to info level and text format", func() {
			common.SetupLogger("", "verbose", "")
			Expect(logrus.GetLevel()).To(Equal(logrus.InfoLevel))
			Expect(logrus.StandardLogger().Formatter).To(BeAssignableToTypeOf(&logrus.TextFormatter{}))
		})
	})

	Describe("DefaultFieldsHook", func() {
		It("should add service fields to every entry", func() {
			hook := &common.DefaultFieldsHook{}
			Expect(hook.Levels()).To(Equal(logrus.AllLevels))

			entry := logrus.NewEntry(logrus.New())
			Expect(hook.Fire(entry)).To(BeNil())
			Expect(entry.Data["serviceName"]).To(Equal(common.GetServiceName()))
			Expect(entry.Data).To(HaveKey("serviceInstance"))
		})
	})
})
