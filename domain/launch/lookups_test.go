package launch_test

import (
	"launchmaster/domain/launch"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Lookups", func() {
	Describe("DaysDifference", func() {
		It("should count both ends", func() {
			d := date(2024, 6, 15)
			Expect(launch.DaysDifference(d, d)).To(Equal(1))
			Expect(launch.DaysDifference(date(2024, 6, 13), d)).To(Equal(3))
			Expect(launch.DaysDifference(date(2024, 3, 12), d)).To(Equal(96))
		})

		It("should be symmetric", func() {
			a, b := date(2024, 1, 1), date(2024, 3, 1)
			Expect(launch.DaysDifference(a, b)).To(Equal(launch.DaysDifference(b, a)))
			Expect(launch.DaysDifference(a, b)).To(Equal(61))
		})

		It("should round partial days up", func() {
			Expect(launch.DaysDifference(date(2024, 6, 15), date(2024, 6, 15).Add(time.Hour))).To(Equal(2))
		})
	})

	Describe("StatusInfo", func() {
		It("should map canonical statuses", func() {
			Expect(launch.StatusInfo("planning").Label).To(Equal("Planning"))
			Expect(launch.StatusInfo("active")).To(Equal(launch.StatusDisplay{
				Label: "Active", Color: "bg-green-100 text-green-800 dark:bg-green-900 dark:text-green-300"}))
			Expect(launch.StatusInfo("completed").Label).To(Equal("Completed"))
		})

		It("should fall back to the raw status in gray", func() {
			Expect(launch.StatusInfo("archived")).To(Equal(launch.StatusDisplay{Label: "archived", Color: launch.NeutralStatusColor}))
			Expect(launch.StatusInfo("")).To(Equal(launch.StatusDisplay{Label: "", Color: launch.NeutralStatusColor}))
		})
	})

	Describe("Status", func() {
		It("should only accept canonical statuses", func() {
			for _, s := range launch.Statuses {
				Expect(s.Valid()).To(BeTrue())
			}
			Expect(launch.Status("Active").Valid()).To(BeFalse())
			Expect(launch.Status("").Valid()).To(BeFalse())
		})
	})

	Describe("PhaseColor", func() {
		It("should map every default phase", func() {
			Expect(launch.PhaseColor("planning")).To(Equal("#3B82F6"))
			Expect(launch.PhaseColor("event")).To(Equal("#8B5CF6"))
			Expect(launch.PhaseColor("downsell")).To(Equal("#EF4444"))
			for _, p := range launch.DefaultPhases {
				Expect(launch.PhaseColor(p.Key)).To(HavePrefix("#"))
			}
		})

		It("should fall back to neutral gray", func() {
			Expect(launch.PhaseColor("Planning")).To(Equal(launch.NeutralPhaseColor))
			Expect(launch.PhaseColor("")).To(Equal("#6B7280"))
		})
	})

	Describe("FormatDate", func() {
		It("should use the default layout", func() {
			Expect(launch.FormatDate(date(2024, 6, 5), "")).To(Equal("Jun 05, 2024"))
		})
		It("should accept custom layouts", func() {
			Expect(launch.FormatDate(date(2024, 6, 5), "2006-01-02")).To(Equal("2024-06-05"))
		})
	})
})
