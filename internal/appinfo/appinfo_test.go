package appinfo_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/simple-web-app/internal/appinfo"
)

var _ = Describe("AppInfo", func() {
	It("should carry the fixed metadata", func() {
		info := appinfo.New()
		Expect(info.Name).To(Equal("Simple Spring Boot App"))
		Expect(info.Version).To(Equal("1.0.0"))
		Expect(info.Description).To(Equal("A simple web application"))
	})

	It("should build an independent value on every call", func() {
		first := appinfo.New()
		first.Name = "changed"
		Expect(appinfo.New().Name).To(Equal(appinfo.Name))
	})

	It("should encode with the lower-case field names", func() {
		body, err := json.Marshal(appinfo.New())
		Expect(err).NotTo(HaveOccurred())
		Expect(body).To(MatchJSON(`{"name":"Simple Spring Boot App","version":"1.0.0","description":"A simple web application"}`))
	})

	It("should print name and version", func() {
		Expect(appinfo.New().String()).To(Equal("Simple Spring Boot App 1.0.0"))
	})
})
