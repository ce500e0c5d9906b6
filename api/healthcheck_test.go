package api_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medvault-org/medvault/api"
)

var _ = Describe("HealthCheck", func() {
	It("fails until the service is marked ready", func() {
		healthCheck := api.NewHealthCheck()
		e := echo.New()

		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ready", nil), rec)
		Expect(healthCheck.Ready(c)).To(Succeed())
		Expect(rec.Code).To(Equal(http.StatusBadRequest))

		healthCheck.SetReady(true)
		rec = httptest.NewRecorder()
		c = e.NewContext(httptest.NewRequest(http.MethodGet, "/ready", nil), rec)
		Expect(healthCheck.Ready(c)).To(Succeed())
		Expect(rec.Code).To(Equal(http.StatusOK))
	})
})

var _ = Describe("RouteSkipper", func() {
	It("skips only the configured routes", func() {
		skipper := api.RouteSkipper([]string{"/ready"})
		e := echo.New()

		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ready", nil), httptest.NewRecorder())
		c.SetPath("/ready")
		Expect(skipper(c)).To(BeTrue())

		c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/users/u1/patients", nil), httptest.NewRecorder())
		c.SetPath("/v1/users/:userId/patients")
		Expect(skipper(c)).To(BeFalse())
	})
})
