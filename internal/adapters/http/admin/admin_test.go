package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAdminHandler(t *testing.T) {
	Convey("Given an admin handler over a private registry", t, func() {
		ctx := context.Background()
		registry := prometheus.NewRegistry()
		promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "greeter_test_total",
			Help: "test counter",
		}).Inc()
		h := Handler(ctx, registry)

		Convey("When scraping /metrics", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then the registry contents should be exposed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "greeter_test_total 1")
			})
		})

		Convey("When fetching /openapi.yaml", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

			Convey("Then the embedded document should be served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/yaml")
				So(w.Body.String(), ShouldContainSubstring, "/healthz:")
				So(w.Body.Len(), ShouldEqual, len(OpenAPI))
			})
		})

		Convey("When requesting anything else", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then it should not be found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestAdminRegisterWithNilArguments(t *testing.T) {
	Convey("Given nil arguments", t, func() {
		ctx := context.Background()

		Convey("Then a nil mux should panic", func() {
			So(func() { Register(ctx, nil, prometheus.NewRegistry()) }, ShouldPanic)
		})

		Convey("And a nil gatherer should panic", func() {
			So(func() { Register(ctx, http.NewServeMux(), nil) }, ShouldPanic)
		})
	})
}
