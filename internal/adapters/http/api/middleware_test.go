package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorClassification(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		Convey("Then error types should be standardized", func() {
			So(getErrorType(500), ShouldEqual, "server_error")
			So(getErrorType(503), ShouldEqual, "server_error")
			So(getErrorType(429), ShouldEqual, "rate_limit")
			So(getErrorType(404), ShouldEqual, "not_found")
			So(getErrorType(405), ShouldEqual, "method_not_allowed")
			So(getErrorType(400), ShouldEqual, "client_error")
			So(getErrorType(200), ShouldEqual, "unknown")
		})

		Convey("And severities should follow the status class", func() {
			So(getErrorSeverity(500), ShouldEqual, "high")
			So(getErrorSeverity(404), ShouldEqual, "medium")
			So(getErrorSeverity(302), ShouldEqual, "low")
		})
	})
}

func TestValidRequestID(t *testing.T) {
	Convey("Given candidate request ids", t, func() {
		So(validRequestID("abc-123_DEF.456"), ShouldBeTrue)
		So(validRequestID(""), ShouldBeFalse)
		So(validRequestID("with space"), ShouldBeFalse)
		So(validRequestID("café"), ShouldBeFalse)
		So(validRequestID(strings.Repeat("a", maxRequestIDLength)), ShouldBeTrue)
		So(validRequestID(strings.Repeat("a", maxRequestIDLength+1)), ShouldBeFalse)
	})
}

func TestRequestIDContext(t *testing.T) {
	Convey("Given a context", t, func() {
		ctx := context.Background()

		Convey("Then a bare context should carry no id", func() {
			So(RequestIDFromContext(ctx), ShouldBeEmpty)
		})

		Convey("And a stored id should round-trip", func() {
			So(RequestIDFromContext(WithRequestID(ctx, "abc")), ShouldEqual, "abc")
		})
	})
}

func TestResponseWriterCapture(t *testing.T) {
	Convey("Given a wrapped response writer", t, func() {
		rec := httptest.NewRecorder()
		rw := wrapResponseWriter(rec)

		Convey("When nothing sets a status", func() {
			_, err := rw.Write([]byte("x"))

			Convey("Then it should report 200", func() {
				So(err, ShouldBeNil)
				So(rw.statusCode, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When the status is written twice", func() {
			rw.WriteHeader(http.StatusNotFound)
			rw.WriteHeader(http.StatusInternalServerError)

			Convey("Then the first one should win", func() {
				So(rw.statusCode, ShouldEqual, http.StatusNotFound)
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("Then it should unwrap to the original writer", func() {
			So(rw.Unwrap() == http.ResponseWriter(rec), ShouldBeTrue)
		})
	})
}

func TestFallbackHandler(t *testing.T) {
	Convey("Given a fallback that knows /known", t, func() {
		h := NewFallbackHandler("/known")

		Convey("When an unknown path is requested", func() {
			w := httptest.NewRecorder()
			h.HandleFallback(w, httptest.NewRequest(http.MethodGet, "/unknown", nil))

			Convey("Then the not-found page should be rendered", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldEqual, notFoundPage)
				So(w.Header().Get("Allow"), ShouldBeEmpty)
			})
		})

		Convey("When a known path is hit with PUT", func() {
			w := httptest.NewRecorder()
			h.HandleFallback(w, httptest.NewRequest(http.MethodPut, "/known", nil))

			Convey("Then the method-not-allowed page should be rendered", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Body.String(), ShouldEqual, methodNotAllowedPage)
			})
		})
	})
}
