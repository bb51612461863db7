package service_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	service "github.com/okian/greeter/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", url, err)
	}
	return resp.StatusCode, string(body)
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a running service with the admin listener enabled", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc := service.New(
			service.WithAddr("127.0.0.1:0"),
			service.WithAdminAddr("127.0.0.1:0"),
			service.WithShutdownTimeout(5*time.Second),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		base := "http://" + svc.Addr().String()
		adminBase := "http://" + svc.AdminAddr().String()

		Convey("When probing /healthz", func() {
			code, body := get(t, base+"/healthz")

			Convey("Then it should answer 200 OK byte for byte", func() {
				So(code, ShouldEqual, http.StatusOK)
				So(body, ShouldEqual, "OK")
			})
		})

		Convey("When requesting the root", func() {
			code, body := get(t, base+"/")

			Convey("Then it should answer with the greeting", func() {
				So(code, ShouldEqual, http.StatusOK)
				So(body, ShouldEqual, "Hello, world! Yuvin is here to conquer")
			})
		})

		Convey("When requesting an unregistered path", func() {
			code, body := get(t, base+"/non-existent-endpoint")

			Convey("Then it should answer 404 Not Found", func() {
				So(code, ShouldEqual, http.StatusNotFound)
				So(body, ShouldContainSubstring, "Not Found")
			})
		})

		Convey("When looking for admin routes on the public listener", func() {
			code, _ := get(t, base+"/metrics")

			Convey("Then they should not exist there", func() {
				So(code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When scraping metrics after traffic", func() {
			get(t, base+"/healthz")
			code, body := get(t, adminBase+"/metrics")

			Convey("Then the request counter should be exposed", func() {
				So(code, ShouldEqual, http.StatusOK)
				So(body, ShouldContainSubstring, `greeter_http_requests_total{endpoint="healthz",method="GET",status_code="200"}`)
			})
		})

		Convey("When fetching the API document", func() {
			code, body := get(t, adminBase+"/openapi.yaml")

			Convey("Then it should describe both routes", func() {
				So(code, ShouldEqual, http.StatusOK)
				So(strings.Contains(body, "/healthz:"), ShouldBeTrue)
				So(strings.Contains(body, "getRoot"), ShouldBeTrue)
			})
		})
	})
}

func TestServiceConcurrency(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc := service.New(service.WithAddr("127.0.0.1:0"))
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()
		base := "http://" + svc.Addr().String()

		Convey("When many clients hit every route at once", func() {
			const clients = 32
			targets := map[string]struct {
				code int
				body string
			}{
				"/":        {http.StatusOK, "Hello, world! Yuvin is here to conquer"},
				"/healthz": {http.StatusOK, "OK"},
			}

			var (
				wg       sync.WaitGroup
				mu       sync.Mutex
				failures []string
			)
			client := &http.Client{Timeout: 5 * time.Second}
			for i := 0; i < clients; i++ {
				for path, want := range targets {
					wg.Add(1)
					go func(path string, wantCode int, wantBody string) {
						defer wg.Done()
						resp, err := client.Get(base + path)
						if err != nil {
							mu.Lock()
							failures = append(failures, err.Error())
							mu.Unlock()
							return
						}
						defer func() { _ = resp.Body.Close() }()
						body, _ := io.ReadAll(resp.Body)
						if resp.StatusCode != wantCode || string(body) != wantBody {
							mu.Lock()
							failures = append(failures, path+": "+resp.Status+" "+string(body))
							mu.Unlock()
						}
					}(path, want.code, want.body)
				}
			}
			wg.Wait()

			Convey("Then every response should be identical to the contract", func() {
				So(failures, ShouldBeEmpty)
			})
		})
	})
}
