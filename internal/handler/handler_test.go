package handler_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/simple-web-app/internal/handler"
	"github.com/angeloszaimis/simple-web-app/internal/view"
	"github.com/angeloszaimis/simple-web-app/pkg/logger"
)

type failingRenderer struct{}

func (failingRenderer) Render(io.Writer, string, any) error {
	return errors.New("boom")
}

var _ = Describe("HomeHandler", func() {
	var h *handler.HomeHandler

	BeforeEach(func() {
		renderer, err := view.New()
		Expect(err).NotTo(HaveOccurred())
		h = handler.NewHomeHandler(logger.Discard(), renderer)
	})

	Describe("Greeting", func() {
		It("should wrap the name", func() {
			Expect(handler.Greeting("Alice")).To(Equal("Hello, Alice!"))
			Expect(handler.Greeting("")).To(Equal("Hello, !"))
		})
	})

	Describe("Welcome", func() {
		It("should render the index page with the welcome message", func() {
			w := httptest.NewRecorder()
			h.Welcome(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("text/html; charset=utf-8"))
			Expect(w.Body.String()).To(ContainSubstring("Welcome to Simple Spring Boot Web App!"))
		})

		It("should ignore the query string", func() {
			w := httptest.NewRecorder()
			h.Welcome(w, httptest.NewRequest(http.MethodGet, "/?message=other", nil))

			Expect(w.Body.String()).To(ContainSubstring(handler.WelcomeMessage))
			Expect(w.Body.String()).NotTo(ContainSubstring("other"))
		})

		Context("when the renderer fails", func() {
			BeforeEach(func() {
				h = handler.NewHomeHandler(logger.Discard(), failingRenderer{})
			})

			It("should return 500", func() {
				w := httptest.NewRecorder()
				h.Welcome(w, httptest.NewRequest(http.MethodGet, "/", nil))

				Expect(w.Code).To(Equal(http.StatusInternalServerError))
				Expect(w.Body.String()).NotTo(ContainSubstring("boom"))
			})
		})
	})

	Describe("Hello", func() {
		hello := func(target string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			h.Hello(w, httptest.NewRequest(http.MethodGet, target, nil))
			return w
		}

		It("should default to World", func() {
			w := hello("/api/hello")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("Hello, World!"))
			Expect(w.Header().Get("Content-Type")).To(Equal("text/plain; charset=utf-8"))
			Expect(w.Header().Get("X-Content-Type-Options")).To(Equal("nosniff"))
		})

		It("should greet the given name", func() {
			Expect(hello("/api/hello?name=Alice").Body.String()).To(Equal("Hello, Alice!"))
		})

		It("should keep an empty name", func() {
			Expect(hello("/api/hello?name=").Body.String()).To(Equal("Hello, !"))
		})

		It("should echo the value without escaping", func() {
			Expect(hello("/api/hello?name=%3Cb%3Ex%3C%2Fb%3E").Body.String()).To(Equal("Hello, <b>x</b>!"))
			Expect(hello("/api/hello?name=a%0Ab").Body.String()).To(Equal("Hello, a\nb!"))
		})

		It("should join repeated names with commas", func() {
			Expect(hello("/api/hello?name=Ann&name=Bob").Body.String()).To(Equal("Hello, Ann,Bob!"))
		})
	})

	Describe("Info", func() {
		const expected = `{"name":"Simple Spring Boot App","version":"1.0.0","description":"A simple web application"}`

		It("should return the application info as JSON", func() {
			w := httptest.NewRecorder()
			h.Info(w, httptest.NewRequest(http.MethodGet, "/api/info", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(w.Body.String()).To(MatchJSON(expected))
		})

		It("should return the same body on every call", func() {
			var first string
			for i := 0; i < 5; i++ {
				w := httptest.NewRecorder()
				h.Info(w, httptest.NewRequest(http.MethodGet, "/api/info", nil))
				if i == 0 {
					first = w.Body.String()
				}
				Expect(w.Body.String()).To(Equal(first))
			}
		})
	})

	Describe("Health", func() {
		It("should report UP", func() {
			w := httptest.NewRecorder()
			h.Health(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"status":"UP"}`))
		})
	})

	Describe("concurrent requests", func() {
		It("should answer each caller with its own name", func() {
			const callers = 50
			results := make([]string, callers)

			var wg sync.WaitGroup
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					w := httptest.NewRecorder()
					h.Hello(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/hello?name=user-%d", i), nil))
					results[i] = w.Body.String()
				}(i)
			}
			wg.Wait()

			for i, body := range results {
				Expect(body).To(Equal(fmt.Sprintf("Hello, user-%d!", i)))
			}
		})
	})
})
